package supabase

import (
	"errors"
	"net/http"
	"sync"
	"time"
)

// ErrNotConfigured is returned when the Supabase endpoint or key is missing
// from the environment. It surfaces on first use, not at process start.
var ErrNotConfigured = errors.New("SUPABASE_URL/SUPABASE_SERVICE_KEY not configured")

// Client talks to a Supabase project over its REST surface: GoTrue for
// identity checks and PostgREST for row operations. It holds no connection
// state beyond the underlying http.Client and is safe for concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a Client for the given project URL and API key.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Lazy constructs the shared Client on first use and memoizes the result,
// including a configuration failure. Every caller after the first observes
// the same client or the same error.
type Lazy struct {
	url  string
	key  string
	once sync.Once

	client *Client
	err    error
}

// NewLazy creates a Lazy holder for the given endpoint and key. Blank values
// are not rejected here; Get reports ErrNotConfigured when first asked.
func NewLazy(url, key string) *Lazy {
	return &Lazy{url: url, key: key}
}

// Get returns the shared Client, constructing it on the first call.
func (l *Lazy) Get() (*Client, error) {
	l.once.Do(func() {
		if l.url == "" || l.key == "" {
			l.err = ErrNotConfigured
			return
		}
		l.client = NewClient(l.url, l.key)
	})
	return l.client, l.err
}
