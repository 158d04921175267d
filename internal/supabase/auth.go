package supabase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrInvalidToken is returned when the identity provider rejects a token or
// reports no user for it.
var ErrInvalidToken = errors.New("invalid auth token")

// User is the identity the auth provider associates with a token. ID is an
// opaque stable identifier and is never parsed.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// GetUser verifies token against the GoTrue endpoint and returns the user it
// belongs to. Every call is one round trip; nothing is cached.
func (c *Client) GetUser(ctx context.Context, token string) (User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return User{}, fmt.Errorf("build auth request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return User{}, fmt.Errorf("auth request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return User{}, ErrInvalidToken
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return User{}, fmt.Errorf("decode auth response: %w", err)
	}
	if user.ID == "" {
		return User{}, ErrInvalidToken
	}

	return user, nil
}
