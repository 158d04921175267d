package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// APIError is a failure reported by PostgREST (constraint violation,
// malformed filter, unknown column). Message carries the store's own
// description verbatim.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// Query builds a single PostgREST request against one table. Builders return
// the receiver so calls chain; Execute performs exactly one round trip and
// narrows the outcome to rows or an error.
type Query struct {
	client *Client
	table  string
	method string
	params url.Values
	prefer []string
	body   any
}

// From starts a query against the named table.
func (c *Client) From(table string) *Query {
	return &Query{
		client: c,
		table:  table,
		method: http.MethodGet,
		params: url.Values{},
	}
}

// Select requests the given columns ("*" for all).
func (q *Query) Select(columns string) *Query {
	q.method = http.MethodGet
	q.params.Set("select", columns)
	return q
}

// Insert submits payload as a new row and asks the store to return the
// created representation.
func (q *Query) Insert(payload any) *Query {
	q.method = http.MethodPost
	q.body = payload
	q.prefer = append(q.prefer, "return=representation")
	return q
}

// Upsert inserts payload or replaces the existing row that collides on the
// onConflict column.
func (q *Query) Upsert(payload any, onConflict string) *Query {
	q.method = http.MethodPost
	q.body = payload
	q.params.Set("on_conflict", onConflict)
	q.prefer = append(q.prefer, "resolution=merge-duplicates", "return=representation")
	return q
}

// Delete removes the rows matched by the query's filters and asks the store
// to return the deleted representation. Matching nothing is not an error.
func (q *Query) Delete() *Query {
	q.method = http.MethodDelete
	q.prefer = append(q.prefer, "return=representation")
	return q
}

// Eq adds an equality filter on column.
func (q *Query) Eq(column, value string) *Query {
	q.params.Set(column, "eq."+value)
	return q
}

// Order sorts the result by column, descending when desc is true.
func (q *Query) Order(column string, desc bool) *Query {
	direction := "asc"
	if desc {
		direction = "desc"
	}
	q.params.Set("order", column+"."+direction)
	return q
}

// Limit caps the number of returned rows.
func (q *Query) Limit(n int) *Query {
	q.params.Set("limit", strconv.Itoa(n))
	return q
}

// Execute performs the request and returns the store's JSON response body.
// Non-2xx responses become an *APIError carrying the store's message.
func (q *Query) Execute(ctx context.Context) (json.RawMessage, error) {
	var bodyReader io.Reader
	if q.body != nil {
		encoded, err := json.Marshal(q.body)
		if err != nil {
			return nil, fmt.Errorf("encode request payload: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	endpoint := q.client.baseURL + "/rest/v1/" + q.table
	if len(q.params) > 0 {
		endpoint += "?" + q.params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, q.method, endpoint, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("build store request: %w", err)
	}
	req.Header.Set("apikey", q.client.apiKey)
	req.Header.Set("Authorization", "Bearer "+q.client.apiKey)
	req.Header.Set("Content-Type", "application/json")
	if len(q.prefer) > 0 {
		req.Header.Set("Prefer", strings.Join(q.prefer, ","))
	}

	resp, err := q.client.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("store request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read store response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{Status: resp.StatusCode, Message: storeMessage(respBody)}
	}

	return respBody, nil
}

// storeMessage extracts PostgREST's error message, falling back to the raw
// body when the response is not the usual {"message": ...} shape.
func storeMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return string(body)
}
