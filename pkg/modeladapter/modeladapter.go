package modeladapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// StatusError is returned by PostJSON when the API answers with a non-2xx
// status. Body holds the raw response text.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

// Auth places an API key on every request as a query parameter, which is
// how the Generative Language API accepts keys.
type Auth struct {
	Key   string // API key value; empty sends no key.
	Query string // Query parameter name, e.g. "key".
}

// ModelAdapter holds shared state for provider strategies. Embed it in
// concrete strategy structs to get HTTP helpers, auth and a per-request
// timeout.
type ModelAdapter struct {
	Name    string        // Model identifier (e.g. "text-bison-001").
	Auth    Auth          // Authentication settings.
	BaseURL string        // API base URL (no trailing slash).
	Client  *http.Client  // HTTP client; falls back to http.DefaultClient.
	Timeout time.Duration // Per-request deadline; zero means none beyond ctx.
}

// New creates a ModelAdapter with the given settings.
// A nil client falls back to http.DefaultClient at call time.
func New(baseURL string, auth Auth, client *http.Client) ModelAdapter {
	return ModelAdapter{
		Auth:    auth,
		BaseURL: baseURL,
		Client:  client,
	}
}

func (a *ModelAdapter) httpClient() *http.Client {
	if a.Client != nil {
		return a.Client
	}

	return http.DefaultClient
}

// NewRequest builds an *http.Request with the base URL and auth already
// applied.
func (a *ModelAdapter) NewRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	u, err := url.Parse(a.BaseURL + path)
	if err != nil {
		return nil, err
	}

	if a.Auth.Key != "" && a.Auth.Query != "" {
		q := u.Query()
		q.Set(a.Auth.Query, a.Auth.Key)
		u.RawQuery = q.Encode()
	}

	return http.NewRequestWithContext(ctx, method, u.String(), body)
}

// Do sends the request using the configured HTTP client.
func (a *ModelAdapter) Do(req *http.Request) (*http.Response, error) {
	return a.httpClient().Do(req) //nolint:gosec // URL is built from trusted BaseURL config, not user input.
}

// PostJSON marshals payload as JSON, sends a POST to the given path, checks
// for a 2xx status and returns the raw response body. Callers decode the body
// themselves so they can fall back to the raw text.
func (a *ModelAdapter) PostJSON(ctx context.Context, path string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	if a.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.Timeout)
		defer cancel()
	}

	req, err := a.NewRequest(ctx, http.MethodPost, path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := a.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	return respBody, nil
}
