// Package client talks to the AdaStock REST backend.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/julienmatondotezolo/ada-stock/internal/models"
)

// PerformedBy is stamped on stock movements recorded by the app.
const PerformedBy = "AdaStock App"

// Client is a thin typed wrapper over the /api/v1 endpoints.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

type Option func(*Client)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithToken sends a bearer token with every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New returns a client for baseURL, which already includes /api/v1.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{baseURL: baseURL, http: http.DefaultClient}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) send(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var r io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal %s %s: %w", method, path, err)
		}
		r = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &NetworkError{Op: method + " " + path, Err: err}
	}
	return resp, nil
}

// do performs the request and unwraps the response envelope into T.
func do[T any](ctx context.Context, c *Client, method, path string, body any) (T, error) {
	var zero T
	resp, err := c.send(ctx, method, path, body)
	if err != nil {
		return zero, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return zero, &NetworkError{Op: method + " " + path, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(raw, &e); err != nil {
			return zero, &APIError{Status: resp.StatusCode, Message: "Unknown error"}
		}
		if e.Message == "" {
			e.Message = fmt.Sprintf("HTTP error! status: %d", resp.StatusCode)
		}
		return zero, &APIError{Status: resp.StatusCode, Message: e.Message}
	}

	var env models.Envelope[T]
	if err := json.Unmarshal(raw, &env); err != nil {
		return zero, fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = "API request failed"
		}
		return zero, &APIError{Status: resp.StatusCode, Message: msg}
	}
	return env.Data, nil
}

// HealthCheck calls {base}/health and returns the raw body. A non-2xx
// status is an *APIError.
func (c *Client) HealthCheck(ctx context.Context) (json.RawMessage, error) {
	resp, err := c.send(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Status: resp.StatusCode, Message: fmt.Sprintf("health check failed: %s", resp.Status)}
	}
	var body json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode health: %w", err)
	}
	return body, nil
}
