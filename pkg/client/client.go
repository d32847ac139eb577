// Package client is a typed REST client for the website API. Reads fall back
// to the legacy /api/v1 route prefix when the primary path 404s, so the
// client works against both current and older deployments.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

const (
	apiPrefix       = "/api"
	legacyAPIPrefix = "/api/v1"

	defaultTimeout = 15 * time.Second
)

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// TransportError wraps a failure that never produced an HTTP response,
// classified into a stable kind the UI can message on.
type TransportError struct {
	Kind string // "timeout" | "connection_refused" | "network"
	Err  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Client talks to the website backend.
type Client struct {
	baseURL        string
	httpc          *http.Client
	tokenSource    func() string
	onUnauthorized func()
}

type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

// WithTokenSource supplies the bearer token attached to requests.
func WithTokenSource(fn func() string) Option {
	return func(c *Client) { c.tokenSource = fn }
}

// WithUnauthorizedHandler registers a callback invoked on any 401 response,
// typically to clear stored credentials.
func WithUnauthorizedHandler(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do issues a request against the primary path and, on a 404, retries once
// against the legacy prefix. The first non-404 outcome wins.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	err := c.doOnce(ctx, method, apiPrefix+path, body, out)

	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		if legacyErr := c.doOnce(ctx, method, legacyAPIPrefix+path, body, out); legacyErr == nil {
			return nil
		}
		return err
	}
	return err
}

func (c *Client) doOnce(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokenSource != nil {
		if token := c.tokenSource(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return classifyTransportError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Kind: "network", Err: err}
	}

	var env struct {
		StatusCode int             `json:"status_code"`
		Message    string          `json:"message"`
		Data       json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &env); err != nil && resp.StatusCode < 400 {
		return fmt.Errorf("malformed response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
		c.onUnauthorized()
	}
	if resp.StatusCode >= 400 {
		message := env.Message
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: message}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode response data: %w", err)
		}
	}
	return nil
}

func classifyTransportError(err error) error {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &TransportError{Kind: "timeout", Err: err}
	case errors.As(err, &netErr) && netErr.Timeout():
		return &TransportError{Kind: "timeout", Err: err}
	case strings.Contains(err.Error(), "connection refused"):
		return &TransportError{Kind: "connection_refused", Err: err}
	default:
		return &TransportError{Kind: "network", Err: err}
	}
}
