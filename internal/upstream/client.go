// Package upstream wraps the remote workflow API. All domain data is owned
// by the upstream service; this client fetches transient copies and issues
// mutations, it never caches or retries.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const apiPrefix = "/api/v1"

// ErrUnauthorized is returned for any HTTP 401 from the upstream API.
// Callers must treat it as "credential rejected", not as a generic failure.
var ErrUnauthorized = errors.New("upstream: unauthorized")

// APIError is a non-2xx response or a transport failure
type APIError struct {
	Status int    // HTTP status, 0 for transport failures
	Detail string // server-provided detail text or a generic message
	Err    error  // underlying transport error, if any
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("upstream: %s: %v", e.Detail, e.Err)
	}
	return fmt.Sprintf("upstream: %s (status %d)", e.Detail, e.Status)
}

func (e *APIError) Unwrap() error { return e.Err }

// Client is an HTTP client for the workflow API
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a new workflow API client
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// Call performs a JSON request against the versioned API root. A bearer
// header is attached when token is non-empty. 401 yields ErrUnauthorized,
// any other non-2xx (and any transport failure) yields *APIError.
func (c *Client) Call(ctx context.Context, method, path, token string, body interface{}) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+apiPrefix+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &APIError{Detail: "Request failed", Err: err}
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &APIError{Detail: "Request failed", Err: err}
	}

	if res.StatusCode == http.StatusUnauthorized {
		return nil, ErrUnauthorized
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &APIError{Status: res.StatusCode, Detail: errorDetail(data)}
	}

	return data, nil
}

// errorDetail extracts the upstream {"detail": ...} text with a generic
// fallback
func errorDetail(data []byte) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(data, &payload); err == nil && payload.Detail != "" {
		return payload.Detail
	}
	return "Request failed"
}

// get performs a GET and unmarshals the response into out
func (c *Client) get(ctx context.Context, path, token string, out interface{}) error {
	data, err := c.Call(ctx, http.MethodGet, path, token, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}
