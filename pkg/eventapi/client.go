// Package eventapi is the typed client for the Gatherly platform API.
// Every method is a single request: build, send, decode. There are no
// retries and no local fallbacks; callers own failure presentation.
package eventapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// TokenSource returns the current bearer token, or "" for guests. The
// session store provides it, so the client never caches credentials.
type TokenSource func() string

type Client struct {
	baseURL     string
	httpClient  *http.Client
	tokenSource TokenSource
	log         *zap.SugaredLogger
}

func New(baseURL string, tokenSource TokenSource, timeout time.Duration, log *zap.SugaredLogger) *Client {
	client := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 100,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	return &Client{
		baseURL:     baseURL,
		httpClient:  client,
		tokenSource: tokenSource,
		log:         log,
	}
}

// APIError is a request the server rejected. Message carries the
// server-provided text when the error payload included one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// doRaw issues one request and returns the response body. Non-2xx
// responses become *APIError; transport failures are wrapped as-is.
func (c *Client) doRaw(ctx context.Context, method, path string, query url.Values, body interface{}) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokenSource(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warnw("api request rejected",
			"method", method,
			"path", path,
			"status", resp.StatusCode,
		)
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(data),
		}
	}

	return data, nil
}

// do is doRaw plus decoding into out through the data envelope.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	data, err := c.doRaw(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(unwrapData(data), out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}

// errorMessage digs the human-readable text out of whatever error
// envelope the server used.
func errorMessage(data []byte) string {
	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil {
		if envelope.Error != "" {
			return envelope.Error
		}
		if envelope.Message != "" {
			return envelope.Message
		}
	}
	return "request rejected by the server"
}
