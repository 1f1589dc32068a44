// internal/common/http/client.go
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client is the single HTTP handle shared by both calls of a run.
type Client struct {
	httpClient *http.Client
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// HasBody reports whether the response carried any bytes.
func (r *Response) HasBody() bool {
	return r != nil && len(r.Body) > 0
}

// IsSuccess reports a 2xx status.
func (r *Response) IsSuccess() bool {
	return r != nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// NewClient returns a client with the given overall timeout. Zero keeps the
// transport default (no client-side limit).
func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// PostJSON encodes payload as JSON, posts it to url with
// Content-Type: application/json plus headers, and reads the whole response.
// Header values are sent verbatim.
func (c *Client) PostJSON(ctx context.Context, url string, payload interface{}, headers map[string]string) (*Response, error) {
	body, err := encodeJSON(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
	}, nil
}

// CloseIdleConnections releases pooled keep-alive connections.
func (c *Client) CloseIdleConnections() {
	c.httpClient.CloseIdleConnections()
}

// encodeJSON marshals without HTML escaping so query text containing < > &
// reaches the upstream as written.
func encodeJSON(payload interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(payload); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
