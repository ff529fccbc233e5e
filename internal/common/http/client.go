// Package http wraps the outbound HTTP client used for external API calls
// such as the hosted text-generation endpoint.
package http

import (
	"context"
	"net/http"
	"time"
)

// Client is a thin wrapper so callers choose between a fixed timeout and
// per-call context deadlines without juggling raw http.Client settings.
type Client struct {
	httpClient *http.Client
}

// NewClient builds a client with the given overall timeout. A zero timeout
// leaves the client unbounded; callers then bound each request with a
// context deadline via DoWithContext.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) Do(req *http.Request) (*http.Response, error) {
	return c.httpClient.Do(req)
}

// DoWithContext sends req bounded by ctx, which takes precedence over any
// client-level timeout.
func (c *Client) DoWithContext(ctx context.Context, req *http.Request) (*http.Response, error) {
	req = req.WithContext(ctx)
	return c.httpClient.Do(req)
}
