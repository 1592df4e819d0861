// Package http wraps the standard HTTP client with the request timeout
// every remote dashboard API call shares.
package http

import (
	"context"
	"net/http"
	"time"
)

// Client is the transport under the api package's JSON client.
type Client struct {
	httpClient *http.Client
}

func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// DoWithContext sends the request bound to ctx, so callers can cancel
// a fetch independently of the client-wide timeout.
func (c *Client) DoWithContext(ctx context.Context, req *http.Request) (*http.Response, error) {
	req = req.WithContext(ctx)
	return c.httpClient.Do(req)
}
