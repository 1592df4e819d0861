// Package api holds the thin clients for the remote business API. The
// API owns persistence; this side only fetches, creates, updates and
// deletes entity records over JSON.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	nethttp "net/http"
	"strings"

	"dashboard-core/internal/common/config"
	stderrors "dashboard-core/internal/common/errors"
	"dashboard-core/internal/common/http"
	"dashboard-core/internal/common/logger"
)

// Error is a failed API call. Message carries the server-reported
// message when the error payload had one.
type Error struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

// errorPayload is the standard error body shape of the remote API.
type errorPayload struct {
	Message string `json:"message"`
}

// wrapFetchErr normalizes transport failures on the fetch path into
// the standard error taxonomy. Server-reported errors pass through so
// their message reaches slice state untouched.
func wrapFetchErr(entity string, err error) error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return stderrors.NewFetchTimeoutError(entity)
	}
	return stderrors.NewFetchFailedError(entity, err)
}

// wrapCreateErr is the create-path counterpart of wrapFetchErr.
func wrapCreateErr(entity string, err error) error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return err
	}
	return stderrors.NewCreateFailedError(entity, err)
}

// Client wraps the shared HTTP client with base URL, auth token and
// JSON encoding/decoding.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	logger  logger.Logger
}

func NewClient(cfg config.APIConfig, log logger.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		http:    http.NewClient(cfg.GetTimeout()),
		logger:  log.WithFields(map[string]interface{}{"component": "api"}),
	}
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, nethttp.MethodGet, path, nil)
}

func (c *Client) post(ctx context.Context, path string, body interface{}) ([]byte, error) {
	return c.do(ctx, nethttp.MethodPost, path, body)
}

func (c *Client) put(ctx context.Context, path string, body interface{}) ([]byte, error) {
	return c.do(ctx, nethttp.MethodPut, path, body)
}

func (c *Client) delete(ctx context.Context, path string) error {
	_, err := c.do(ctx, nethttp.MethodDelete, path, nil)
	return err
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := nethttp.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.DoWithContext(ctx, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("request failed with status %d", resp.StatusCode),
		}
		var payload errorPayload
		if jsonErr := json.Unmarshal(data, &payload); jsonErr == nil && payload.Message != "" {
			apiErr.Message = payload.Message
		}
		c.logger.Warn("api request failed", map[string]interface{}{
			"method": method,
			"path":   path,
			"status": resp.StatusCode,
		})
		return nil, apiErr
	}

	return data, nil
}

// doUpload performs a raw request with a caller-built body, used by
// the multipart file upload path.
func (c *Client) doUpload(ctx context.Context, path, contentType string, body io.Reader) ([]byte, error) {
	req, err := nethttp.NewRequest(nethttp.MethodPost, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.DoWithContext(ctx, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("upload failed with status %d", resp.StatusCode),
		}
		var payload errorPayload
		if jsonErr := json.Unmarshal(data, &payload); jsonErr == nil && payload.Message != "" {
			apiErr.Message = payload.Message
		}
		return nil, apiErr
	}

	return data, nil
}
