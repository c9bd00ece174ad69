// Package notion is a minimal client for the Notion HTTP API, covering the
// two operations a published blog needs: querying a database for pages and
// listing the child blocks of a page.
package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	slogctx "github.com/veqryn/slog-context"
)

const (
	defaultBaseURL = "https://api.notion.com/v1"
	apiVersion     = "2022-06-28"
)

// Client talks to the Notion API with a bearer token. Construct one with
// NewClient and pass it down explicitly; there is no package-level instance.
type Client struct {
	token   string
	baseURL string
	httpc   *http.Client
}

// ClientOption configures additional Client behavior.
type ClientOption func(*Client)

// WithBaseURL overrides the API endpoint (used by tests).
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) {
		c.httpc = h
	}
}

// NewClient creates a Client authenticating with the given integration token.
func NewClient(token string, opts ...ClientOption) *Client {
	c := &Client{
		token:   token,
		baseURL: defaultBaseURL,
		httpc:   &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// QueryDatabase runs a single database query and returns the matching pages.
func (c *Client) QueryDatabase(ctx context.Context, databaseID string, q DatabaseQuery) ([]Page, error) {
	var list pageList
	path := "/databases/" + databaseID + "/query"
	if err := c.do(ctx, http.MethodPost, path, q, &list); err != nil {
		return nil, err
	}
	return list.Results, nil
}

// BlockChildren lists the child blocks of a block or page in a single
// request. The API's own ordering is returned as-is.
func (c *Client) BlockChildren(ctx context.Context, blockID string) ([]Block, error) {
	var list blockList
	path := "/blocks/" + blockID + "/children"
	if err := c.do(ctx, http.MethodGet, path, nil, &list); err != nil {
		return nil, err
	}
	return list.Results, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("notion: encode request: %w", err)
		}
		reqBody = bytes.NewReader(b)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("notion: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", apiVersion)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	slogctx.FromCtx(ctx).DebugContext(ctx, "notion request",
		slog.String("Method", method),
		slog.String("Path", path),
	)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("notion: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{Status: resp.StatusCode}
		// The body usually carries a structured error object; if it does
		// not decode, the status code alone still identifies the failure.
		_ = json.NewDecoder(resp.Body).Decode(apiErr)
		apiErr.Status = resp.StatusCode
		return apiErr
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("notion: decode response: %w", err)
	}
	return nil
}
