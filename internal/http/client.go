// Package http wraps the FastFuels REST transport: request building, api-key
// authentication, retries, and error mapping.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fastfuels-io/fastfuels-client/internal/auth"
	"github.com/fastfuels-io/fastfuels-client/internal/constants"
	"github.com/fastfuels-io/fastfuels-client/pkg/fastfuels"
	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
)

const defaultUserAgent = "fastfuels-client-go"

// Request describes an API request.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    interface{}
	Headers map[string]string
}

// Response captures an API response with its body fully read.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Client is the HTTP client for the FastFuels API.
type Client struct {
	baseURL   string
	keys      auth.KeyProvider
	retryable *retryablehttp.Client
	userAgent string
	logger    fastfuels.Logger
	debug     bool
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the structured logger used for debug logging.
func WithLogger(logger fastfuels.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging through the configured logger.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// WithRetryConfig tunes the retry behavior for transient failures.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.retryable.RetryMax = retryMax
		c.retryable.RetryWaitMin = waitMin
		c.retryable.RetryWaitMax = waitMax
	}
}

// WithHTTPTimeout sets the per-attempt HTTP timeout.
func WithHTTPTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.retryable.HTTPClient.Timeout = timeout
		}
	}
}

// NewClient creates a new API client for the given base URL. A nil key
// provider sends requests without authentication, which only suits tests.
func NewClient(baseURL string, keys auth.KeyProvider, opts ...Option) *Client {
	retryable := retryablehttp.NewClient()
	retryable.RetryMax = constants.DefaultRetryMax
	retryable.RetryWaitMin = constants.DefaultRetryWaitMin
	retryable.RetryWaitMax = constants.DefaultRetryWaitMax
	retryable.HTTPClient.Timeout = constants.DefaultHTTPTimeout
	retryable.Logger = nil

	client := &Client{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		keys:      keys,
		retryable: retryable,
		userAgent: defaultUserAgent,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Do executes a request against the API. Non-2xx responses return both the
// response and a *fastfuels.APIError parsed from the body.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	fullURL := c.baseURL + req.Path
	if len(req.Query) > 0 {
		fullURL += "?" + req.Query.Encode()
	}

	var bodyReader io.Reader

	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}

		bodyReader = bytes.NewReader(data)
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set("X-Request-Id", uuid.NewString())

	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	if c.keys != nil {
		key, keyErr := c.keys.APIKey(ctx)
		if keyErr != nil {
			return nil, fmt.Errorf("resolving API key: %w", keyErr)
		}

		httpReq.Header.Set("api-key", key)
	}

	for name, value := range req.Headers {
		httpReq.Header.Set(name, value)
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method":     req.Method,
			"url":        fullURL,
			"request_id": httpReq.Header.Get("X-Request-Id"),
		})
	}

	start := time.Now()

	httpResp, err := c.retryable.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       body,
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"method":   req.Method,
			"url":      fullURL,
			"status":   httpResp.StatusCode,
			"duration": time.Since(start).String(),
		})
	}

	if httpResp.StatusCode >= 400 {
		return resp, fastfuels.ParseAPIError(httpResp.StatusCode, body)
	}

	return resp, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: body})
}

// Patch performs a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPatch, Path: path, Body: body})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
}

// Download streams the content behind a signed URL to w and returns the
// number of bytes written. Signed URLs carry their own authorization, so no
// api-key header is sent.
func (c *Client) Download(ctx context.Context, rawURL string, w io.Writer) (int64, error) {
	httpReq, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, fmt.Errorf("creating download request: %w", err)
	}

	httpReq.Header.Set("User-Agent", c.userAgent)

	httpResp, err := c.retryable.Do(httpReq)
	if err != nil {
		return 0, fmt.Errorf("executing download request: %w", err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	if httpResp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(httpResp.Body, 4096))

		return 0, fastfuels.ParseAPIError(httpResp.StatusCode, body)
	}

	written, err := io.Copy(w, httpResp.Body)
	if err != nil {
		return written, fmt.Errorf("streaming download: %w", err)
	}

	return written, nil
}
