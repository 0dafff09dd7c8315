// Package http implements the request dispatch pipeline shared by all API
// operations: auth header injection, timeout enforcement, and uniform
// decoding of success and error responses.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/craftbase-io/cms-client/internal/constants"
	"github.com/craftbase-io/cms-client/pkg/cms"
)

// TokenProvider supplies the bearer token attached to requests.
type TokenProvider interface {
	GetToken(ctx context.Context) (string, error)
}

// Client dispatches HTTP requests to the API.
type Client struct {
	baseURL        string
	tokens         TokenProvider
	httpClient     *retryablehttp.Client
	defaultHeaders map[string]string
	userAgent      string
	timeout        time.Duration
	logger         cms.Logger
	debug          bool
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets a logger for the client.
func WithLogger(logger cms.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithTimeout sets the wall-clock limit applied to each request.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithDefaultHeaders sets headers sent on every request. Per-request headers
// override them.
func WithDefaultHeaders(headers map[string]string) Option {
	return func(c *Client) {
		for key, value := range headers {
			c.defaultHeaders[key] = value
		}
	}
}

// NewClient creates a new HTTP client for the given base URL. The token
// provider may be nil for unauthenticated use.
func NewClient(baseURL string, tokens TokenProvider, opts ...Option) *Client {
	// Single attempt per call: a timeout aborts the request and the failure
	// is surfaced, never retried. The no-op retry policy also keeps non-2xx
	// responses flowing through instead of being consumed by retry handling.
	transport := retryablehttp.NewClient()
	transport.RetryMax = 0
	transport.Logger = nil
	transport.CheckRetry = func(_ context.Context, _ *http.Response, err error) (bool, error) {
		return false, err
	}

	client := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		tokens:     tokens,
		httpClient: transport,
		defaultHeaders: map[string]string{
			"Content-Type": constants.ContentTypeJSON,
		},
		timeout: constants.DefaultHTTPTimeout,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Request describes a single API request.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    interface{}
	Headers map[string]string
	ETag    string
}

// Response is a decoded API response.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	ETag       string
}

// Do sends one request. Header precedence, lowest to highest: client default
// headers, per-request headers, the Authorization bearer header, the
// merge-patch content type forced on PATCH, and If-Match when an ETag is
// supplied. On a non-2xx status both the response and a *cms.APIError are
// returned; a timeout yields a *cms.APIError with status 408 and code
// cms.CodeTimeout; other transport failures are returned wrapped.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	var token string

	if c.tokens != nil {
		var err error

		token, err = c.tokens.GetToken(ctx)
		if err != nil {
			return nil, err
		}
	}

	target := c.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var bodyReader io.Reader

	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}

		bodyReader = bytes.NewReader(payload)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, target, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	for key, value := range c.defaultHeaders {
		httpReq.Header.Set(key, value)
	}

	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	if req.Method == http.MethodPatch {
		httpReq.Header.Set("Content-Type", constants.ContentTypeMergePatch)
	}

	if req.ETag != "" {
		httpReq.Header.Set("If-Match", req.ETag)
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    target,
		})
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, cms.NewTimeoutError()
		}

		return nil, fmt.Errorf("sending request: %w", err)
	}

	defer func() { _ = httpResp.Body.Close() }()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, cms.NewTimeoutError()
		}

		return nil, fmt.Errorf("reading response body: %w", err)
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       body,
		ETag:       httpResp.Header.Get("ETag"),
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status": resp.StatusCode,
			"url":    target,
		})
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return resp, cms.ParseAPIError(resp.StatusCode, body)
	}

	return resp, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodGet,
		Path:   path,
		Query:  query,
	})
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodPost,
		Path:   path,
		Body:   body,
	})
}

// Patch performs a PATCH request with a JSON merge-patch body. A non-empty
// etag sets the If-Match precondition.
func (c *Client) Patch(ctx context.Context, path string, body interface{}, etag string) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodPatch,
		Path:   path,
		Body:   body,
		ETag:   etag,
	})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodDelete,
		Path:   path,
	})
}
