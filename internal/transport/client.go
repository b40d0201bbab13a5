// Package transport is the HTTP layer shared by the storefront's remote
// clients: base URL resolution, authentication, request ids, and turning
// failed responses into typed errors.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/agentstation/storefront/pkg/constants"
	"github.com/agentstation/storefront/pkg/errors"
	"github.com/agentstation/storefront/pkg/logging"
)

// DefaultHTTPTimeout is the default timeout for HTTP requests.
var DefaultHTTPTimeout = constants.DefaultHTTPTimeout

// RequestIDHeader carries a per-request id to the backend.
const RequestIDHeader = "X-Request-ID"

// Client provides HTTP client functionality with authentication.
type Client struct {
	http    *http.Client
	auth    Authenticator
	apiKey  string
	baseURL *url.URL
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the request timeout. Zero keeps the default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithAuth authenticates every request with apiKey. An empty key disables it.
func WithAuth(auth Authenticator, apiKey string) Option {
	return func(c *Client) {
		c.auth = auth
		c.apiKey = apiKey
	}
}

// New creates a client resolving paths against baseURL, the way a page
// resolves links against its own address.
func New(baseURL string, opts ...Option) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, errors.NewValidationError("base_url", baseURL, "must be an absolute http(s) URL")
	}

	c := &Client{
		http:    &http.Client{Timeout: DefaultHTTPTimeout},
		auth:    &NoAuth{},
		baseURL: base,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the base the client resolves paths against.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Resolve turns a path such as "/api/products" or "./products.json" into an
// absolute URL.
func (c *Client) Resolve(path string) (string, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return "", errors.NewValidationError("path", path, err.Error())
	}
	return c.baseURL.ResolveReference(ref).String(), nil
}

// Do performs an HTTP request with authentication and common headers applied.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	if c.apiKey != "" && c.auth != nil {
		c.auth.Apply(req, c.apiKey)
	}

	req.Header.Set("Accept", "application/json")
	if req.Method == http.MethodPost || req.Method == http.MethodPut || req.Method == http.MethodPatch {
		req.Header.Set("Content-Type", "application/json")
	}

	requestID := logging.RequestID(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	req.Header.Set(RequestIDHeader, requestID)

	logging.FromContext(ctx).Debug().
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Str("request_id", requestID).
		Msg("HTTP request")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &errors.APIError{
			Method:   req.Method,
			Endpoint: req.URL.Path,
			Err:      err,
		}
	}
	return resp, nil
}

// Get performs a GET request. Extra headers are applied as given.
func (c *Client) Get(ctx context.Context, path string, header http.Header) (*http.Response, error) {
	target, err := c.Resolve(path)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, errors.WrapResource("create", "request", "GET "+target, err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	return c.Do(ctx, req)
}

// PostJSON encodes body as JSON and POSTs it.
func (c *Client) PostJSON(ctx context.Context, path string, body any) (*http.Response, error) {
	target, err := c.Resolve(path)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, errors.WrapParse("json", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(data))
	if err != nil {
		return nil, errors.WrapResource("create", "request", "POST "+target, err)
	}
	return c.Do(ctx, req)
}

// ReadBody reads and closes a successful response body. Bodies larger than
// MaxPayloadSize are rejected rather than truncated.
func ReadBody(resp *http.Response) ([]byte, error) {
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, constants.MaxPayloadSize+1))
	if err != nil {
		return nil, errors.WrapIO("read", "response body", err)
	}
	if int64(len(body)) > constants.MaxPayloadSize {
		return nil, errors.NewIOError("read", "response body",
			fmt.Errorf("payload too large: exceeds %d bytes", int64(constants.MaxPayloadSize)))
	}
	return body, nil
}

// readErrorText reads and closes a failed response body, keeping at most
// MaxResponseBodySize bytes of it.
func readErrorText(resp *http.Response) []byte {
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, constants.MaxResponseBodySize))
	return body
}
