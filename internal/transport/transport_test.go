package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/storefront/pkg/constants"
	"github.com/agentstation/storefront/pkg/errors"
	"github.com/agentstation/storefront/pkg/logging"
)

// TestNoAuth tests that NoAuth applies no authentication.
func TestNoAuth(t *testing.T) {
	auth := &NoAuth{}
	req := &http.Request{Header: make(http.Header)}

	auth.Apply(req, "test-api-key")

	if len(req.Header) != 0 {
		t.Errorf("Expected no headers, got %d", len(req.Header))
	}
}

// TestBearerAuth tests Bearer token authentication.
func TestBearerAuth(t *testing.T) {
	auth := &BearerAuth{}
	req := &http.Request{Header: make(http.Header)}

	auth.Apply(req, "test-api-key")

	if got := req.Header.Get("Authorization"); got != "Bearer test-api-key" {
		t.Errorf("Expected Authorization header 'Bearer test-api-key', got '%s'", got)
	}
}

// TestHeaderAuth tests custom header authentication.
func TestHeaderAuth(t *testing.T) {
	auth := &HeaderAuth{Header: "x-api-key"}
	req := &http.Request{Header: make(http.Header)}

	auth.Apply(req, "test-api-key")

	if got := req.Header.Get("x-api-key"); got != "test-api-key" {
		t.Errorf("Expected x-api-key header 'test-api-key', got '%s'", got)
	}
	if req.Header.Get("Authorization") != "" {
		t.Error("Should not have Authorization header")
	}
}

// TestQueryAuth tests query parameter authentication.
func TestQueryAuth(t *testing.T) {
	auth := &QueryAuth{Param: "key"}
	reqURL, _ := url.Parse("https://shop.example.com/api/cart?x=1")
	req := &http.Request{URL: reqURL, Header: make(http.Header)}

	auth.Apply(req, "test-api-key")

	if req.URL.Query().Get("key") != "test-api-key" {
		t.Errorf("Expected query param 'key=test-api-key', got '%s'", req.URL.RawQuery)
	}
	if req.URL.Query().Get("x") != "1" {
		t.Error("Existing query parameters should be preserved")
	}

	// A request without a URL is left alone.
	auth.Apply(&http.Request{Header: make(http.Header)}, "test-api-key")
}

func TestParseAuth(t *testing.T) {
	tests := []struct {
		scheme  string
		want    Authenticator
		wantErr bool
	}{
		{"", &NoAuth{}, false},
		{"none", &NoAuth{}, false},
		{"Bearer", &BearerAuth{}, false},
		{"header:X-API-Key", &HeaderAuth{Header: "X-API-Key"}, false},
		{"query:key", &QueryAuth{Param: "key"}, false},
		{"header:", nil, true},
		{"query", nil, true},
		{"digest", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.scheme, func(t *testing.T) {
			got, err := ParseAuth(tt.scheme)
			if tt.wantErr {
				assert.True(t, errors.IsValidationError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewRejectsRelativeBase(t *testing.T) {
	for _, base := range []string{"", "localhost:8080", "/api", "::bad"} {
		_, err := New(base)
		assert.Error(t, err, "base %q", base)
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		base string
		path string
		want string
	}{
		{"http://localhost:8080", "/api/products", "http://localhost:8080/api/products"},
		{"http://localhost:8080/", "./products.json", "http://localhost:8080/products.json"},
		{"http://shop.example.com/store/", "./products.json", "http://shop.example.com/store/products.json"},
		{"http://shop.example.com/store/", "/api/cart", "http://shop.example.com/api/cart"},
		{"http://localhost:8080", "https://cdn.example.com/products.json", "https://cdn.example.com/products.json"},
	}

	for _, tt := range tests {
		t.Run(tt.base+tt.path, func(t *testing.T) {
			c, err := New(tt.base)
			require.NoError(t, err)
			got, err := c.Resolve(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClientHeaders(t *testing.T) {
	var got http.Header
	var body []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		body, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	c, err := New(server.URL, WithAuth(&BearerAuth{}, "secret"), WithTimeout(time.Second))
	require.NoError(t, err)

	resp, err := c.PostJSON(context.Background(), "/api/cart", map[string]int{"quantity": 2})
	require.NoError(t, err)
	_, _ = ReadBody(resp)

	assert.Equal(t, "Bearer secret", got.Get("Authorization"))
	assert.Equal(t, "application/json", got.Get("Content-Type"))
	assert.Equal(t, "application/json", got.Get("Accept"))
	assert.Len(t, got.Get(RequestIDHeader), 36, "uuid request id")
	assert.JSONEq(t, `{"quantity":2}`, string(body))
}

func TestClientPropagatesContextRequestID(t *testing.T) {
	var got string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get(RequestIDHeader)
		assert.Equal(t, "no-store", r.Header.Get("Cache-Control"))
	}))
	defer server.Close()

	c, err := New(server.URL)
	require.NoError(t, err)

	ctx := logging.WithRequestID(context.Background(), "req-42")
	resp, err := c.Get(ctx, "/api/products", http.Header{"Cache-Control": {"no-store"}})
	require.NoError(t, err)
	_, _ = ReadBody(resp)
	assert.Equal(t, "req-42", got)
}

func TestClientNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	addr := server.URL
	server.Close()

	c, err := New(addr)
	require.NoError(t, err)

	_, err = c.Get(context.Background(), "/api/products", nil)
	var apiErr *errors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.MethodGet, apiErr.Method)
	assert.Equal(t, "/api/products", apiErr.Endpoint)
	assert.Zero(t, apiErr.StatusCode)
}

func TestResponseError(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
		unavailable bool
	}{
		{"body text", http.StatusBadRequest, "quantity must be at least 1\n", "quantity must be at least 1", false},
		{"empty body", http.StatusInternalServerError, "", "Server responded 500", true},
		{"whitespace body", http.StatusBadGateway, "  ", "Server responded 502", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			c, err := New(server.URL)
			require.NoError(t, err)
			resp, err := c.PostJSON(context.Background(), "/api/receipt", struct{}{})
			require.NoError(t, err)
			require.False(t, Success(resp))

			err = ResponseError(resp)
			var apiErr *errors.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.wantMessage, apiErr.Message)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, "/api/receipt", apiErr.Endpoint)
			assert.Equal(t, tt.unavailable, errors.IsServerUnavailable(err))
			assert.Equal(t, tt.wantMessage, errors.UserMessage(err))
		})
	}
}

func TestDecodeResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
		case "/bad":
			_, _ = w.Write([]byte("{not json"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	c, err := New(server.URL)
	require.NoError(t, err)
	ctx := context.Background()

	resp, err := c.Get(ctx, "/ok", nil)
	require.NoError(t, err)
	var out map[string]string
	require.NoError(t, DecodeResponse(resp, &out))
	assert.Equal(t, "ok", out["status"])

	resp, err = c.Get(ctx, "/bad", nil)
	require.NoError(t, err)
	var parseErr *errors.ParseError
	assert.ErrorAs(t, DecodeResponse(resp, &out), &parseErr)

	resp, err = c.Get(ctx, "/missing", nil)
	require.NoError(t, err)
	err = DecodeResponse(resp, &out)
	var apiErr *errors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestReadBodyKeepsLargePayload(t *testing.T) {
	payload := strings.Repeat("x", 3<<20)
	resp := &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(strings.NewReader(payload))}

	body, err := ReadBody(resp)
	require.NoError(t, err)
	assert.Len(t, body, len(payload))
}

func TestReadBodyRejectsOversizedPayload(t *testing.T) {
	oversized := bytes.NewReader(make([]byte, constants.MaxPayloadSize+1))
	resp := &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(oversized)}

	_, err := ReadBody(resp)
	var ioErr *errors.IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Contains(t, ioErr.Message, "payload too large")
}

func TestResponseErrorCapsText(t *testing.T) {
	text := strings.Repeat("e", constants.MaxResponseBodySize+100)
	resp := &http.Response{
		StatusCode: http.StatusBadRequest,
		Body:       io.NopCloser(strings.NewReader(text)),
	}

	var apiErr *errors.APIError
	require.ErrorAs(t, ResponseError(resp), &apiErr)
	assert.Len(t, apiErr.Message, constants.MaxResponseBodySize)
}

func TestNewUsesPlatformDefaultTimeout(t *testing.T) {
	c, err := New("http://localhost:8080/")
	require.NoError(t, err)
	assert.Zero(t, c.http.Timeout)

	c, err = New("http://localhost:8080/", WithTimeout(2*time.Second))
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, c.http.Timeout)
}
