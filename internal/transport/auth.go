package transport

import (
	"net/http"
	"strings"

	"github.com/agentstation/storefront/pkg/errors"
)

// Authenticator applies authentication to HTTP requests.
type Authenticator interface {
	Apply(req *http.Request, apiKey string)
}

// NoAuth implements no authentication.
type NoAuth struct{}

// Apply implements the Authenticator interface for NoAuth.
func (a *NoAuth) Apply(_ *http.Request, _ string) {}

// BearerAuth implements Bearer token authentication.
type BearerAuth struct{}

// Apply implements the Authenticator interface for BearerAuth.
func (a *BearerAuth) Apply(req *http.Request, apiKey string) {
	req.Header.Set("Authorization", "Bearer "+apiKey)
}

// HeaderAuth implements custom header authentication.
type HeaderAuth struct {
	Header string
}

// Apply implements the Authenticator interface for HeaderAuth.
func (a *HeaderAuth) Apply(req *http.Request, apiKey string) {
	req.Header.Set(a.Header, apiKey)
}

// QueryAuth implements API key as query parameter authentication.
type QueryAuth struct {
	Param string
}

// Apply implements the Authenticator interface for QueryAuth.
func (a *QueryAuth) Apply(req *http.Request, apiKey string) {
	if req.URL == nil {
		return
	}

	query := req.URL.Query()
	query.Set(a.Param, apiKey)
	req.URL.RawQuery = query.Encode()
}

// ParseAuth builds an authenticator from a scheme string:
// "" or "none", "bearer", "header:<Name>", or "query:<param>".
func ParseAuth(scheme string) (Authenticator, error) {
	kind, arg, _ := strings.Cut(strings.TrimSpace(scheme), ":")
	switch strings.ToLower(kind) {
	case "", "none":
		return &NoAuth{}, nil
	case "bearer":
		return &BearerAuth{}, nil
	case "header":
		if arg == "" {
			return nil, errors.NewValidationError("auth", scheme, "header scheme needs a header name")
		}
		return &HeaderAuth{Header: arg}, nil
	case "query":
		if arg == "" {
			return nil, errors.NewValidationError("auth", scheme, "query scheme needs a parameter name")
		}
		return &QueryAuth{Param: arg}, nil
	default:
		return nil, errors.NewValidationError("auth", scheme, "unknown auth scheme")
	}
}
