package storefront

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/storefront/internal/remote"
	"github.com/agentstation/storefront/internal/transport"
	"github.com/agentstation/storefront/pkg/constants"
	"github.com/agentstation/storefront/pkg/errors"
	"github.com/agentstation/storefront/pkg/export"
	"github.com/agentstation/storefront/pkg/storage"
)

// DefaultBaseURL is the backend used when none is configured.
const DefaultBaseURL = "http://localhost:8080/"

// Paths are the backend endpoint paths, resolved against the base URL.
type Paths = remote.Paths

// DefaultPaths returns the standard endpoint paths.
func DefaultPaths() Paths {
	return remote.DefaultPaths()
}

// Option is a function that configures a Client.
type Option func(*options) error

// options holds the client configuration.
type options struct {
	baseURL      string
	paths        Paths
	httpClient   *http.Client
	timeout      time.Duration
	auth         transport.Authenticator
	apiKey       string
	backend      storage.Backend
	cartKey      string
	downloadDir  string
	exportFormat export.Format
	logger       *zerolog.Logger
	now          func() time.Time
}

// defaults returns the default client configuration.
func defaults() *options {
	return &options{
		baseURL:      DefaultBaseURL,
		paths:        DefaultPaths(),
		timeout:      constants.DefaultHTTPTimeout,
		auth:         &transport.NoAuth{},
		cartKey:      constants.CartKey,
		downloadDir:  ".",
		exportFormat: export.FormatJSON,
		now:          time.Now,
	}
}

// apply applies the given options, stopping at the first error.
func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// WithBaseURL sets the backend address endpoint paths are resolved against.
func WithBaseURL(url string) Option {
	return func(o *options) error {
		if url == "" {
			return errors.NewValidationError("base_url", url, "must not be empty")
		}
		o.baseURL = url
		return nil
	}
}

// WithPaths overrides backend endpoint paths. Empty fields keep defaults.
func WithPaths(p Paths) Option {
	return func(o *options) error {
		if p.Products != "" {
			o.paths.Products = p.Products
		}
		if p.ProductsFallback != "" {
			o.paths.ProductsFallback = p.ProductsFallback
		}
		if p.Cart != "" {
			o.paths.Cart = p.Cart
		}
		if p.Receipt != "" {
			o.paths.Receipt = p.Receipt
		}
		return nil
	}
}

// WithHTTPClient replaces the HTTP client used for backend calls.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) error {
		o.httpClient = hc
		return nil
	}
}

// WithTimeout sets the backend request timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) error {
		if d < 0 {
			return errors.NewValidationError("http_timeout", d.String(), "must not be negative")
		}
		o.timeout = d
		return nil
	}
}

// WithAPIKey authenticates backend calls. scheme is "bearer",
// "header:<Name>" or "query:<param>"; an empty scheme means bearer.
func WithAPIKey(scheme, apiKey string) Option {
	return func(o *options) error {
		if scheme == "" {
			scheme = "bearer"
		}
		auth, err := transport.ParseAuth(scheme)
		if err != nil {
			return err
		}
		o.auth = auth
		o.apiKey = apiKey
		return nil
	}
}

// WithStorage sets where the cart is persisted. Without it the cart lives in
// memory only.
func WithStorage(backend storage.Backend) Option {
	return func(o *options) error {
		o.backend = backend
		return nil
	}
}

// WithCartKey overrides the key the cart is persisted under.
func WithCartKey(key string) Option {
	return func(o *options) error {
		if key == "" {
			return errors.NewValidationError("cart_key", key, "must not be empty")
		}
		o.cartKey = key
		return nil
	}
}

// WithDownloadDir sets where exported carts and receipts are written.
func WithDownloadDir(dir string) Option {
	return func(o *options) error {
		o.downloadDir = dir
		return nil
	}
}

// WithExportFormat sets the format of exported files.
func WithExportFormat(f export.Format) Option {
	return func(o *options) error {
		if !f.IsValid() {
			return errors.NewValidationError("format", f.String(), "unsupported export format")
		}
		o.exportFormat = f
		return nil
	}
}

// WithLogger sets the client logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		o.logger = logger
		return nil
	}
}

// WithClock sets the time source used for receipt dates and file names.
func WithClock(now func() time.Time) Option {
	return func(o *options) error {
		if now != nil {
			o.now = now
		}
		return nil
	}
}
