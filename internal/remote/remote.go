// Package remote talks to the storefront backend: it fetches the product
// catalog (with a static fallback) and submits carts and receipts.
package remote

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/storefront/pkg/constants"
)

// Paths are the backend endpoints, relative to the client's base URL.
type Paths struct {
	Products         string
	ProductsFallback string
	Cart             string
	Receipt          string
}

// DefaultPaths returns the standard backend endpoints.
func DefaultPaths() Paths {
	return Paths{
		Products:         constants.ProductsPath,
		ProductsFallback: constants.ProductsFallbackPath,
		Cart:             constants.CartPath,
		Receipt:          constants.ReceiptPath,
	}
}

// withDefaults fills empty paths from DefaultPaths.
func (p Paths) withDefaults() Paths {
	d := DefaultPaths()
	if p.Products == "" {
		p.Products = d.Products
	}
	if p.ProductsFallback == "" {
		p.ProductsFallback = d.ProductsFallback
	}
	if p.Cart == "" {
		p.Cart = d.Cart
	}
	if p.Receipt == "" {
		p.Receipt = d.Receipt
	}
	return p
}

// Option configures the remote clients.
type Option func(*options)

type options struct {
	paths  Paths
	logger *zerolog.Logger
}

// WithPaths overrides endpoint paths. Empty fields keep their defaults.
func WithPaths(p Paths) Option {
	return func(o *options) {
		o.paths = p.withDefaults()
	}
}

// WithLogger sets the logger for fallback and submission diagnostics.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func applyOptions(opts []Option) options {
	o := options{paths: DefaultPaths()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
