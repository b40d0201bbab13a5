package storage

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/agentstation/storefront/pkg/cart"
	"github.com/agentstation/storefront/pkg/constants"
	"github.com/agentstation/storefront/pkg/errors"
	"github.com/agentstation/storefront/pkg/logging"
)

// Adapter stores the cart as JSON under one key. It implements
// cart.Persister.
type Adapter struct {
	backend Backend
	key     string
	logger  *zerolog.Logger
}

var _ cart.Persister = (*Adapter)(nil)

// AdapterOption configures an Adapter.
type AdapterOption func(*Adapter)

// WithKey overrides the storage key.
func WithKey(key string) AdapterOption {
	return func(a *Adapter) {
		if key != "" {
			a.key = key
		}
	}
}

// WithLogger sets the logger for recovered failures.
func WithLogger(logger *zerolog.Logger) AdapterOption {
	return func(a *Adapter) {
		a.logger = logger
	}
}

// NewAdapter creates an adapter over backend using the default cart key.
func NewAdapter(backend Backend, opts ...AdapterOption) *Adapter {
	a := &Adapter{
		backend: backend,
		key:     constants.CartKey,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = logging.Default()
	}
	return a
}

// Key returns the key the cart is stored under.
func (a *Adapter) Key() string {
	return a.key
}

// Load returns the stored cart. A missing value, a read failure, or a value
// that is not a JSON list of entries all yield an empty cart.
func (a *Adapter) Load(ctx context.Context) []cart.Entry {
	raw, err := a.backend.Get(ctx, a.key)
	if errors.IsNotFound(err) {
		return []cart.Entry{}
	}
	if err != nil {
		a.logger.Warn().Err(err).Str("key", a.key).Msg("Failed to read stored cart, starting empty")
		return []cart.Entry{}
	}

	var entries []cart.Entry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		a.logger.Warn().
			Err(errors.WrapParse("json", a.key, err)).
			Str("key", a.key).
			Msg("Stored cart is corrupt, starting empty")
		return []cart.Entry{}
	}
	if entries == nil {
		entries = []cart.Entry{}
	}
	return entries
}

// Save writes entries. Failures are returned as *errors.IOError.
func (a *Adapter) Save(ctx context.Context, entries []cart.Entry) error {
	if entries == nil {
		entries = []cart.Entry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return errors.WrapIO("encode", a.key, err)
	}
	if err := a.backend.Set(ctx, a.key, string(data)); err != nil {
		a.logger.Debug().Err(err).Str("key", a.key).Msg("Cart write failed")
		return errors.WrapIO("write", a.key, err)
	}
	return nil
}

// Reset removes the stored cart.
func (a *Adapter) Reset(ctx context.Context) error {
	return errors.WrapIO("delete", a.key, a.backend.Delete(ctx, a.key))
}
