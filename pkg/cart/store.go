package cart

import (
	"context"
	"slices"
	"sync"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/agentstation/storefront/pkg/catalog"
	"github.com/agentstation/storefront/pkg/logging"
)

// Persister stores and restores cart contents. Load never fails: missing or
// unreadable state comes back as an empty cart.
type Persister interface {
	Load(ctx context.Context) []Entry
	Save(ctx context.Context, entries []Entry) error
}

// Store is the cart. It is safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	entries   []Entry
	persister Persister
	logger    *zerolog.Logger

	hooksMu sync.RWMutex
	hooks   []ChangeHook
}

// Option configures a Store.
type Option func(*Store)

// WithPersister sets where the cart is saved after each mutation.
func WithPersister(p Persister) Option {
	return func(s *Store) {
		s.persister = p
	}
}

// WithLogger sets the logger used for persistence failures.
func WithLogger(logger *zerolog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// New creates an empty store.
func New(opts ...Option) *Store {
	s := &Store{entries: []Entry{}}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.Default()
	}
	return s
}

// OnChange registers a hook called after every mutation.
func (s *Store) OnChange(hook ChangeHook) {
	s.hooksMu.Lock()
	defer s.hooksMu.Unlock()
	s.hooks = append(s.hooks, hook)
}

// Load replaces the cart with the persisted contents.
func (s *Store) Load(ctx context.Context) {
	var loaded []Entry
	if s.persister != nil {
		loaded = Normalize(s.persister.Load(ctx))
	} else {
		loaded = []Entry{}
	}

	s.mu.Lock()
	s.entries = loaded
	snapshot := slices.Clone(s.entries)
	s.mu.Unlock()

	s.emit(Event{Kind: EventLoaded, Index: -1, Entries: snapshot})
}

// Add puts one unit of product into the cart, incrementing the existing entry
// for the same product id when there is one.
func (s *Store) Add(ctx context.Context, product catalog.Product) {
	s.mu.Lock()
	index := slices.IndexFunc(s.entries, func(e Entry) bool {
		return e.Product.ID == product.ID
	})
	if index >= 0 {
		s.entries[index].Quantity++
	} else {
		index = len(s.entries)
		s.entries = append(s.entries, Entry{Product: product, Quantity: 1})
	}
	snapshot := s.persistLocked(ctx)
	s.mu.Unlock()

	s.emit(Event{Kind: EventAdded, Index: index, Entries: snapshot})
}

// ChangeQuantity adds delta to the quantity at index, never going below 1.
// It reports false and changes nothing when index is out of range.
func (s *Store) ChangeQuantity(ctx context.Context, index, delta int) bool {
	s.mu.Lock()
	if index < 0 || index >= len(s.entries) {
		s.mu.Unlock()
		return false
	}
	s.entries[index].Quantity = max(1, s.entries[index].Quantity+delta)
	snapshot := s.persistLocked(ctx)
	s.mu.Unlock()

	s.emit(Event{Kind: EventQuantityChanged, Index: index, Entries: snapshot})
	return true
}

// Increment is ChangeQuantity(index, 1).
func (s *Store) Increment(ctx context.Context, index int) bool {
	return s.ChangeQuantity(ctx, index, 1)
}

// Decrement is ChangeQuantity(index, -1). It never removes the entry.
func (s *Store) Decrement(ctx context.Context, index int) bool {
	return s.ChangeQuantity(ctx, index, -1)
}

// Remove deletes the entry at index. Out-of-range indexes are ignored.
func (s *Store) Remove(ctx context.Context, index int) bool {
	s.mu.Lock()
	if index < 0 || index >= len(s.entries) {
		s.mu.Unlock()
		return false
	}
	s.entries = slices.Delete(s.entries, index, index+1)
	snapshot := s.persistLocked(ctx)
	s.mu.Unlock()

	s.emit(Event{Kind: EventRemoved, Index: index, Entries: snapshot})
	return true
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.entries = []Entry{}
	snapshot := s.persistLocked(ctx)
	s.mu.Unlock()

	s.emit(Event{Kind: EventCleared, Index: -1, Entries: snapshot})
}

// Entries returns a copy of the cart contents in insertion order.
func (s *Store) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.entries)
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// IsEmpty reports whether the cart has no entries.
func (s *Store) IsEmpty() bool {
	return s.Len() == 0
}

// Total returns the sum of price × quantity over all entries.
func (s *Store) Total() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Total(s.entries)
}

// persistLocked saves the current entries and returns a snapshot of them.
// Save failures are logged and dropped. Callers hold s.mu.
func (s *Store) persistLocked(ctx context.Context) []Entry {
	snapshot := slices.Clone(s.entries)
	if s.persister == nil {
		return snapshot
	}
	if err := s.persister.Save(ctx, snapshot); err != nil {
		s.logger.Warn().Err(err).Int("entries", len(snapshot)).Msg("cart not persisted")
	}
	return snapshot
}

func (s *Store) emit(event Event) {
	s.hooksMu.RLock()
	hooks := slices.Clone(s.hooks)
	s.hooksMu.RUnlock()

	for _, hook := range hooks {
		hook(event)
	}
}
