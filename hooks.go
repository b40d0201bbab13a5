package storefront

import (
	"slices"
	"sync"

	"github.com/agentstation/storefront/pkg/cart"
	"github.com/agentstation/storefront/pkg/catalog"
)

// CatalogLoadedHook is called with the sorted catalog after each successful load.
type CatalogLoadedHook func(products []catalog.Product)

// hooks manages client-level event callbacks
type hooks struct {
	mu              sync.RWMutex
	onCatalogLoaded []CatalogLoadedHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnCartChange registers a callback for cart mutations.
func (c *client) OnCartChange(hook cart.ChangeHook) {
	c.cart.OnChange(hook)
}

// OnCatalogLoaded registers a callback for catalog loads.
func (c *client) OnCatalogLoaded(hook CatalogLoadedHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onCatalogLoaded = append(c.hooks.onCatalogLoaded, hook)
}

// triggerCatalogLoaded calls every catalog hook with its own copy of products.
func (h *hooks) triggerCatalogLoaded(products []catalog.Product) {
	h.mu.RLock()
	fns := slices.Clone(h.onCatalogLoaded)
	h.mu.RUnlock()

	for _, fn := range fns {
		fn(slices.Clone(products))
	}
}
