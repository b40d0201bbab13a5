package handlers

import (
	"net/http"
	"time"

	"github.com/agentstation/storefront/internal/server/response"
)

// HandleHealth handles GET /health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	carts, receipts := h.store.Counts()
	response.OK(w, map[string]any{
		"status":   "healthy",
		"service":  "storefront-dev",
		"uptime":   time.Since(h.startTime).Round(time.Second).String(),
		"cached":   h.cache.ItemCount(),
		"carts":    carts,
		"receipts": receipts,
	})
}
