// Package handlers provides HTTP request handlers for the storefront dev
// backend.
package handlers

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/storefront/internal/server/cache"
)

// Handlers provides access to all HTTP handlers.
type Handlers struct {
	cache     *cache.Cache
	catalog   CatalogSource
	store     *Submissions
	logger    *zerolog.Logger
	startTime time.Time
}

// New creates a new Handlers instance.
func New(cache *cache.Cache, catalog CatalogSource, store *Submissions, logger *zerolog.Logger) *Handlers {
	return &Handlers{
		cache:     cache,
		catalog:   catalog,
		store:     store,
		logger:    logger,
		startTime: time.Now(),
	}
}
