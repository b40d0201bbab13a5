// Package cache holds encoded responses of the dev backend in memory with a
// TTL, using patrickmn/go-cache.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache wraps go-cache for encoded response bodies.
type Cache struct {
	store *gocache.Cache
}

// New creates a new cache with the given TTL and cleanup interval.
func New(defaultTTL, cleanupInterval time.Duration) *Cache {
	return &Cache{
		store: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get returns the body cached under key.
func (c *Cache) Get(key string) ([]byte, bool) {
	v, ok := c.store.Get(key)
	if !ok {
		return nil, false
	}
	body, ok := v.([]byte)
	return body, ok
}

// Set stores body under key with the default TTL.
func (c *Cache) Set(key string, body []byte) {
	c.store.Set(key, body, gocache.DefaultExpiration)
}

// GetOrLoad returns the cached body for key, calling load and caching its
// result on a miss. Errors are not cached.
func (c *Cache) GetOrLoad(key string, load func() ([]byte, error)) ([]byte, error) {
	if body, ok := c.Get(key); ok {
		return body, nil
	}
	body, err := load()
	if err != nil {
		return nil, err
	}
	c.Set(key, body)
	return body, nil
}

// Delete removes a value from the cache.
func (c *Cache) Delete(key string) {
	c.store.Delete(key)
}

// Clear removes all items from the cache.
func (c *Cache) Clear() {
	c.store.Flush()
}

// ItemCount returns the number of items in the cache.
func (c *Cache) ItemCount() int {
	return c.store.ItemCount()
}
