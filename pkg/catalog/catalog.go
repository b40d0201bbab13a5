package catalog

import (
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/agentstation/storefront/pkg/errors"
)

// Catalog is a concurrency-safe, ordered list of products.
type Catalog struct {
	mu       sync.RWMutex
	products []Product
}

// New creates a catalog holding a copy of products in the given order.
func New(products ...Product) *Catalog {
	c := &Catalog{}
	c.Set(products)
	return c
}

// Set replaces the catalog contents with a copy of products.
func (c *Catalog) Set(products []Product) {
	cp := slices.Clone(products)
	if cp == nil {
		cp = []Product{}
	}

	c.mu.Lock()
	c.products = cp
	c.mu.Unlock()
}

// List returns a copy of all products in catalog order.
func (c *Catalog) List() []Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.products)
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.products)
}

// Get returns the product with the given id.
func (c *Catalog) Get(id int) (Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, p := range c.products {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, errors.NewNotFoundError("product", strconv.Itoa(id))
}

// Search returns the products whose name or category contains query,
// ignoring case and surrounding whitespace. An empty query matches everything.
func (c *Catalog) Search(query string) []Product {
	q := strings.ToLower(strings.TrimSpace(query))

	c.mu.RLock()
	defer c.mu.RUnlock()

	matches := make([]Product, 0, len(c.products))
	for _, p := range c.products {
		if q == "" ||
			strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Category), q) {
			matches = append(matches, p)
		}
	}
	return matches
}

// SortByID returns a copy of products ordered by ascending id.
func SortByID(products []Product) []Product {
	sorted := slices.Clone(products)
	slices.SortStableFunc(sorted, func(a, b Product) int {
		return a.ID - b.ID
	})
	return sorted
}
