package storefront

import (
	"context"

	"github.com/agentstation/storefront/pkg/catalog"
	"github.com/agentstation/storefront/pkg/errors"
)

// LoadCatalog fetches the catalog and replaces the current one. On failure
// the current catalog is kept and a catalog-load error is returned.
func (c *client) LoadCatalog(ctx context.Context) ([]catalog.Product, error) {
	products, err := c.catalogClient.FetchCatalog(ctx)
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to load catalog")
		return nil, errors.WrapResource("load", "catalog", "", err)
	}

	products = catalog.SortByID(products)
	c.catalog.Set(products)
	c.logger.Debug().Int("products", len(products)).Msg("Catalog loaded")

	c.hooks.triggerCatalogLoaded(products)
	return c.catalog.List(), nil
}

// Products returns a copy of the current catalog.
func (c *client) Products() []catalog.Product {
	return c.catalog.List()
}

// Search returns products whose name or category contains query.
func (c *client) Search(query string) []catalog.Product {
	return c.catalog.Search(query)
}

// Product looks up a product in the current catalog.
func (c *client) Product(id int) (catalog.Product, error) {
	return c.catalog.Get(id)
}
