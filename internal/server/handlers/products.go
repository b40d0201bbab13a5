package handlers

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/shopspring/decimal"

	"github.com/agentstation/storefront/internal/server/response"
	"github.com/agentstation/storefront/pkg/catalog"
	"github.com/agentstation/storefront/pkg/errors"
	"github.com/agentstation/storefront/pkg/logging"
)

const catalogCacheKey = "catalog"

// CatalogSource returns the products the backend serves.
type CatalogSource func() ([]catalog.Product, error)

// DemoCatalog is served when no seed file is configured.
func DemoCatalog() []catalog.Product {
	return []catalog.Product{
		{ID: 1, Name: "Notebook", Category: "Stationery", Price: decimal.RequireFromString("4.99")},
		{ID: 2, Name: "Gel Pen", Category: "Stationery", Price: decimal.RequireFromString("1.50")},
		{ID: 3, Name: "Espresso Beans", Category: "Coffee", Price: decimal.RequireFromString("12.99")},
		{ID: 4, Name: "Green Tea", Category: "Tea", Price: decimal.RequireFromString("6.25")},
		{ID: 5, Name: "Ceramic Mug", Category: "Kitchen", Price: decimal.RequireFromString("8.00")},
		{ID: 6, Name: "Desk Lamp", Category: "Home", Price: decimal.RequireFromString("24.50")},
	}
}

// StaticCatalog serves a fixed product list.
func StaticCatalog(products []catalog.Product) CatalogSource {
	return func() ([]catalog.Product, error) {
		return products, nil
	}
}

// FileCatalog reads the product list from a JSON file on every call, so
// edits show up once the cached payload expires.
func FileCatalog(path string) CatalogSource {
	return func() ([]catalog.Product, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.WrapIO("read", path, err)
		}
		products, err := catalog.Decode(data)
		if err != nil {
			return nil, err
		}
		for _, p := range products {
			if err := p.Validate(); err != nil {
				return nil, errors.WrapResource("load", "catalog", path, err)
			}
		}
		return products, nil
	}
}

// HandleProducts handles GET /api/products and GET /products.json. The body
// is a bare JSON array of products.
func (h *Handlers) HandleProducts(w http.ResponseWriter, r *http.Request) {
	body, err := h.cache.GetOrLoad(catalogCacheKey, func() ([]byte, error) {
		products, err := h.catalog()
		if err != nil {
			return nil, err
		}
		if products == nil {
			products = []catalog.Product{}
		}
		return json.Marshal(products)
	})
	if err != nil {
		logging.FromContext(r.Context()).Error().Err(err).Msg("Failed to load catalog")
		response.InternalError(w, err)
		return
	}

	response.Raw(w, http.StatusOK, body)
}

// InvalidateCatalog drops the cached catalog payload.
func (h *Handlers) InvalidateCatalog() {
	h.cache.Delete(catalogCacheKey)
}
