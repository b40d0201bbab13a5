// Package cart implements the shopping cart: an ordered list of product
// entries with at most one entry per product id, persisted after every
// mutation and observable through typed change events.
package cart

import (
	"github.com/shopspring/decimal"

	"github.com/agentstation/storefront/pkg/catalog"
)

// Entry is one cart line. It keeps a full snapshot of the product so the cart
// stays readable when the catalog is unavailable.
type Entry struct {
	Product  catalog.Product `json:"product" yaml:"product"`
	Quantity int             `json:"quantity" yaml:"quantity"`
}

// Subtotal returns price × quantity.
func (e Entry) Subtotal() decimal.Decimal {
	return e.Product.Price.Mul(decimal.NewFromInt(int64(e.Quantity)))
}

// Total sums the subtotals of entries. An empty slice totals zero.
func Total(entries []Entry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Subtotal())
	}
	return total
}

// Normalize returns entries with quantities of at least 1 and duplicate
// product ids merged into the first occurrence.
func Normalize(entries []Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	index := make(map[int]int, len(entries))
	for _, e := range entries {
		if e.Quantity < 1 {
			e.Quantity = 1
		}
		if i, ok := index[e.Product.ID]; ok {
			out[i].Quantity += e.Quantity
			continue
		}
		index[e.Product.ID] = len(out)
		out = append(out, e)
	}
	return out
}
