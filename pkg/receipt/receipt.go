// Package receipt builds the immutable record of a checkout.
package receipt

import (
	"encoding/json"
	"slices"
	"time"

	"github.com/agentstation/utc"
	"github.com/shopspring/decimal"

	"github.com/agentstation/storefront/pkg/cart"
	"github.com/agentstation/storefront/pkg/catalog"
	"github.com/agentstation/storefront/pkg/errors"
)

// Item is one purchased line.
type Item struct {
	ID    int             `json:"id" yaml:"id"`
	Name  string          `json:"name" yaml:"name"`
	Price decimal.Decimal `json:"price" yaml:"price"`
	Qty   int             `json:"qty" yaml:"qty"`
}

// Receipt is the record submitted to the backend at checkout.
type Receipt struct {
	Date  utc.Time        `json:"date" yaml:"date"`
	Items []Item          `json:"items" yaml:"items"`
	Total decimal.Decimal `json:"total" yaml:"total"`
}

// MarshalJSON writes Price as a JSON number.
func (i Item) MarshalJSON() ([]byte, error) {
	type plain Item
	return json.Marshal(struct {
		plain
		Price json.Number `json:"price"`
	}{plain(i), catalog.Number(i.Price)})
}

// MarshalJSON writes Total as a JSON number.
func (r Receipt) MarshalJSON() ([]byte, error) {
	type plain Receipt
	return json.Marshal(struct {
		plain
		Total json.Number `json:"total"`
	}{plain(r), catalog.Number(r.Total)})
}

// New derives a receipt from cart entries at the given time.
func New(entries []cart.Entry, at time.Time) *Receipt {
	items := make([]Item, 0, len(entries))
	for _, e := range entries {
		items = append(items, Item{
			ID:    e.Product.ID,
			Name:  e.Product.Name,
			Price: e.Product.Price,
			Qty:   e.Quantity,
		})
	}
	return &Receipt{
		Date:  utc.New(at),
		Items: items,
		Total: cart.Total(entries),
	}
}

// ItemList returns a copy of the receipt items.
func (r *Receipt) ItemList() []Item {
	return slices.Clone(r.Items)
}

// Validate checks a receipt received from a client.
func (r *Receipt) Validate() error {
	if len(r.Items) == 0 {
		return errors.NewValidationError("items", len(r.Items), "receipt has no items")
	}
	for _, item := range r.Items {
		if item.Qty < 1 {
			return errors.NewValidationError("qty", item.Qty, "must be at least 1")
		}
		if item.Price.IsNegative() {
			return errors.NewValidationError("price", item.Price.String(), "must not be negative")
		}
	}
	if r.Total.IsNegative() {
		return errors.NewValidationError("total", r.Total.String(), "must not be negative")
	}
	return nil
}
