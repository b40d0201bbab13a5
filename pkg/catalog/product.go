// Package catalog holds the product catalog as served by the storefront
// backend: the Product value type, JSON decoding with the backend's field
// names, and a concurrency-safe Catalog collection with lookup and search.
package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/agentstation/storefront/pkg/errors"
)

// Product is a purchasable item. Products are immutable from the client's
// point of view; the JSON names match the backend payload.
type Product struct {
	ID       int             `json:"Id" yaml:"id"`
	Name     string          `json:"Name" yaml:"name"`
	Category string          `json:"Category" yaml:"category"`
	Price    decimal.Decimal `json:"Price" yaml:"price"`
}

// MarshalJSON writes Price as a JSON number, the form the backend sends and
// expects.
func (p Product) MarshalJSON() ([]byte, error) {
	type plain Product
	return json.Marshal(struct {
		plain
		Price json.Number `json:"Price"`
	}{plain(p), Number(p.Price)})
}

// Number renders an amount as a JSON number literal.
func Number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

// String returns "Name ($price)".
func (p Product) String() string {
	return fmt.Sprintf("%s (%s)", p.Name, FormatMoney(p.Price))
}

// Validate reports whether the product can be sold.
func (p Product) Validate() error {
	if p.Price.IsNegative() {
		return errors.NewValidationError("Price", p.Price.String(), "must not be negative")
	}
	return nil
}

// FormatMoney renders an amount as dollars with two decimals, e.g. "$12.50".
func FormatMoney(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// Decode parses a catalog payload. A well-formed payload that is not a JSON
// array yields an empty catalog rather than an error.
func Decode(data []byte) ([]Product, error) {
	trimmed := bytes.TrimSpace(data)
	if !json.Valid(trimmed) {
		return nil, errors.NewParseError("json", "catalog", "payload is not valid JSON", nil)
	}
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return []Product{}, nil
	}

	var products []Product
	if err := json.Unmarshal(trimmed, &products); err != nil {
		return nil, errors.WrapParse("json", "catalog", err)
	}
	if products == nil {
		products = []Product{}
	}
	return products, nil
}
