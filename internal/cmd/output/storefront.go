package output

import (
	"encoding/json"
	"io"

	"github.com/shopspring/decimal"

	"github.com/agentstation/storefront/internal/cmd/table"
	"github.com/agentstation/storefront/pkg/cart"
	"github.com/agentstation/storefront/pkg/catalog"
)

// CartView is the structured form of a cart for JSON and YAML output.
type CartView struct {
	Entries []cart.Entry    `json:"entries" yaml:"entries"`
	Total   decimal.Decimal `json:"total" yaml:"total"`
}

// MarshalJSON writes Total as a JSON number.
func (v CartView) MarshalJSON() ([]byte, error) {
	type plain CartView
	return json.Marshal(struct {
		plain
		Total json.Number `json:"total"`
	}{plain(v), catalog.Number(v.Total)})
}

// FormatProducts writes products in the given format.
func FormatProducts(w io.Writer, products []catalog.Product, format Format) error {
	if products == nil {
		products = []catalog.Product{}
	}
	var data any = products
	if format.IsTable() {
		data = table.ProductsToTableData(products, format == FormatWide)
	}
	return NewFormatter(format).Format(w, data)
}

// FormatCart writes cart entries and their total in the given format.
func FormatCart(w io.Writer, entries []cart.Entry, format Format) error {
	if entries == nil {
		entries = []cart.Entry{}
	}
	var data any = CartView{Entries: entries, Total: cart.Total(entries)}
	if format.IsTable() {
		data = table.CartToTableData(entries, format == FormatWide)
	}
	return NewFormatter(format).Format(w, data)
}

// FormatAny writes any value in the given format.
func FormatAny(w io.Writer, data any, format Format) error {
	return NewFormatter(format).Format(w, data)
}
