// Package table converts storefront data into rows for table output.
package table

import (
	"strconv"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentstation/storefront/pkg/cart"
	"github.com/agentstation/storefront/pkg/catalog"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	Footer          []string
	ColumnAlignment []Align // Optional: column alignment
}

var titleCaser = cases.Title(language.English)

// ProductsToTableData converts catalog products to table format. wide adds
// the category column.
func ProductsToTableData(products []catalog.Product, wide bool) Data {
	headers := []string{"ID", "Name", "Price"}
	align := []Align{AlignRight, AlignLeft, AlignRight}
	if wide {
		headers = []string{"ID", "Name", "Category", "Price"}
		align = []Align{AlignRight, AlignLeft, AlignLeft, AlignRight}
	}

	rows := make([][]string, 0, len(products))
	for _, p := range products {
		row := []string{strconv.Itoa(p.ID), p.Name}
		if wide {
			row = append(row, Category(p.Category))
		}
		row = append(row, catalog.FormatMoney(p.Price))
		rows = append(rows, row)
	}

	return Data{
		Headers:         headers,
		Rows:            rows,
		ColumnAlignment: align,
	}
}

// CartToTableData converts cart entries to table format. The first column is
// the 1-based line number accepted by the cart commands. The footer holds the
// cart total.
func CartToTableData(entries []cart.Entry, wide bool) Data {
	headers := []string{"#", "Item", "Qty", "Price"}
	align := []Align{AlignRight, AlignLeft, AlignRight, AlignRight}
	if wide {
		headers = []string{"#", "ID", "Item", "Category", "Qty", "Price", "Subtotal"}
		align = []Align{AlignRight, AlignRight, AlignLeft, AlignLeft, AlignRight, AlignRight, AlignRight}
	}

	rows := make([][]string, 0, len(entries))
	for i, e := range entries {
		line := strconv.Itoa(i + 1)
		qty := strconv.Itoa(e.Quantity)
		price := catalog.FormatMoney(e.Product.Price)
		if wide {
			rows = append(rows, []string{
				line,
				strconv.Itoa(e.Product.ID),
				e.Product.Name,
				Category(e.Product.Category),
				qty,
				price,
				catalog.FormatMoney(e.Subtotal()),
			})
			continue
		}
		rows = append(rows, []string{line, e.Product.Name, qty, price})
	}

	footer := make([]string, len(headers))
	footer[len(footer)-2] = "Total"
	footer[len(footer)-1] = catalog.FormatMoney(cart.Total(entries))

	return Data{
		Headers:         headers,
		Rows:            rows,
		Footer:          footer,
		ColumnAlignment: align,
	}
}

// Category formats a category for display, or "-" when unset.
func Category(c string) string {
	if c == "" {
		return "-"
	}
	return titleCaser.String(c)
}
