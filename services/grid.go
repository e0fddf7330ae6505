package services

import (
	"math"
	"strconv"
	"strings"

	"github.com/akhilyln/pulses-trader/models"
)

// The admin grid edits the catalog as flat rows, one per (product, brand)
// pair. Product-level fields are duplicated onto every row of that product,
// so rows must stay fully independent between edits; the tree is only
// reassembled when the grid is saved.

const defaultDisplayOrder = 100

// FlattenCatalog denormalizes the product tree into grid rows. A product
// with zero brands contributes zero rows and so disappears from the edit
// surface; the prune-on-save semantics then garbage-collect it.
func FlattenCatalog(products []models.Product) []models.GridRow {
	rows := make([]models.GridRow, 0, len(products))
	for _, p := range products {
		for _, b := range p.Brands {
			rows = append(rows, models.GridRow{
				ProductID:         p.ID,
				ProductName:       p.Name,
				ProductTeluguName: p.TeluguName,
				DisplayOrder:      formatDisplayOrder(p.DisplayOrder),
				BrandID:           b.ID,
				BrandName:         b.Name,
				Price:             strconv.FormatFloat(b.Price, 'f', -1, 64),
				UpdatedAt:         b.UpdatedAt,
			})
		}
	}
	return rows
}

// ApplyEdit replaces exactly the row whose (ProductID, BrandID) pair matches
// the changed row and returns the updated row set. Every other row is
// untouched: rows are copied by value, so an edit to one row can never leak
// into a sibling row that currently shares the same product fields.
func ApplyEdit(rows []models.GridRow, changed models.GridRow) []models.GridRow {
	out := make([]models.GridRow, len(rows))
	for i, row := range rows {
		if row.ProductID == changed.ProductID && row.BrandID == changed.BrandID {
			out[i] = changed
		} else {
			out[i] = row
		}
	}
	return out
}

// RegroupRows reassembles the product tree from edited grid rows. Rows are
// grouped by their current product name: the first row seen for a name
// contributes the product's id, Telugu name and display order, later rows
// for the same name contribute only their brand. Output preserves
// first-seen-name order, not row order and not display order.
func RegroupRows(rows []models.GridRow) []models.Product {
	byName := make(map[string]*models.Product)
	order := make([]string, 0)

	for _, row := range rows {
		acc, ok := byName[row.ProductName]
		if !ok {
			acc = &models.Product{
				ID:           row.ProductID,
				Name:         row.ProductName,
				TeluguName:   row.ProductTeluguName,
				DisplayOrder: parseDisplayOrder(row.DisplayOrder),
			}
			byName[row.ProductName] = acc
			order = append(order, row.ProductName)
		}
		acc.Brands = append(acc.Brands, models.Brand{
			ID:        row.BrandID,
			ProductID: acc.ID,
			Name:      row.BrandName,
			Price:     parsePrice(row.Price),
			UpdatedAt: row.UpdatedAt,
		})
	}

	products := make([]models.Product, 0, len(order))
	for _, name := range order {
		products = append(products, *byName[name])
	}
	return products
}

// parseDisplayOrder coerces the cell text to an order value. Missing,
// non-numeric and zero all fall back to the default.
func parseDisplayOrder(raw string) int {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || v == 0 {
		return defaultDisplayOrder
	}
	return int(v)
}

// parsePrice coerces the cell text to a price. Non-numeric text becomes NaN
// and is propagated unvalidated; rejecting it is the store's problem.
func parsePrice(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func formatDisplayOrder(order int) string {
	if order == 0 {
		return ""
	}
	return strconv.Itoa(order)
}
