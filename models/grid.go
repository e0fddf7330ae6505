package models

import "time"

// GridRow is the flattened, independently editable form of one
// (product, brand) pair used by the admin grid. Row identity is the
// (ProductID, BrandID) pair, not row position. Price and DisplayOrder hold
// raw cell text; numeric coercion happens only when rows are regrouped.
type GridRow struct {
	ProductID         string    `json:"productId"`
	ProductName       string    `json:"productName"`
	ProductTeluguName string    `json:"productTeluguName,omitempty"`
	DisplayOrder      string    `json:"displayOrder,omitempty"`
	BrandID           string    `json:"brandId"`
	BrandName         string    `json:"brandName"`
	Price             string    `json:"price"`
	UpdatedAt         time.Time `json:"updatedAt"`
}
