package models

import (
	"time"

	"gorm.io/gorm"
)

// Product is one catalog entry on the price board. Brands belong to exactly
// one product; a product's display name is the join key the admin grid uses
// when regrouping edited rows.
type Product struct {
	ID           string    `gorm:"primaryKey;size:64" json:"id"`
	Name         string    `gorm:"not null;index" json:"name"`
	TeluguName   string    `gorm:"column:telugu_name" json:"teluguName,omitempty"`
	DisplayOrder int       `gorm:"column:display_order;default:100" json:"displayOrder,omitempty"`
	UpdatedAt    time.Time `gorm:"column:updated_at" json:"updatedAt"`
	Brands       []Brand   `gorm:"foreignKey:ProductID" json:"brands"`
}

// Brand is a commercial variant of a product carrying its own quoted price.
// Change is the percentage delta against PrevPrice, zero when PrevPrice is
// zero (division guard, not "no change").
type Brand struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	ProductID string    `gorm:"column:product_id;size:64;not null;index" json:"-"`
	Name      string    `gorm:"not null" json:"name"`
	Price     float64   `json:"price"`
	PrevPrice float64   `gorm:"column:prev_price" json:"prevPrice"`
	Change    float64   `json:"change"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

// PriceHistory rows are append-only: one per price-changing update, never
// mutated or deleted by any code path.
type PriceHistory struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"-"`
	BrandID   string    `gorm:"column:brand_id;size:64;not null;index" json:"brandId"`
	Price     float64   `json:"price"`
	Timestamp time.Time `gorm:"index" json:"timestamp"`
}

func (PriceHistory) TableName() string {
	return "price_history"
}

// Migrate runs auto migration for the catalog schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Product{}, &Brand{}, &PriceHistory{})
}
