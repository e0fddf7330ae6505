package repository

import (
	"context"

	"github.com/akhilyln/pulses-trader/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CatalogRepository defines the interface for price-board data access
type CatalogRepository interface {
	FindAll(ctx context.Context) ([]models.Product, error)
	ReplaceAll(ctx context.Context, products []models.Product) error
	UpsertAll(ctx context.Context, products []models.Product) error
	FindBrandByID(ctx context.Context, id string) (*models.Brand, error)
	SaveBrandWithHistory(ctx context.Context, brand *models.Brand, entry *models.PriceHistory) error
	RecentHistory(ctx context.Context, limit int) ([]models.PriceHistory, error)
}

// GormCatalogRepository implements CatalogRepository using GORM
type GormCatalogRepository struct {
	db *gorm.DB
}

// NewGormCatalogRepository creates a new instance of GormCatalogRepository
func NewGormCatalogRepository(db *gorm.DB) CatalogRepository {
	return &GormCatalogRepository{db: db}
}

// FindAll retrieves the full catalog ordered for display: display_order
// ascending, then name, with each product's brands preloaded.
func (r *GormCatalogRepository) FindAll(ctx context.Context) ([]models.Product, error) {
	var products []models.Product

	err := r.db.WithContext(ctx).
		Preload("Brands", func(db *gorm.DB) *gorm.DB {
			return db.Order("brands.name ASC")
		}).
		Order("display_order ASC").
		Order("name ASC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}

	return products, nil
}

// ReplaceAll applies full-replace-by-diff semantics in a single transaction:
// every stored brand and product whose ID is absent from the incoming set is
// deleted, then every incoming product and brand is upserted. Deletions run
// first so a brand reassigned to a different product is never transiently
// orphaned. An empty incoming set deletes everything; the always-true filter
// guards against NOT IN matching zero rows on an empty list. Price history
// is never touched.
func (r *GormCatalogRepository) ReplaceAll(ctx context.Context, products []models.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		productIDs := make([]string, 0, len(products))
		brandIDs := make([]string, 0)
		for _, p := range products {
			productIDs = append(productIDs, p.ID)
			for _, b := range p.Brands {
				brandIDs = append(brandIDs, b.ID)
			}
		}

		brandDelete := tx.Where("1 = 1")
		if len(brandIDs) > 0 {
			brandDelete = tx.Where("id NOT IN ?", brandIDs)
		}
		if err := brandDelete.Delete(&models.Brand{}).Error; err != nil {
			return err
		}

		productDelete := tx.Where("1 = 1")
		if len(productIDs) > 0 {
			productDelete = tx.Where("id NOT IN ?", productIDs)
		}
		if err := productDelete.Delete(&models.Product{}).Error; err != nil {
			return err
		}

		return upsertProducts(tx, products)
	})
}

// UpsertAll upserts the incoming products and brands without pruning
// anything. Used by rate-sheet imports, which merge rather than replace.
func (r *GormCatalogRepository) UpsertAll(ctx context.Context, products []models.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return upsertProducts(tx, products)
	})
}

func upsertProducts(tx *gorm.DB, products []models.Product) error {
	if len(products) == 0 {
		return nil
	}

	rows := make([]models.Product, 0, len(products))
	brands := make([]models.Brand, 0)
	for _, p := range products {
		for _, b := range p.Brands {
			b.ProductID = p.ID
			brands = append(brands, b)
		}
		p.Brands = nil
		rows = append(rows, p)
	}

	if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&rows).Error; err != nil {
		return err
	}
	if len(brands) > 0 {
		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&brands).Error; err != nil {
			return err
		}
	}
	return nil
}

// FindBrandByID retrieves a single brand
func (r *GormCatalogRepository) FindBrandByID(ctx context.Context, id string) (*models.Brand, error) {
	var brand models.Brand
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&brand).Error; err != nil {
		return nil, err
	}
	return &brand, nil
}

// SaveBrandWithHistory commits the brand update and its history append
// atomically, so a failure between the two steps cannot leave the price
// changed without a matching history row.
func (r *GormCatalogRepository) SaveBrandWithHistory(ctx context.Context, brand *models.Brand, entry *models.PriceHistory) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(brand).Error; err != nil {
			return err
		}
		return tx.Create(entry).Error
	})
}

// RecentHistory returns the latest price history rows, newest first.
func (r *GormCatalogRepository) RecentHistory(ctx context.Context, limit int) ([]models.PriceHistory, error) {
	var history []models.PriceHistory
	err := r.db.WithContext(ctx).
		Order("timestamp DESC").
		Limit(limit).
		Find(&history).Error
	if err != nil {
		return nil, err
	}
	return history, nil
}
