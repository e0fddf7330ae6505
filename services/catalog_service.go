package services

import (
	"context"
	"errors"
	"time"

	"github.com/akhilyln/pulses-trader/models"
	"github.com/akhilyln/pulses-trader/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrBrandNotFound is returned when a rate update references a brand that
// does not exist.
var ErrBrandNotFound = errors.New("brand not found")

const defaultHistoryLimit = 100

// CatalogService owns the price-board business logic on top of the
// repository: bulk catalog replacement, single-rate updates with change
// tracking, and the grid flatten/regroup round trip.
type CatalogService struct {
	repo   repository.CatalogRepository
	logger *zap.Logger
}

// NewCatalogService creates a new instance of CatalogService.
func NewCatalogService(repo repository.CatalogRepository, logger *zap.Logger) *CatalogService {
	return &CatalogService{repo: repo, logger: logger}
}

// Catalog returns the current product catalog.
func (s *CatalogService) Catalog(ctx context.Context) ([]models.Product, error) {
	products, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to read catalog", zap.Error(err))
		return nil, err
	}
	for i := range products {
		if products[i].Brands == nil {
			products[i].Brands = []models.Brand{}
		}
	}
	return products, nil
}

// ReplaceCatalog stamps update timestamps and writes the incoming catalog
// with full-replace semantics: stored products and brands absent from the
// incoming set are deleted.
func (s *CatalogService) ReplaceCatalog(ctx context.Context, products []models.Product) error {
	now := time.Now().UTC()
	for i := range products {
		products[i].UpdatedAt = now
		for j := range products[i].Brands {
			if products[i].Brands[j].UpdatedAt.IsZero() {
				products[i].Brands[j].UpdatedAt = now
			}
		}
	}

	if err := s.repo.ReplaceAll(ctx, products); err != nil {
		s.logger.Error("Failed to replace catalog", zap.Error(err), zap.Int("products", len(products)))
		return err
	}

	s.logger.Info("Catalog replaced", zap.Int("products", len(products)))
	return nil
}

// UpdateRate sets a brand's quoted price, recording the previous price, the
// percentage change (zero when the previous price is zero) and one history
// row. The brand update and the history append commit together or not at
// all.
func (s *CatalogService) UpdateRate(ctx context.Context, brandID string, newPrice float64) (*models.Brand, error) {
	brand, err := s.repo.FindBrandByID(ctx, brandID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBrandNotFound
		}
		s.logger.Error("Failed to look up brand", zap.Error(err), zap.String("brand_id", brandID))
		return nil, err
	}

	prevPrice := brand.Price
	change := 0.0
	if prevPrice != 0 {
		change = (newPrice - prevPrice) / prevPrice * 100
	}

	now := time.Now().UTC()
	brand.Price = newPrice
	brand.PrevPrice = prevPrice
	brand.Change = change
	brand.UpdatedAt = now

	entry := &models.PriceHistory{
		BrandID:   brandID,
		Price:     newPrice,
		Timestamp: now,
	}

	if err := s.repo.SaveBrandWithHistory(ctx, brand, entry); err != nil {
		s.logger.Error("Failed to save rate update", zap.Error(err), zap.String("brand_id", brandID))
		return nil, err
	}

	s.logger.Info("Rate updated",
		zap.String("brand_id", brandID),
		zap.Float64("price", newPrice),
		zap.Float64("change", change),
	)
	return brand, nil
}

// GridRows returns the catalog flattened for the admin grid.
func (s *CatalogService) GridRows(ctx context.Context) ([]models.GridRow, error) {
	products, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return FlattenCatalog(products), nil
}

// SaveGridRows regroups edited grid rows into the product tree and writes it
// back with full-replace semantics.
func (s *CatalogService) SaveGridRows(ctx context.Context, rows []models.GridRow) error {
	return s.ReplaceCatalog(ctx, RegroupRows(rows))
}

// RecentHistory returns the latest price history rows, capped at the
// default limit when the caller passes zero or a negative value.
func (s *CatalogService) RecentHistory(ctx context.Context, limit int) ([]models.PriceHistory, error) {
	if limit <= 0 || limit > defaultHistoryLimit {
		limit = defaultHistoryLimit
	}
	history, err := s.repo.RecentHistory(ctx, limit)
	if err != nil {
		s.logger.Error("Failed to read price history", zap.Error(err))
		return nil, err
	}
	if history == nil {
		history = []models.PriceHistory{}
	}
	return history, nil
}
