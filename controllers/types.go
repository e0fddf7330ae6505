package controllers

import (
	"context"
	"io"
	"time"

	"github.com/akhilyln/pulses-trader/models"

	"github.com/xuri/excelize/v2"
)

// Default configuration values
const (
	DefaultCacheTTL       = 10 * time.Minute
	DefaultContextTimeout = 30 * time.Second
)

// AuthConfig holds the credentials the admin surface is gated on: the
// shared secret compared by exact equality, and the JWT secret for issued
// session tokens.
type AuthConfig struct {
	AdminPassword string
	JWTSecret     []byte
	SessionTTL    time.Duration
}

// CatalogAPI defines the interface for catalog service operations
type CatalogAPI interface {
	Catalog(ctx context.Context) ([]models.Product, error)
	ReplaceCatalog(ctx context.Context, products []models.Product) error
	UpdateRate(ctx context.Context, brandID string, newPrice float64) (*models.Brand, error)
	GridRows(ctx context.Context) ([]models.GridRow, error)
	SaveGridRows(ctx context.Context, rows []models.GridRow) error
	RecentHistory(ctx context.Context, limit int) ([]models.PriceHistory, error)
	ImportRateSheet(ctx context.Context, file io.Reader) (*models.RateImportResult, error)
	WriteCSV(ctx context.Context, w io.Writer) error
	ExportXLSX(ctx context.Context) (*excelize.File, error)
}
