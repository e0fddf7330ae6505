package controllers

import (
	"context"
	"errors"
	"io"
	"net"
	"time"

	"github.com/akhilyln/pulses-trader/models"

	"github.com/go-redis/redis/v8"
	"github.com/xuri/excelize/v2"
)

// fakeCatalogService is a hand-rolled CatalogAPI fake recording invocations,
// so auth tests can assert that a rejected request never reached the store.
type fakeCatalogService struct {
	catalog    []models.Product
	catalogErr error

	replaceCalled int
	replaced      []models.Product
	replaceErr    error

	updateCalled  int
	lastBrandID   string
	lastNewPrice  float64
	updatedBrand  *models.Brand
	updateRateErr error

	gridRows     []models.GridRow
	gridRowsErr  error
	saveCalled   int
	savedRows    []models.GridRow
	saveGridErr  error
	importCalled int
	importResult *models.RateImportResult
	importErr    error
}

func (f *fakeCatalogService) Catalog(_ context.Context) ([]models.Product, error) {
	return f.catalog, f.catalogErr
}

func (f *fakeCatalogService) ReplaceCatalog(_ context.Context, products []models.Product) error {
	f.replaceCalled++
	f.replaced = products
	return f.replaceErr
}

func (f *fakeCatalogService) UpdateRate(_ context.Context, brandID string, newPrice float64) (*models.Brand, error) {
	f.updateCalled++
	f.lastBrandID = brandID
	f.lastNewPrice = newPrice
	return f.updatedBrand, f.updateRateErr
}

func (f *fakeCatalogService) GridRows(_ context.Context) ([]models.GridRow, error) {
	return f.gridRows, f.gridRowsErr
}

func (f *fakeCatalogService) SaveGridRows(_ context.Context, rows []models.GridRow) error {
	f.saveCalled++
	f.savedRows = rows
	return f.saveGridErr
}

func (f *fakeCatalogService) RecentHistory(_ context.Context, _ int) ([]models.PriceHistory, error) {
	return []models.PriceHistory{}, nil
}

func (f *fakeCatalogService) ImportRateSheet(_ context.Context, _ io.Reader) (*models.RateImportResult, error) {
	f.importCalled++
	return f.importResult, f.importErr
}

func (f *fakeCatalogService) WriteCSV(_ context.Context, w io.Writer) error {
	_, err := w.Write([]byte("Product (EN),Product (TE),Brand,Price\n"))
	return err
}

func (f *fakeCatalogService) ExportXLSX(_ context.Context) (*excelize.File, error) {
	return excelize.NewFile(), nil
}

// newTestRedisClient returns a client whose dialer always fails, so cache
// lookups miss and writes fail silently, exactly like an unreachable Redis.
func newTestRedisClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: "localhost:0",
		Dialer: func(ctx context.Context, network, addr string) (net.Conn, error) {
			return nil, errors.New("redis disabled in tests")
		},
	})
}

func testAuthConfig() AuthConfig {
	return AuthConfig{
		AdminPassword: "letmein",
		JWTSecret:     []byte("test-secret"),
		SessionTTL:    time.Hour,
	}
}
