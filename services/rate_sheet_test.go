package services_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/akhilyln/pulses-trader/models"

	"github.com/stretchr/testify/assert"
)

func TestImportRateSheet_MergesIntoExistingProductByName(t *testing.T) {
	repo := &mockCatalogRepo{
		products: []models.Product{
			{
				ID:   "p-1",
				Name: "Toor Dal",
				Brands: []models.Brand{
					{ID: "b-1", ProductID: "p-1", Name: "Brand A", Price: 85},
				},
			},
		},
	}
	svc := newTestService(repo)

	csvData := "Product (EN),Product (TE),Brand,Price\nToor Dal,,Brand B,120\nMoong Dal,పెసరపప్పు,Default,90\n"
	result, err := svc.ImportRateSheet(context.Background(), strings.NewReader(csvData))

	assert.NoError(t, err)
	assert.Equal(t, 2, result.RowsParsed)
	assert.Equal(t, 2, result.BrandsCreated)
	assert.Equal(t, 0, result.ErrorsCount)

	assert.Equal(t, 1, repo.replaceCalled)
	assert.Len(t, repo.replaced, 2)

	var toor, moong *models.Product
	for i := range repo.replaced {
		switch repo.replaced[i].Name {
		case "Toor Dal":
			toor = &repo.replaced[i]
		case "Moong Dal":
			moong = &repo.replaced[i]
		}
	}

	// The imported brand attaches to the existing product by name instead of
	// creating a duplicate product
	assert.NotNil(t, toor)
	assert.Len(t, toor.Brands, 2)
	assert.NotNil(t, moong)
	assert.Equal(t, "పెసరపప్పు", moong.TeluguName)
	assert.Equal(t, 90.0, moong.Brands[0].Price)
}

func TestImportRateSheet_CollectsRowErrors(t *testing.T) {
	repo := &mockCatalogRepo{}
	svc := newTestService(repo)

	csvData := "Product (EN),Product (TE),Brand,Price\n,,Brand A,50\nToor Dal,,Brand A,not-a-price\n"
	result, err := svc.ImportRateSheet(context.Background(), strings.NewReader(csvData))

	assert.NoError(t, err)
	assert.Equal(t, 0, result.RowsParsed)
	assert.Equal(t, 2, result.ErrorsCount)
	// Nothing valid to import means no write at all
	assert.Equal(t, 0, repo.replaceCalled)
}

func TestImportRateSheet_RequiresHeader(t *testing.T) {
	repo := &mockCatalogRepo{}
	svc := newTestService(repo)

	_, err := svc.ImportRateSheet(context.Background(), strings.NewReader(""))
	assert.Error(t, err)

	_, err = svc.ImportRateSheet(context.Background(), strings.NewReader("Foo,Bar\n1,2\n"))
	assert.Error(t, err)
}

func TestWriteCSV_FlattensCatalog(t *testing.T) {
	repo := &mockCatalogRepo{products: sampleCatalog()}
	svc := newTestService(repo)

	var buf bytes.Buffer
	err := svc.WriteCSV(context.Background(), &buf)

	assert.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, "Product (EN),Product (TE),Brand,Price", lines[0])
	assert.Contains(t, lines[1], "Toor Dal")
	assert.Contains(t, lines[1], "85.5")
	assert.Contains(t, lines[3], "Chana Dal")
}

func TestExportXLSX_WritesRatesSheet(t *testing.T) {
	repo := &mockCatalogRepo{products: sampleCatalog()}
	svc := newTestService(repo)

	f, err := svc.ExportXLSX(context.Background())

	assert.NoError(t, err)
	rows, err := f.GetRows("Rates")
	assert.NoError(t, err)
	assert.Len(t, rows, 4)
	assert.Equal(t, "Product (EN)", rows[0][0])
	assert.Equal(t, "Toor Dal", rows[1][0])
	assert.Equal(t, "Brand A", rows[1][2])
}
