package repository

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/akhilyln/pulses-trader/database"
	"github.com/akhilyln/pulses-trader/models"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// CatalogRepositoryTestSuite exercises the repository against a real
// PostgreSQL instance.
type CatalogRepositoryTestSuite struct {
	suite.Suite
	db   *gorm.DB
	repo CatalogRepository
}

// SetupSuite runs once before all tests in the suite.
func (s *CatalogRepositoryTestSuite) SetupSuite() {
	if err := godotenv.Load("../.env.test"); err != nil {
		log.Println("Warning: .env.test file not found. Using system environment variables.")
	}

	if err := database.Connect(); err != nil {
		s.T().Fatalf("Failed to connect to test database: %v", err)
	}

	s.db = database.DB
	if err := models.Migrate(s.db); err != nil {
		s.T().Fatalf("Failed to migrate test database: %v", err)
	}
	s.repo = NewGormCatalogRepository(s.db)
}

// TearDownSuite runs once after all tests in the suite.
func (s *CatalogRepositoryTestSuite) TearDownSuite() {
	s.db.Migrator().DropTable(&models.PriceHistory{}, &models.Brand{}, &models.Product{})
}

// BeforeTest runs before each test. We use transactions to keep tests isolated.
func (s *CatalogRepositoryTestSuite) BeforeTest(suiteName, testName string) {
	s.db = s.db.Begin()
	s.repo = NewGormCatalogRepository(s.db)
}

// AfterTest runs after each test, rolling back the transaction.
func (s *CatalogRepositoryTestSuite) AfterTest(suiteName, testName string) {
	s.db.Rollback()
}

// This function is the entry point for running the test suite.
func TestCatalogRepository(t *testing.T) {
	if os.Getenv("POSTGRES_HOST") == "" {
		t.Skip("POSTGRES_HOST not set; skipping database tests")
	}
	suite.Run(t, new(CatalogRepositoryTestSuite))
}

// --- Actual Tests ---

func seedCatalog() []models.Product {
	now := time.Now().UTC()
	return []models.Product{
		{
			ID:           "p-1",
			Name:         "Toor Dal",
			TeluguName:   "కందిపప్పు",
			DisplayOrder: 1,
			UpdatedAt:    now,
			Brands: []models.Brand{
				{ID: "b-1", Name: "Brand A", Price: 85.5, UpdatedAt: now},
				{ID: "b-2", Name: "Brand B", Price: 92, UpdatedAt: now},
			},
		},
		{
			ID:           "p-2",
			Name:         "Chana Dal",
			DisplayOrder: 2,
			UpdatedAt:    now,
			Brands: []models.Brand{
				{ID: "b-3", Name: "Brand A", Price: 70, UpdatedAt: now},
			},
		},
	}
}

func (s *CatalogRepositoryTestSuite) TestReplaceAllAndFindAll() {
	ctx := context.Background()

	s.NoError(s.repo.ReplaceAll(ctx, seedCatalog()))

	products, err := s.repo.FindAll(ctx)
	s.NoError(err)
	s.Len(products, 2)
	// Ordered by display_order, brands preloaded and ordered by name
	s.Equal("Toor Dal", products[0].Name)
	s.Len(products[0].Brands, 2)
	s.Equal("Brand A", products[0].Brands[0].Name)
	s.Equal("Chana Dal", products[1].Name)
}

func (s *CatalogRepositoryTestSuite) TestReplaceAllPrunesAbsentRows() {
	ctx := context.Background()
	s.NoError(s.repo.ReplaceAll(ctx, seedCatalog()))

	// Save again with one product and one of its brands removed
	kept := seedCatalog()[:1]
	kept[0].Brands = kept[0].Brands[:1]
	s.NoError(s.repo.ReplaceAll(ctx, kept))

	products, err := s.repo.FindAll(ctx)
	s.NoError(err)
	s.Len(products, 1)
	s.Equal("p-1", products[0].ID)
	s.Len(products[0].Brands, 1)
	s.Equal("b-1", products[0].Brands[0].ID)

	_, err = s.repo.FindBrandByID(ctx, "b-3")
	s.ErrorIs(err, gorm.ErrRecordNotFound)
}

func (s *CatalogRepositoryTestSuite) TestReplaceAllEmptySetDeletesEverything() {
	ctx := context.Background()
	s.NoError(s.repo.ReplaceAll(ctx, seedCatalog()))

	s.NoError(s.repo.ReplaceAll(ctx, []models.Product{}))

	products, err := s.repo.FindAll(ctx)
	s.NoError(err)
	s.Len(products, 0)
}

func (s *CatalogRepositoryTestSuite) TestReplaceAllDoesNotTouchHistory() {
	ctx := context.Background()
	s.NoError(s.repo.ReplaceAll(ctx, seedCatalog()))

	entry := &models.PriceHistory{BrandID: "b-1", Price: 85.5, Timestamp: time.Now().UTC()}
	s.NoError(s.db.Create(entry).Error)

	s.NoError(s.repo.ReplaceAll(ctx, []models.Product{}))

	history, err := s.repo.RecentHistory(ctx, 10)
	s.NoError(err)
	s.Len(history, 1)
	s.Equal("b-1", history[0].BrandID)
}

func (s *CatalogRepositoryTestSuite) TestUpsertAllMergesWithoutPruning() {
	ctx := context.Background()
	s.NoError(s.repo.ReplaceAll(ctx, seedCatalog()))

	now := time.Now().UTC()
	s.NoError(s.repo.UpsertAll(ctx, []models.Product{
		{
			ID:        "p-3",
			Name:      "Moong Dal",
			UpdatedAt: now,
			Brands: []models.Brand{
				{ID: "b-4", Name: "Default", Price: 90, UpdatedAt: now},
			},
		},
	}))

	products, err := s.repo.FindAll(ctx)
	s.NoError(err)
	s.Len(products, 3)
}

func (s *CatalogRepositoryTestSuite) TestSaveBrandWithHistory() {
	ctx := context.Background()
	s.NoError(s.repo.ReplaceAll(ctx, seedCatalog()))

	brand, err := s.repo.FindBrandByID(ctx, "b-1")
	s.NoError(err)

	now := time.Now().UTC()
	brand.PrevPrice = brand.Price
	brand.Price = 110
	brand.Change = 28.65
	brand.UpdatedAt = now

	entry := &models.PriceHistory{BrandID: brand.ID, Price: 110, Timestamp: now}
	s.NoError(s.repo.SaveBrandWithHistory(ctx, brand, entry))

	updated, err := s.repo.FindBrandByID(ctx, "b-1")
	s.NoError(err)
	s.Equal(110.0, updated.Price)
	s.Equal(85.5, updated.PrevPrice)

	history, err := s.repo.RecentHistory(ctx, 10)
	s.NoError(err)
	s.Len(history, 1)
	s.Equal(110.0, history[0].Price)
}
