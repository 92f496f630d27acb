package mongodb

import (
	"context"
	"fmt"
	"math"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	tcmongo "github.com/testcontainers/testcontainers-go/modules/mongodb"

	"github.com/nguyentranbao-ct/product-store/internal/catalog"
	"github.com/nguyentranbao-ct/product-store/internal/config"
	"github.com/nguyentranbao-ct/product-store/internal/models"
)

const skipIntegrationTests = "PRODUCT_STORE_SKIP_INTEGRATION_TESTS"

// ProductRepoSuite runs the product repository against a real MongoDB.
type ProductRepoSuite struct {
	suite.Suite
	container *tcmongo.MongoDBContainer
	db        *DB
	cfg       *config.Config
	repo      ProductRepository
	ctx       context.Context
}

func TestProductRepoSuite(t *testing.T) {
	if testing.Short() || os.Getenv(skipIntegrationTests) != "" {
		t.Skip("skipping integration tests")
	}
	suite.Run(t, new(ProductRepoSuite))
}

func (s *ProductRepoSuite) SetupSuite() {
	s.ctx = context.Background()

	var err error
	s.container, err = tcmongo.Run(s.ctx, "mongo:7")
	s.Require().NoError(err, "Failed to run MongoDB container")

	uri, err := s.container.ConnectionString(s.ctx)
	s.Require().NoError(err)

	s.cfg = &config.Config{
		Database: config.DatabaseConfig{
			URI:        uri,
			Database:   "productStore",
			Collection: "products",
			Timeout:    10 * time.Second,
		},
	}
	s.db, err = NewConnection(s.ctx, s.cfg.Database)
	s.Require().NoError(err)
	s.Require().NoError(s.db.Ping(s.ctx))

	s.repo = NewProductRepository(s.db, s.cfg)
	s.seed()

	migrations := NewMigrationRepository(s.db, s.cfg)
	s.Require().NoError(migrations.EnsureCatalogIndexes(s.ctx))
	status, err := migrations.GetMigrationStatus(s.ctx, catalogIndexMigration)
	s.Require().NoError(err)
	s.Equal(MigrationCompleted, status.Status)
	s.Require().NoError(migrations.EnsureCatalogIndexes(s.ctx), "second run is a no-op")
}

func (s *ProductRepoSuite) TearDownSuite() {
	if s.db != nil {
		_ = s.db.Close(s.ctx)
	}
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

// seed inserts 25 products: brands alternate Acme/Globex/Acme..., prices 1..25.
func (s *ProductRepoSuite) seed() {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	products := make([]models.Product, 0, 25)
	for i := 1; i <= 25; i++ {
		brand := "Acme"
		if i%2 == 0 {
			brand = "Globex"
		}
		products = append(products, models.Product{
			Name:      fmt.Sprintf("Widget %02d", i),
			Brand:     brand,
			Category:  []string{"Tools", "Garden"}[i%2],
			Price:     float64(i),
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
	}
	products = append(products, models.Product{Name: "Acme Anvil (heavy)", Brand: "Acme Industrial", Category: "Tools", Price: 100, CreatedAt: base})

	repo := s.repo.(*productRepo)
	ids, err := repo.InsertMany(s.ctx, products)
	s.Require().NoError(err)
	s.Require().Len(ids, 26)
}

func (s *ProductRepoSuite) search(req models.QueryRequest) *PaginateWithTotal[models.Product] {
	w := catalog.NewWindow(req.Page, req.Limit, 0)
	page, err := s.repo.Search(s.ctx, catalog.BuildFilter(req, models.FilterModeList), catalog.ResolveSort(req.SortBy), w.Offset(), int64(w.Limit))
	s.Require().NoError(err)
	return page
}

func (s *ProductRepoSuite) TestSecondPage() {
	req := models.NewQueryRequest()
	req.PriceMax = 25
	req.Page = 2
	req.SortBy = models.SortPriceAsc

	page := s.search(req)
	s.EqualValues(25, page.Total)
	s.Len(page.Data, 10)
	s.Equal(11.0, page.Data[0].Price)
	s.EqualValues(3, catalog.Pages(page.Total, req.Limit))
}

func (s *ProductRepoSuite) TestEmptySearchEqualsNoFilter() {
	all := s.search(models.NewQueryRequest())

	req := models.NewQueryRequest()
	req.Search = ""
	s.Equal(all.Total, s.search(req).Total)
}

func (s *ProductRepoSuite) TestBrandIsExactMembership() {
	req := models.NewQueryRequest()
	req.Brands = []string{"Acme"}
	req.Limit = 100

	page := s.search(req)
	s.EqualValues(13, page.Total)
	for _, p := range page.Data {
		s.Equal("Acme", p.Brand)
	}
}

func (s *ProductRepoSuite) TestPriceBoundsAreInclusive() {
	req := models.NewQueryRequest()
	req.PriceMin = 5
	req.PriceMax = 7

	page := s.search(req)
	s.EqualValues(3, page.Total)
}

func (s *ProductRepoSuite) TestSearchIsEscapedAndCaseInsensitive() {
	req := models.NewQueryRequest()
	req.Search = "anvil (HEAVY)"
	s.EqualValues(1, s.search(req).Total)

	req.Search = ".*"
	s.EqualValues(0, s.search(req).Total)
}

func (s *ProductRepoSuite) TestDateAddedSort() {
	req := models.NewQueryRequest()
	req.SortBy = models.SortDateAdded
	req.PriceMax = math.Inf(1)

	page := s.search(req)
	s.Equal("Widget 25", page.Data[0].Name)
}

func (s *ProductRepoSuite) TestDistinctValues() {
	brands, err := s.repo.DistinctValues(s.ctx, models.FieldBrand)
	s.Require().NoError(err)
	s.ElementsMatch([]string{"Acme", "Globex", "Acme Industrial"}, brands)

	strict := newProductRepo(s.db.Database.Collection(s.cfg.Database.Collection), true)
	categories, err := strict.DistinctValues(s.ctx, models.FieldCategory)
	s.Require().NoError(err)
	s.ElementsMatch([]string{"Tools", "Garden"}, categories)
}
