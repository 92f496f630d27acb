package server

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nguyentranbao-ct/product-store/internal/catalog"
	"github.com/nguyentranbao-ct/product-store/internal/config"
	"github.com/nguyentranbao-ct/product-store/internal/models"
	"github.com/nguyentranbao-ct/product-store/internal/usecase"
	"github.com/nguyentranbao-ct/product-store/pkg/ctxval"
	"github.com/nguyentranbao-ct/product-store/pkg/logger"
)

const bannerText = "Product Store server running"

type Controller interface {
	Home(c echo.Context) error
	Health(c echo.Context) error
	ListProducts(c echo.Context, q catalog.RawQuery) (*models.PageEnvelope, error)
	ListBrands(c echo.Context, _ struct{}) ([]string, error)
	ListCategories(c echo.Context, _ struct{}) ([]string, error)
}

// Pinger reports whether the store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type controller struct {
	catalogUsecase usecase.CatalogUsecase
	facetUsecase   usecase.FacetUsecase
	store          Pinger
	parseOpts      catalog.ParseOptions
}

func NewHandler(
	catalogUsecase usecase.CatalogUsecase,
	facetUsecase usecase.FacetUsecase,
	store Pinger,
	conf *config.Config,
) Controller {
	return &controller{
		catalogUsecase: catalogUsecase,
		facetUsecase:   facetUsecase,
		store:          store,
		parseOpts: catalog.ParseOptions{
			Mode:         conf.Catalog.FilterMode,
			DefaultLimit: conf.Catalog.DefaultLimit,
			MaxLimit:     conf.Catalog.MaxLimit,
		},
	}
}

func (h *controller) Home(c echo.Context) error {
	return c.String(http.StatusOK, bannerText)
}

func (h *controller) Health(c echo.Context) error {
	ctx := c.Request().Context()
	if err := h.store.Ping(ctx); err != nil {
		logger.FromContext(ctx, "health").Warnw("store ping failed", "error", err)
		return echo.NewHTTPError(http.StatusServiceUnavailable, "store unreachable")
	}
	return c.JSON(http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

func (h *controller) ListProducts(c echo.Context, q catalog.RawQuery) (*models.PageEnvelope, error) {
	ctx := c.Request().Context()
	req := catalog.Parse(q, h.parseOpts)

	envelope, err := h.catalogUsecase.GetProducts(ctx, req)
	if err != nil {
		return nil, err
	}
	ctxval.AddLogFields(ctx, "result_total", envelope.Total, "result_count", len(envelope.Products))
	return envelope, nil
}

func (h *controller) ListBrands(c echo.Context, _ struct{}) ([]string, error) {
	return h.listFacet(c, models.FacetBrand)
}

func (h *controller) ListCategories(c echo.Context, _ struct{}) ([]string, error) {
	return h.listFacet(c, models.FacetCategory)
}

func (h *controller) listFacet(c echo.Context, facet models.Facet) ([]string, error) {
	ctx := c.Request().Context()
	values, err := h.facetUsecase.DistinctValues(ctx, facet)
	if err != nil {
		return nil, err
	}
	ctxval.AddLogFields(ctx, "facet", facet, "result_count", len(values))
	return values, nil
}
