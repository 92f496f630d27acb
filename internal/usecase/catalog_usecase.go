package usecase

import (
	"context"

	"github.com/nguyentranbao-ct/product-store/internal/catalog"
	"github.com/nguyentranbao-ct/product-store/internal/config"
	"github.com/nguyentranbao-ct/product-store/internal/models"
	"github.com/nguyentranbao-ct/product-store/internal/repo/mongodb"
	"github.com/nguyentranbao-ct/product-store/pkg/logger"
)

type catalogUsecase struct {
	productRepo mongodb.ProductRepository
	filterMode  models.FilterMode
	maxLimit    int
}

func NewCatalogUsecase(productRepo mongodb.ProductRepository, cfg *config.Config) CatalogUsecase {
	return &catalogUsecase{
		productRepo: productRepo,
		filterMode:  cfg.Catalog.FilterMode,
		maxLimit:    cfg.Catalog.MaxLimit,
	}
}

// GetProducts fetches one page and the total match count. The two reads are
// independent, so a concurrent write may make them disagree.
func (uc *catalogUsecase) GetProducts(ctx context.Context, req models.QueryRequest) (*models.PageEnvelope, error) {
	window := catalog.NewWindow(req.Page, req.Limit, uc.maxLimit)
	filter := catalog.BuildFilter(req, uc.filterMode)
	sort := catalog.ResolveSort(req.SortBy)

	result, err := uc.productRepo.Search(ctx, filter, sort, window.Offset(), int64(window.Limit))
	if err != nil {
		logger.FromContext(ctx, "catalog").Errorw("search products failed",
			"error", err,
			"page", window.Page,
			"limit", window.Limit,
			"sort_by", req.SortBy,
		)
		return nil, models.ErrFetchFailed
	}

	products := result.Data
	if products == nil {
		products = []models.Product{}
	}
	if len(products) > window.Limit {
		products = products[:window.Limit]
	}

	return &models.PageEnvelope{
		Products: products,
		Total:    result.Total,
		Page:     window.Page,
		Pages:    catalog.Pages(result.Total, window.Limit),
	}, nil
}
