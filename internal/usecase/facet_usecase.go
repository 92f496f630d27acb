package usecase

import (
	"context"

	"github.com/nguyentranbao-ct/product-store/internal/models"
	"github.com/nguyentranbao-ct/product-store/internal/repo/mongodb"
	"github.com/nguyentranbao-ct/product-store/pkg/logger"
	"github.com/nguyentranbao-ct/product-store/pkg/util"
)

type facetUsecase struct {
	productRepo mongodb.ProductRepository
}

func NewFacetUsecase(productRepo mongodb.ProductRepository) FacetUsecase {
	return &facetUsecase{
		productRepo: productRepo,
	}
}

// DistinctValues lists the values of facet in store order, without repeats.
func (uc *facetUsecase) DistinctValues(ctx context.Context, facet models.Facet) ([]string, error) {
	if !facet.Valid() {
		return nil, models.ErrUnknownFacet
	}

	values, err := uc.productRepo.DistinctValues(ctx, string(facet))
	if err != nil {
		logger.FromContext(ctx, "facet").Errorw("distinct values failed", "facet", facet, "error", err)
		return nil, models.ErrLookupFailed
	}
	return util.Dedupe(values), nil
}
