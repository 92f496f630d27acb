package usecase

import (
	"context"

	"github.com/nguyentranbao-ct/product-store/internal/models"
)

type CatalogUsecase interface {
	GetProducts(ctx context.Context, req models.QueryRequest) (*models.PageEnvelope, error)
}

type FacetUsecase interface {
	DistinctValues(ctx context.Context, facet models.Facet) ([]string, error)
}
