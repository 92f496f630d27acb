package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/nguyentranbao-ct/product-store/internal/models"
	"github.com/nguyentranbao-ct/product-store/internal/repo/mongodb"
)

type mockProductRepo struct {
	mock.Mock
}

func (m *mockProductRepo) Search(ctx context.Context, filter bson.M, sort bson.D, skip, limit int64) (*mongodb.PaginateWithTotal[models.Product], error) {
	args := m.Called(ctx, filter, sort, skip, limit)
	page, _ := args.Get(0).(*mongodb.PaginateWithTotal[models.Product])
	return page, args.Error(1)
}

func (m *mockProductRepo) DistinctValues(ctx context.Context, field string) ([]string, error) {
	args := m.Called(ctx, field)
	values, _ := args.Get(0).([]string)
	return values, args.Error(1)
}
