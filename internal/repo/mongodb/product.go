package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nguyentranbao-ct/product-store/internal/config"
	"github.com/nguyentranbao-ct/product-store/internal/models"
)

type ProductRepository interface {
	// Search returns one window of matching products and the total match count.
	Search(ctx context.Context, filter bson.M, sort bson.D, skip, limit int64) (*PaginateWithTotal[models.Product], error)
	// DistinctValues returns the distinct non-null string values of field.
	DistinctValues(ctx context.Context, field string) ([]string, error)
}

type productRepo struct {
	baseRepo[models.Product]
	strictAPI bool
}

func NewProductRepository(db *DB, cfg *config.Config) ProductRepository {
	coll := db.Database.Collection(cfg.Database.Collection)
	return newProductRepo(coll, cfg.Database.StrictAPI)
}

func newProductRepo(coll *mongo.Collection, strictAPI bool) *productRepo {
	return &productRepo{
		baseRepo:  newBaseRepo[models.Product](nil, coll),
		strictAPI: strictAPI,
	}
}

func (r *productRepo) Search(ctx context.Context, filter bson.M, sort bson.D, skip, limit int64) (*PaginateWithTotal[models.Product], error) {
	opts := options.Find()
	if len(sort) > 0 {
		opts.SetSort(sort)
	}
	return r.PaginateWithTotal(ctx, filter, limit, skip, opts)
}

func (r *productRepo) DistinctValues(ctx context.Context, field string) ([]string, error) {
	var raw []any
	if r.strictAPI {
		// distinct is not part of Stable API v1, group instead
		var groups []struct {
			Value any `bson:"_id"`
		}
		pipeline := mongo.Pipeline{
			{{Key: "$match", Value: notNull(field)}},
			{{Key: "$group", Value: bson.M{"_id": "$" + field}}},
		}
		if err := r.Aggregate(ctx, pipeline, &groups); err != nil {
			return nil, fmt.Errorf("group %s: %w", field, err)
		}
		raw = make([]any, 0, len(groups))
		for _, g := range groups {
			raw = append(raw, g.Value)
		}
	} else {
		values, err := r.Distinct(ctx, field, notNull(field))
		if err != nil {
			return nil, err
		}
		raw = values
	}

	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out, nil
}
