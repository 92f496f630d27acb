package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"

	"github.com/nguyentranbao-ct/product-store/internal/models"
	"github.com/nguyentranbao-ct/product-store/pkg/util"
)

// keep the baseRepo implementation in sync with IRepository interface
var _ IRepository[models.Product] = (*baseRepo[models.Product])(nil)

type IEntity interface {
	CollectionName() string
}

type PaginateWithTotal[E any] struct {
	Total int64
	Data  []E
}

type IRepository[E IEntity] interface {
	InsertMany(ctx context.Context, entities []E, opts ...*options.InsertManyOptions) ([]string, error)
	Find(ctx context.Context, filter any, opts ...*options.FindOptions) ([]E, error)
	Count(ctx context.Context, filter any, opts ...*options.CountOptions) (int64, error)
	Paginate(ctx context.Context, filter any, limit int64, skip int64, opts ...*options.FindOptions) ([]E, error)
	PaginateWithTotal(ctx context.Context, filter any, limit int64, skip int64, opts ...*options.FindOptions) (*PaginateWithTotal[E], error)
	Distinct(ctx context.Context, field string, filter any) ([]any, error)
	Aggregate(ctx context.Context, pipeline mongo.Pipeline, out any) error
}

type baseRepo[E IEntity] struct {
	coll    *mongo.Collection
	metrics *prometheus.HistogramVec
}

// newBaseRepo binds the repo to coll, or to the entity's default collection when coll is nil.
func newBaseRepo[E IEntity](dbc *mongo.Database, coll *mongo.Collection) baseRepo[E] {
	if coll == nil {
		var entity E
		coll = dbc.Collection(entity.CollectionName())
	}
	metrics, err := util.GetHistogramVec("mongo_operation_duration_seconds", "collection", "op", "status")
	if err != nil {
		panic(err)
	}
	return baseRepo[E]{
		coll:    coll,
		metrics: metrics,
	}
}

func (r *baseRepo[E]) observe(op string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	r.metrics.WithLabelValues(r.coll.Name(), op, status).Observe(time.Since(start).Seconds())
}

func (r *baseRepo[E]) InsertMany(ctx context.Context, entities []E, opts ...*options.InsertManyOptions) (ids []string, err error) {
	defer func(start time.Time) { r.observe("insert_many", start, err) }(time.Now())
	docs := make([]any, 0, len(entities))
	for _, e := range entities {
		docs = append(docs, e)
	}
	result, err := r.coll.InsertMany(ctx, docs, opts...)
	if err != nil {
		return nil, fmt.Errorf("insert many: %w", err)
	}
	ids = make([]string, len(result.InsertedIDs))
	for i, id := range result.InsertedIDs {
		switch v := id.(type) {
		case primitive.ObjectID:
			ids[i] = v.Hex()
		case string:
			ids[i] = v
		default:
			return nil, fmt.Errorf("invalid inserted id: %T %+v", id, id)
		}
	}

	return ids, nil
}

func (r *baseRepo[E]) Find(ctx context.Context, filter any, opts ...*options.FindOptions) (entities []E, err error) {
	defer func(start time.Time) { r.observe("find", start, err) }(time.Now())
	cursor, err := r.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("find: %w", err)
	}
	entities = []E{}
	if err := cursor.All(ctx, &entities); err != nil {
		return nil, fmt.Errorf("cursor all: %w", err)
	}
	return entities, nil
}

func (r *baseRepo[E]) Count(ctx context.Context, filter any, opts ...*options.CountOptions) (total int64, err error) {
	defer func(start time.Time) { r.observe("count", start, err) }(time.Now())
	total, err = r.coll.CountDocuments(ctx, filter, opts...)
	if err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}
	return total, nil
}

func (r *baseRepo[E]) Paginate(ctx context.Context, filter any, limit int64, skip int64, opts ...*options.FindOptions) ([]E, error) {
	opts = append(opts, options.Find().SetSkip(skip).SetLimit(limit))
	return r.Find(ctx, filter, opts...)
}

// PaginateWithTotal runs the windowed find and the count concurrently.
// The two reads are independent and may observe different snapshots.
func (r *baseRepo[E]) PaginateWithTotal(ctx context.Context, filter any, limit int64, skip int64, opts ...*options.FindOptions) (*PaginateWithTotal[E], error) {
	group, ctx := errgroup.WithContext(ctx)
	var entities []E
	var total int64

	group.Go(func() error {
		var err error
		entities, err = r.Paginate(ctx, filter, limit, skip, opts...)
		return err
	})

	group.Go(func() error {
		var err error
		total, err = r.Count(ctx, filter)
		return err
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return &PaginateWithTotal[E]{Total: total, Data: entities}, nil
}

func (r *baseRepo[E]) Distinct(ctx context.Context, field string, filter any) (values []any, err error) {
	defer func(start time.Time) { r.observe("distinct", start, err) }(time.Now())
	values, err = r.coll.Distinct(ctx, field, filter)
	if err != nil {
		return nil, fmt.Errorf("distinct %s: %w", field, err)
	}
	return values, nil
}

func (r *baseRepo[E]) Aggregate(ctx context.Context, pipeline mongo.Pipeline, out any) (err error) {
	defer func(start time.Time) { r.observe("aggregate", start, err) }(time.Now())
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return fmt.Errorf("aggregate: %w", err)
	}
	if err := cursor.All(ctx, out); err != nil {
		return fmt.Errorf("cursor all: %w", err)
	}
	return nil
}

// notNull matches documents where field is present and not null.
func notNull(field string) bson.M {
	return bson.M{field: bson.M{"$ne": nil}}
}
