package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nguyentranbao-ct/product-store/internal/config"
	"github.com/nguyentranbao-ct/product-store/internal/models"
	"github.com/nguyentranbao-ct/product-store/pkg/logger"
)

const (
	migrationsCollection  = "migrations"
	catalogIndexMigration = "catalog_indexes_v1"

	MigrationRunning   = "running"
	MigrationCompleted = "completed"
	MigrationFailed    = "failed"
)

// MigrationRepository applies one-off schema changes and records their outcome.
type MigrationRepository interface {
	EnsureCatalogIndexes(ctx context.Context) error
	GetMigrationStatus(ctx context.Context, migrationName string) (*MigrationStatus, error)
	SetMigrationStatus(ctx context.Context, migrationName string, status string, result *MigrationResult) error
}

type migrationRepo struct {
	db         *DB
	collection string
}

type MigrationStatus struct {
	Name        string           `bson:"name" json:"name"`
	Status      string           `bson:"status" json:"status"`
	StartedAt   *time.Time       `bson:"started_at" json:"started_at"`
	CompletedAt *time.Time       `bson:"completed_at" json:"completed_at"`
	Result      *MigrationResult `bson:"result,omitempty" json:"result,omitempty"`
	CreatedAt   time.Time        `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time        `bson:"updated_at" json:"updated_at"`
}

type MigrationResult struct {
	Indexes  []string `bson:"indexes,omitempty" json:"indexes,omitempty"`
	Errors   []string `bson:"errors,omitempty" json:"errors,omitempty"`
	Duration string   `bson:"duration" json:"duration"`
}

var ErrMigrationNotFound = errors.New("migration status not found")

func NewMigrationRepository(db *DB, cfg *config.Config) MigrationRepository {
	return &migrationRepo{
		db:         db,
		collection: cfg.Database.Collection,
	}
}

// catalogIndexes backs the filter and sort keys used by product search.
func catalogIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: models.FieldBrand, Value: 1}}, Options: options.Index().SetName("brand_1")},
		{Keys: bson.D{{Key: models.FieldCategory, Value: 1}}, Options: options.Index().SetName("category_1")},
		{Keys: bson.D{{Key: models.FieldPrice, Value: 1}}, Options: options.Index().SetName("price_1")},
		{Keys: bson.D{{Key: models.FieldCreatedAt, Value: -1}}, Options: options.Index().SetName("createdAt_-1")},
		{Keys: bson.D{{Key: models.FieldName, Value: 1}}, Options: options.Index().SetName("name_1")},
	}
}

func (r *migrationRepo) EnsureCatalogIndexes(ctx context.Context) error {
	log := logger.FromContext(ctx, "migration")

	status, err := r.GetMigrationStatus(ctx, catalogIndexMigration)
	if err == nil && status.Status == MigrationCompleted {
		log.Infow("Migration already completed", "migration", catalogIndexMigration)
		return nil
	}
	if err != nil && !errors.Is(err, ErrMigrationNotFound) {
		return err
	}

	startTime := time.Now()
	if err := r.SetMigrationStatus(ctx, catalogIndexMigration, MigrationRunning, nil); err != nil {
		return fmt.Errorf("failed to set migration status: %w", err)
	}

	log.Infow("Creating catalog indexes", "migration", catalogIndexMigration, "collection", r.collection)

	names, err := r.db.Database.Collection(r.collection).Indexes().CreateMany(ctx, catalogIndexes())
	if err != nil {
		return r.completeMigrationWithError(ctx, catalogIndexMigration, startTime, fmt.Errorf("create indexes: %w", err))
	}

	result := &MigrationResult{
		Indexes:  names,
		Duration: time.Since(startTime).String(),
	}
	if err := r.SetMigrationStatus(ctx, catalogIndexMigration, MigrationCompleted, result); err != nil {
		log.Errorw("Failed to set migration completion status", "error", err)
	}

	log.Infow("Catalog indexes created",
		"migration", catalogIndexMigration,
		"indexes", names,
		"duration", result.Duration)

	return nil
}

func (r *migrationRepo) completeMigrationWithError(ctx context.Context, migrationName string, startTime time.Time, err error) error {
	result := &MigrationResult{
		Duration: time.Since(startTime).String(),
		Errors:   []string{err.Error()},
	}

	if setErr := r.SetMigrationStatus(ctx, migrationName, MigrationFailed, result); setErr != nil {
		logger.FromContext(ctx, "migration").Errorw("Failed to set migration failure status", "error", setErr)
	}

	return err
}

func (r *migrationRepo) GetMigrationStatus(ctx context.Context, migrationName string) (*MigrationStatus, error) {
	collection := r.db.Database.Collection(migrationsCollection)

	var status MigrationStatus
	err := collection.FindOne(ctx, bson.M{"name": migrationName}).Decode(&status)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", ErrMigrationNotFound, migrationName)
		}
		return nil, fmt.Errorf("failed to get migration status: %w", err)
	}

	return &status, nil
}

func (r *migrationRepo) SetMigrationStatus(ctx context.Context, migrationName string, status string, result *MigrationResult) error {
	collection := r.db.Database.Collection(migrationsCollection)

	now := time.Now()
	set := bson.M{
		"name":       migrationName,
		"status":     status,
		"updated_at": now,
	}

	switch status {
	case MigrationRunning:
		set["started_at"] = now
	case MigrationCompleted, MigrationFailed:
		set["completed_at"] = now
		if result != nil {
			set["result"] = result
		}
	}

	update := bson.M{
		"$set": set,
		"$setOnInsert": bson.M{
			"created_at": now,
		},
	}

	opts := options.Update().SetUpsert(true)
	_, err := collection.UpdateOne(ctx, bson.M{"name": migrationName}, update, opts)
	if err != nil {
		return fmt.Errorf("failed to set migration status: %w", err)
	}

	return nil
}
