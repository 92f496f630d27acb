package app

import (
	"context"
	"time"

	"go.uber.org/fx"

	"github.com/nguyentranbao-ct/product-store/internal/config"
	"github.com/nguyentranbao-ct/product-store/internal/repo/mongodb"
	"github.com/nguyentranbao-ct/product-store/internal/server"
	"github.com/nguyentranbao-ct/product-store/pkg/logger"
)

const connectTimeout = 10 * time.Second

// newMongoDB creates the single store client. The server is pinged on start;
// with FailFast off an unreachable store is logged and startup continues.
func newMongoDB(lc fx.Lifecycle, cfg *config.Config) (*mongodb.DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	db, err := mongodb.NewConnection(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	log := logger.MustNamed("mongodb")
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := db.Ping(ctx); err != nil {
				if cfg.Database.FailFast {
					return err
				}
				log.Errorw("store unreachable, serving anyway", "error", err)
				return nil
			}
			log.Infow("connected to MongoDB", "database", cfg.Database.Database, "strict_api", cfg.Database.StrictAPI)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return db.Close(ctx)
		},
	})

	return db, nil
}

func newStorePinger(db *mongodb.DB) server.Pinger {
	return db
}
