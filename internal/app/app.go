package app

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap/zapcore"

	"github.com/nguyentranbao-ct/product-store/internal/config"
	"github.com/nguyentranbao-ct/product-store/internal/repo/mongodb"
	"github.com/nguyentranbao-ct/product-store/internal/server"
	"github.com/nguyentranbao-ct/product-store/internal/usecase"
	"github.com/nguyentranbao-ct/product-store/pkg/logger"
)

// Invoke builds the application graph from the environment and registers funcs
// as fx invocations. Configuration or logger errors are reported by fx.New.
func Invoke(funcs ...any) *fx.App {
	conf, err := config.Load()
	if err != nil {
		return fx.New(fx.Error(err))
	}
	if err := logger.Init(conf.App.Env, conf.App.LogLevel); err != nil {
		return fx.New(fx.Error(err))
	}
	return New(conf, funcs...)
}

// New builds the application graph for an already loaded config.
func New(conf *config.Config, funcs ...any) *fx.App {
	log := logger.MustNamed("app")
	log.Debugw("config loaded",
		"env", conf.App.Env,
		"addr", conf.Server.Addr(),
		"database", conf.Database.Database,
		"collection", conf.Database.Collection,
		"filter_mode", conf.Catalog.FilterMode,
	)
	return fx.New(
		fx.WithLogger(func() fxevent.Logger {
			l := &fxevent.ZapLogger{
				Logger: log.Desugar(),
			}
			l.UseLogLevel(zapcore.DebugLevel)
			return l
		}),
		Options(conf),
		fx.Invoke(funcs...),
	)
}

// Options provides every component of the service.
func Options(conf *config.Config) fx.Option {
	return fx.Options(
		fx.Supply(conf),
		fx.Provide(
			newMongoDB,
			newStorePinger,

			server.NewHandler,

			usecase.NewCatalogUsecase,
			usecase.NewFacetUsecase,

			mongodb.NewProductRepository,
			mongodb.NewMigrationRepository,
		),
	)
}

// RunMigrations applies pending migrations on start, then asks fx to stop.
func RunMigrations(lc fx.Lifecycle, sd fx.Shutdowner, repo mongodb.MigrationRepository) {
	log := logger.MustNamed("migrate")
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := repo.EnsureCatalogIndexes(ctx); err != nil {
				log.Errorw("migration failed", "error", err)
				return err
			}
			log.Infow("migrations applied")
			return sd.Shutdown()
		},
	})
}
