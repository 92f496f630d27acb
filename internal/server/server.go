package server

import (
	"context"
	"errors"
	"net/http"
	"regexp"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/fx"

	"github.com/nguyentranbao-ct/product-store/internal/config"
	pkgmdw "github.com/nguyentranbao-ct/product-store/internal/server/middleware"
	"github.com/nguyentranbao-ct/product-store/pkg/logger"
)

// NewEcho builds the HTTP router with middlewares and routes registered.
// The returned cleanup releases middleware resources.
func NewEcho(conf *config.Config, handler Controller) (*echo.Echo, func(), error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = pkgmdw.NewValidator()
	e.HTTPErrorHandler = pkgmdw.ErrorHandler(logger.MustNamed("http_error"))

	cleanup := func() {}

	logConfig := pkgmdw.LogRequestConfig{
		Logger: logger.MustNamed("http"),
		Enabled: func(c echo.Context) bool {
			path := c.Request().URL.Path
			return path != "/health" && path != "/metrics"
		},
	}

	if conf.Server.MetricsEnabled {
		e.Use(pkgmdw.Metrics())
	}
	if conf.Server.StatsdAddress != "" {
		profiler, closeFn, err := pkgmdw.ProfilerWithConfig(pkgmdw.ProfilerConfig{
			Log:     logger.MustNamed("statsd"),
			Address: conf.Server.StatsdAddress,
			Service: "product_store",
		})
		if err != nil {
			return nil, nil, err
		}
		e.Use(profiler)
		cleanup = closeFn
	}
	e.Use(pkgmdw.RequestID())
	e.Use(pkgmdw.LogRequest(logConfig))
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.FromContext(c.Request().Context(), "http").
				Errorw("PANIC RECOVER", "error", err, "stack", string(stack))
			return nil
		},
	}))
	e.Use(pkgmdw.CORS(regexp.MustCompile(conf.Server.CORSAllowOrigins)))

	if conf.Server.PprofEnabled {
		pkgmdw.PprofWrap(e)
	}

	e.GET("/", handler.Home)
	e.GET("/health", handler.Health)

	api := e.Group("/api")
	api.GET("/products", pkgmdw.WrapHandler(handler.ListProducts))
	api.GET("/brands", pkgmdw.WrapHandler(handler.ListBrands))
	api.GET("/categories", pkgmdw.WrapHandler(handler.ListCategories))

	return e, cleanup, nil
}

func StartServer(
	lc fx.Lifecycle,
	sd fx.Shutdowner,
	conf *config.Config,
	handler Controller,
) error {
	e, cleanup, err := NewEcho(conf, handler)
	if err != nil {
		return err
	}
	log := logger.MustNamed("server")

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				addr := conf.Server.Addr()
				log.Infow("starting HTTP server", "addr", addr)
				if err := e.Start(addr); !errors.Is(err, http.ErrServerClosed) {
					log.Errorw("HTTP server stopped", "error", err)
					_ = sd.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			defer cleanup()
			return e.Shutdown(ctx)
		},
	})
	return nil
}
