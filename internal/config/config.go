package config

import (
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/nguyentranbao-ct/product-store/internal/models"
)

type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig `envPrefix:"DB_"`
	Catalog  CatalogConfig  `envPrefix:"CATALOG_"`
}

type AppConfig struct {
	Env      string `env:"APP_ENV" envDefault:"development" validate:"oneof=development production test"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
}

type ServerConfig struct {
	Host             string `env:"HOST" envDefault:"0.0.0.0"`
	Port             string `env:"PORT" envDefault:"5000" validate:"required,numeric"`
	CORSAllowOrigins string `env:"CORS_ALLOW_ORIGINS" envDefault:".*" validate:"regexp"`
	MetricsEnabled   bool   `env:"METRICS_ENABLED" envDefault:"true"`
	PprofEnabled     bool   `env:"PPROF_ENABLED" envDefault:"false"`
	StatsdAddress    string `env:"STATSD_ADDRESS" validate:"omitempty,hostname_port"`
}

func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

type DatabaseConfig struct {
	URI        string        `env:"URI" envDefault:"mongodb://localhost:27017" validate:"required"`
	Username   string        `env:"USER"`
	Password   string        `env:"PASS"`
	AuthSource string        `env:"AUTH_SOURCE" envDefault:"admin"`
	Database   string        `env:"NAME" envDefault:"productStore" validate:"required"`
	Collection string        `env:"COLLECTION" envDefault:"products" validate:"required"`
	StrictAPI  bool          `env:"STRICT_API" envDefault:"false"`
	Timeout    time.Duration `env:"TIMEOUT" envDefault:"10s" validate:"gt=0"`
	FailFast   bool          `env:"FAIL_FAST" envDefault:"true"`
}

type CatalogConfig struct {
	FilterMode   models.FilterMode `env:"FILTER_MODE" envDefault:"list" validate:"oneof=list pattern"`
	DefaultLimit int               `env:"DEFAULT_LIMIT" envDefault:"10" validate:"min=1"`
	MaxLimit     int               `env:"MAX_LIMIT" envDefault:"0" validate:"min=0"`
}

// Load reads an optional .env file, then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return Parse()
}

// Parse reads the configuration from the environment only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if err := newValidator().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("regexp", func(fl validator.FieldLevel) bool {
		_, err := regexp.Compile(fl.Field().String())
		return err == nil
	})
	return v
}
