package logger

import (
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu   sync.RWMutex
	base *zap.Logger
)

// Init builds the process logger. Production uses JSON on stdout,
// anything else the colored development console encoder.
func Init(env, level string) error {
	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.MessageKey = "message"
		cfg.EncoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.OutputPaths = []string{"stdout"}
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	if level != "" {
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return fmt.Errorf("parse log level %q: %w", level, err)
		}
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	l, err := cfg.Build(zap.AddCaller())
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	Replace(l)
	return nil
}

// Replace swaps the process logger and returns a func restoring the previous one.
func Replace(l *zap.Logger) func() {
	mu.Lock()
	defer mu.Unlock()
	prev := base
	base = l
	return func() {
		mu.Lock()
		defer mu.Unlock()
		base = prev
	}
}

// L returns the process logger, initializing it from APP_ENV on first use.
func L() *zap.Logger {
	mu.RLock()
	l := base
	mu.RUnlock()
	if l != nil {
		return l
	}
	if err := Init(os.Getenv("APP_ENV"), os.Getenv("LOG_LEVEL")); err != nil {
		Replace(zap.NewNop())
	}
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// MustNamed returns a named sugared logger.
func MustNamed(name string) *zap.SugaredLogger {
	return L().Named(name).Sugar()
}

// Sync flushes buffered entries.
func Sync() {
	_ = L().Sync()
}
