// Package logging provides category-scoped structured logging for
// skillport, built on zap. Categories map to pipeline stages so a
// single stage can be silenced or inspected via config.
package logging

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"skillport/internal/config"
)

// Category names a pipeline stage.
type Category string

const (
	CategoryDetect    Category = "detect"    // construct detection
	CategoryTransform Category = "transform" // per-platform rewriting
	CategoryConvert   Category = "convert"   // document orchestration
	CategoryHistory   Category = "history"   // run ledger
	CategoryWatch     Category = "watch"     // filesystem watching
)

var (
	mu   sync.RWMutex
	base = zap.NewNop()
	cfg  config.LoggingConfig
)

// Initialize installs the process logger. Call once at startup; before
// that, all categories are no-ops.
func Initialize(c config.LoggingConfig) error {
	zc := zap.NewProductionConfig()
	if c.Debug {
		zc = zap.NewDevelopmentConfig()
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else if c.Level != "" {
		lvl, err := zapcore.ParseLevel(c.Level)
		if err != nil {
			return err
		}
		zc.Level = zap.NewAtomicLevelAt(lvl)
	}

	logger, err := zc.Build()
	if err != nil {
		return err
	}

	mu.Lock()
	base = logger
	cfg = c
	mu.Unlock()
	return nil
}

// Get returns the logger for a category, no-op when the category is
// disabled.
func Get(cat Category) *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	if !cfg.IsCategoryEnabled(string(cat)) {
		return zap.NewNop()
	}
	return base.Named(string(cat))
}

// Sync flushes buffered log entries. Safe to call on shutdown.
func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	_ = base.Sync()
}
