// Package logging holds the package-level logger steps report through and
// builds the zap-backed logger used by the service and CLI.
package logging

import (
	"sync"

	"github.com/Gobusters/ectologger"
	"github.com/Gobusters/ectologger/zapadapter"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.RWMutex
	logger ectologger.Logger = NewNopLogger()
)

// NewNopLogger returns a logger that drops every message.
func NewNopLogger() ectologger.Logger {
	return ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
}

// NewZapLogger builds a JSON zap logger at level, or a console logger when
// development is set.
func NewZapLogger(level string, development bool) (ectologger.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	zapLogger, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	return zapadapter.NewZapEctoLogger(zapLogger, nil), nil
}

// SetLogger replaces the package logger.
func SetLogger(l ectologger.Logger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
}

// Logger returns the package logger.
func Logger() ectologger.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}
