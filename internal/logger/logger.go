// Package logger wraps zap construction behind a small initialization helper.
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger carries the configured zap logger.
type Logger struct {
	// Log is the underlying zap logger. Safe to use before Init; it starts
	// as a no-op logger.
	Log *zap.Logger
}

// New returns a Logger that discards everything until Init is called.
func New() *Logger {
	return &Logger{Log: zap.NewNop()}
}

// Init builds a production zap logger at the given level and installs it
// on l.Log. Level is case-insensitive (debug, info, warn, error).
func (l *Logger) Init(level string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	log, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}

	l.Log = log
	return nil
}
