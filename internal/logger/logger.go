// Package logger builds the zap logger shared by the server components
package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// New creates a production JSON logger writing at the given level ("debug", "info", "warn", "error")
func New(level string) (*zap.Logger, error) {
	atomicLevel, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = atomicLevel
	cfg.EncoderConfig.TimeKey = "time"

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	return logger.With(zap.String("service", "talkbridge")), nil
}
