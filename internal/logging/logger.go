// Package logging wraps zap the way the teacher's internal/logging does,
// minus the HTTP request-scoping this single-invocation CLI has no use for.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger struct {
	*zap.Logger
}

// NewLogger builds a production-style zap logger at the given level
// ("debug", "info", "warn", "error"). An empty level defaults to "info".
func NewLogger(level string) (*Logger, error) {
	if level == "" {
		level = "info"
	}

	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()

	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{logger}, nil
}

// Nop returns a logger that discards everything, for tests that don't
// care about log output.
func Nop() *Logger {
	return &Logger{zap.NewNop()}
}
