// Package observability provides logging utilities.
package observability

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Kingly77/VentureTextAdventure/internal/config"
)

// AppName is attached to every log line as the "app" field.
const AppName = "venture"

// NewLogger creates a structured logger from the given logging configuration.
// Console loggers skip stack traces: a warning from a failed script hook
// should not bury the terminal. Level colours are used only when the sink is
// a terminal stream.
//
// Precondition: cfg.Level must be one of "debug", "info", "warn", "error".
// Precondition: cfg.Format must be "json" or "console".
// Postcondition: Returns a configured zap.Logger writing to cfg.Output
// (stderr when empty) or a non-nil error.
func NewLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
	}

	output := cfg.Output
	if output == "" {
		output = "stderr"
	}

	var zapCfg zap.Config
	switch cfg.Format {
	case "json":
		zapCfg = zap.NewProductionConfig()
	case "console":
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.DisableStacktrace = true
		if output == "stderr" || output == "stdout" {
			zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapCfg.InitialFields = map[string]any{"app": AppName}
	zapCfg.OutputPaths = []string{output}
	zapCfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger, nil
}

// ForSession tags logger with a fresh session id and the hero's name so the
// lines of one play-through can be told apart in a shared log file.
//
// Precondition: logger must be non-nil.
func ForSession(logger *zap.Logger, hero string) *zap.Logger {
	return logger.With(
		zap.String("session_id", uuid.NewString()),
		zap.String("hero", hero),
	)
}
