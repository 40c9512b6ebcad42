// Package observability provides logger construction for the sheet tools.
package observability

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cory-johannsen/investigator/internal/config"
)

// NewLogger creates a structured logger from the given logging configuration.
// Output goes to stderr, or to cfg.File when set, so stdout stays free for
// command output. Stack traces are only attached at debug level.
//
// Precondition: cfg.Level must be one of "debug", "info", "warn", "error".
// Precondition: cfg.Format must be "json" or "console".
// Postcondition: Returns a configured zap.Logger or a non-nil error.
func NewLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
	}

	zapCfg, err := baseConfig(cfg.Format)
	if err != nil {
		return nil, err
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapCfg.DisableStacktrace = level > zapcore.DebugLevel

	out, err := outputPath(cfg.File)
	if err != nil {
		return nil, err
	}
	zapCfg.OutputPaths = []string{out}
	zapCfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger, nil
}

func baseConfig(format string) (zap.Config, error) {
	switch format {
	case "json":
		return zap.NewProductionConfig(), nil
	case "console":
		c := zap.NewDevelopmentConfig()
		c.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return c, nil
	}
	return zap.Config{}, fmt.Errorf("unknown log format %q", format)
}

// outputPath returns "stderr" for an empty file, otherwise file after making
// sure its directory exists.
func outputPath(file string) (string, error) {
	if file == "" {
		return "stderr", nil
	}
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return "", fmt.Errorf("creating log directory: %w", err)
	}
	return file, nil
}
