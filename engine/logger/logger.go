// Package logger builds the zap logger shared by every engine component.
package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds configuration for the logger
type Config struct {
	Environment string `toml:"environment"`
	Level       string `toml:"level"`
	Encoding    string `toml:"encoding"`
	ServiceName string `toml:"service"`
}

// New creates a new logger with the given configuration.
// Empty fields fall back to the development environment, info level and console encoding.
//
// Parameters:
//   - cfg: the logger configuration
//
// Returns:
//   - *zap.Logger: the configured logger
//   - error: error if the zap configuration cannot be built
func New(cfg Config) (*zap.Logger, error) {
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.Encoding == "" {
		cfg.Encoding = "console"
	}

	config := zap.Config{
		Level:            Level(cfg.Level),
		Development:      cfg.Environment == "development",
		Encoding:         cfg.Encoding,
		EncoderConfig:    encoderConfig(cfg.Encoding),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	fields := []zap.Field{zap.String("environment", cfg.Environment)}
	if cfg.ServiceName != "" {
		fields = append(fields, zap.String("service", cfg.ServiceName))
	}
	return logger.With(fields...), nil
}

// Level converts a level name to a zap.AtomicLevel. Unknown names map to info.
//
// Parameters:
//   - level: one of debug, info, warn, error (case-insensitive)
//
// Returns:
//   - zap.AtomicLevel: the level
func Level(level string) zap.AtomicLevel {
	switch strings.ToLower(level) {
	case "debug":
		return zap.NewAtomicLevelAt(zapcore.DebugLevel)
	case "warn":
		return zap.NewAtomicLevelAt(zapcore.WarnLevel)
	case "error":
		return zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	default:
		return zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
}

func encoderConfig(encoding string) zapcore.EncoderConfig {
	ec := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	if encoding == "console" {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	return ec
}
