// Package logging builds the zap logger used by the CLI.
package logging

import (
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds logger configuration.
type Config struct {
	Level  string // debug, info, warn, error
	Format string // console, json
	Color  bool   // colored level names (console only)
}

// DefaultConfig returns the CLI configuration: console output, warnings and up.
func DefaultConfig() Config {
	return Config{Level: "warn", Format: "console"}
}

// New creates a logger writing to w.
func New(w io.Writer, cfg Config) *zap.Logger {
	core := zapcore.NewCore(newEncoder(cfg), zapcore.AddSync(w), ParseLevel(cfg.Level))
	return zap.New(core)
}

// ParseLevel converts a level name to zapcore.Level. Unknown names map to warn.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}

// LevelFor maps the CLI verbosity flags to a level name; quiet wins.
func LevelFor(quiet, verbose bool) string {
	switch {
	case quiet:
		return "error"
	case verbose:
		return "debug"
	default:
		return "warn"
	}
}

func newEncoder(cfg Config) zapcore.Encoder {
	encoderConfig := zapcore.EncoderConfig{
		LevelKey:       "level",
		NameKey:        "logger",
		MessageKey:     "msg",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}

	if cfg.Format == "json" {
		encoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder
		return zapcore.NewJSONEncoder(encoderConfig)
	}
	if cfg.Color {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	return zapcore.NewConsoleEncoder(encoderConfig)
}
