// Package logger builds the zap loggers used by the CLI.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// LevelInfo logs warnings and informational messages.
	LevelInfo = "info"

	// LevelDebug additionally logs parsed labels and each applied increment.
	LevelDebug = "debug"

	// LevelNone disables logging.
	LevelNone = "none"
)

// Get returns a logger writing human readable lines to stderr at the given level.
// Stdout is left to the command's result.
func Get(level string) (*zap.Logger, error) {
	if level == LevelNone {
		return zap.NewNop(), nil
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Development = false
	cfg.DisableStacktrace = true
	cfg.DisableCaller = true
	cfg.EncoderConfig.TimeKey = ""
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}

// MustGet is Get that panics on an unknown level.
func MustGet(level string) *zap.Logger {
	l, err := Get(level)
	if err != nil {
		panic(err)
	}
	return l
}
