// Package logging builds the structured logger used by the engine and the
// command line tools.
package logging

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/herlein/radiocfg/pkg/config"
)

// ParseLevel converts a configured level name; unknown names map to info
func ParseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// Writer returns the log destination: a rotating file when one is
// configured, stderr otherwise
func Writer(cfg config.LoggingConfig) io.Writer {
	if cfg.File == "" {
		return os.Stderr
	}
	return &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}
}

// New returns a logger writing to w in the configured format
func New(cfg config.LoggingConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Setup builds the logger for cfg and installs it as the default
func Setup(cfg config.LoggingConfig) *slog.Logger {
	logger := New(cfg, Writer(cfg))
	slog.SetDefault(logger)
	return logger
}
