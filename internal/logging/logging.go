// Package logging builds slog loggers for the bridge binaries.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/lmittmann/tint"
)

// Format represents log output format
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	// FormatDev writes colorized human readable lines
	FormatDev Format = "dev"
)

// Config holds logging configuration
type Config struct {
	Level  slog.Level
	Format Format
	// Output defaults to os.Stderr; stdout stays free for protocol traffic.
	Output io.Writer
}

// New creates a logger for the supplied config
func New(cfg Config) *slog.Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	options := &slog.HandlerOptions{Level: cfg.Level}
	var handler slog.Handler
	switch cfg.Format {
	case FormatJSON:
		handler = slog.NewJSONHandler(cfg.Output, options)
	case FormatDev:
		handler = tint.NewHandler(cfg.Output, &tint.Options{
			Level:      cfg.Level,
			TimeFormat: "[15:04:05.000]",
		})
	default:
		handler = slog.NewTextHandler(cfg.Output, options)
	}
	return slog.New(handler)
}

// Nop returns a logger that discards everything
func Nop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel parses level name, unknown names fall back to info
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug", "trace":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// ParseFormat parses format name, unknown names fall back to text
func ParseFormat(name string) Format {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return FormatJSON
	case "dev", "tint", "color":
		return FormatDev
	}
	return FormatText
}
