package logger

import (
	"io"
	"log/slog"
	"os"
)

// Config holds logger output settings, loaded from the app config file.
type Config struct {
	// Minimum level to emit: "debug", "info", "warn" or "error".
	Level string `yaml:"level"`

	// Output format: "json" (default) or "text".
	Format string `yaml:"format"`

	// Include the source file and line in each record.
	AddSource bool `yaml:"add_source"`

	// Sentry fan-out settings, consumed by NewWithSentry.
	Sentry SentryConfig `yaml:"sentry"`
}

// DefaultConfig returns JSON output at info level.
func DefaultConfig() Config {
	return Config{Level: "info", Format: "json"}
}

// New creates a JSON-formatted info-level logger with optional context extractors.
func New(extractors ...ContextExtractor) *slog.Logger {
	return NewWithConfig(DefaultConfig(), extractors...)
}

// NewWithConfig creates a logger writing to stdout with the configured level
// and format. The Sentry section is ignored here; use NewWithSentry to fan out.
func NewWithConfig(cfg Config, extractors ...ContextExtractor) *slog.Logger {
	return NewWithWriter(os.Stdout, cfg, extractors...)
}

// NewWithWriter creates a logger writing to w. Tests use it to capture output
// in a buffer.
func NewWithWriter(w io.Writer, cfg Config, extractors ...ContextExtractor) *slog.Logger {
	return slog.New(NewLogHandlerDecorator(newHandler(w, cfg), extractors...))
}

func newHandler(w io.Writer, cfg Config) slog.Handler {
	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: cfg.AddSource,
	}
	if cfg.Format == "text" {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}

// parseLevel maps a config string to a slog level. Empty or unrecognized
// values fall back to info rather than failing startup.
func parseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return l
}
