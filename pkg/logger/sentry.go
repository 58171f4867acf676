package logger

import (
	"context"
	"log/slog"
	"os"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig holds Sentry integration settings. A logger built from a
// config with an empty DSN never touches the Sentry SDK.
type SentryConfig struct {
	DSN         string `yaml:"dsn"`
	Environment string `yaml:"environment"`

	// MinLevel selects which records are forwarded as Sentry logs: "warn"
	// (the default) forwards warnings and errors, "error" forwards errors
	// only. Errors always create Sentry issues regardless of this setting.
	MinLevel string `yaml:"min_level"`
}

// NewWithSentry creates a logger that writes to stdout and forwards records
// to Sentry. When the DSN is empty or initialization fails it degrades to
// stdout-only, so the same code path works unconfigured in local development.
func NewWithSentry(cfg Config, extractors ...ContextExtractor) *slog.Logger {
	stdout := newHandler(os.Stdout, cfg)

	if cfg.Sentry.DSN == "" {
		return slog.New(NewLogHandlerDecorator(stdout, extractors...))
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.Sentry.DSN,
		Environment: cfg.Sentry.Environment,
		EnableLogs:  true,
	}); err != nil {
		slog.New(stdout).Error("failed to initialize sentry", slog.String("error", err.Error()))
		return slog.New(NewLogHandlerDecorator(stdout, extractors...))
	}

	// Errors create Sentry issues. Lesser records ride along as searchable
	// logs, down to the configured minimum.
	logLevels := []slog.Level{slog.LevelWarn, slog.LevelError}
	if parseLevel(cfg.Sentry.MinLevel) >= slog.LevelError {
		logLevels = []slog.Level{slog.LevelError}
	}

	sentryHandler := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   logLevels,
	}.NewSentryHandler(context.Background())

	return slog.New(NewLogHandlerDecorator(newMultiHandler(stdout, sentryHandler), extractors...))
}
