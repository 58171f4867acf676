// Package logger provides structured logging with context extraction and
// optional Sentry fan-out.
//
// The package extends log/slog with two capabilities: attributes injected
// from the request context on every log call, and error reporting to Sentry
// that degrades gracefully when unconfigured.
//
// # Basic Usage
//
// Create a logger with context extractors:
//
//	// Pull the request id out of context on every record.
//	requestID := func(ctx context.Context) (slog.Attr, bool) {
//		if id, ok := ctx.Value(ctxKey{}).(string); ok && id != "" {
//			return slog.String("request_id", id), true
//		}
//		return slog.Attr{}, false
//	}
//
//	log := logger.New(requestID)
//	log.InfoContext(ctx, "request processed", slog.Int("status", 200))
//	// {"level":"INFO","msg":"request processed","status":200,"request_id":"abc-123"}
//
// # Configuration
//
// [New] emits JSON at info level. [NewWithConfig] reads level, format and
// source annotation from a [Config], typically loaded from the app's YAML
// config file:
//
//	log:
//	  level: debug
//	  format: text
//
//	var cfg logger.Config
//	// ... unmarshal ...
//	log := logger.NewWithConfig(cfg, requestID)
//
// [NewWithWriter] directs output anywhere, which tests use to capture records
// in a buffer.
//
// # Sentry Integration
//
// [NewWithSentry] writes to stdout and forwards records to Sentry:
//
//	log := logger.NewWithSentry(logger.Config{
//		Sentry: logger.SentryConfig{
//			DSN:         cfg.SentryDSN,
//			Environment: "production",
//		},
//	}, requestID)
//
// Errors create Sentry issues; warnings and errors are stored as searchable
// logs (errors only when MinLevel is "error"). With an empty DSN the logger
// is stdout-only, so development and production share one code path.
//
// # Handler Decoration
//
// [NewLogHandlerDecorator] wraps any slog.Handler with extractor behavior,
// for callers that build their own handler stack:
//
//	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
//	log := slog.New(logger.NewLogHandlerDecorator(h, requestID))
package logger
