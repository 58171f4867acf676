package logger

import "log/slog"

// NewNope creates a logger that discards everything. It is the default when
// no logger is configured, and keeps tests quiet.
func NewNope() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
