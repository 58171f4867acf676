package logger

import (
	"context"
	"errors"
	"log/slog"
	"slices"
)

// multiHandler fans a record out to every handler that accepts its level.
// A failing destination does not starve the others; errors are joined.
type multiHandler struct {
	handlers []slog.Handler
}

func newMultiHandler(handlers ...slog.Handler) slog.Handler {
	return &multiHandler{handlers: handlers}
}

func (h *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return slices.ContainsFunc(h.handlers, func(hh slog.Handler) bool {
		return hh.Enabled(ctx, level)
	})
}

func (h *multiHandler) Handle(ctx context.Context, rec slog.Record) error {
	var errs []error
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, rec.Level) {
			if err := handler.Handle(ctx, rec.Clone()); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// apply rebuilds the fan-out with each destination transformed, keeping
// derived handlers independent of the original.
func (h *multiHandler) apply(f func(slog.Handler) slog.Handler) slog.Handler {
	next := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		next[i] = f(handler)
	}
	return &multiHandler{handlers: next}
}

func (h *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.apply(func(hh slog.Handler) slog.Handler { return hh.WithAttrs(attrs) })
}

func (h *multiHandler) WithGroup(name string) slog.Handler {
	return h.apply(func(hh slog.Handler) slog.Handler { return hh.WithGroup(name) })
}
