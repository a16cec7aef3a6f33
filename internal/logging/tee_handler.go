package logging

import (
	"context"
	"errors"
	"log/slog"
)

// teeHandler copies each record to the primary sink and the log file sink.
// Each sink keeps its own level check.
type teeHandler struct {
	primary slog.Handler
	file    slog.Handler
}

// newTeeHandler joins primary with file. With only one of them set, that
// handler is returned as is.
func newTeeHandler(primary, file slog.Handler) slog.Handler {
	switch {
	case primary == nil && file == nil:
		return NoopHandler{}
	case file == nil:
		return primary
	case primary == nil:
		return file
	}
	return &teeHandler{primary: primary, file: file}
}

func (h *teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.primary.Enabled(ctx, level) || h.file.Enabled(ctx, level)
}

func (h *teeHandler) Handle(ctx context.Context, record slog.Record) error {
	var errs []error
	for _, sink := range [...]slog.Handler{h.primary, h.file} {
		if !sink.Enabled(ctx, record.Level) {
			continue
		}
		if err := sink.Handle(ctx, record.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (h *teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &teeHandler{primary: h.primary.WithAttrs(attrs), file: h.file.WithAttrs(attrs)}
}

func (h *teeHandler) WithGroup(name string) slog.Handler {
	return &teeHandler{primary: h.primary.WithGroup(name), file: h.file.WithGroup(name)}
}
