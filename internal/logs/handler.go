package logs

import (
	"context"
	"fmt"
	"log/slog"
)

type fileKey struct{}

// WithFile records the source file being processed; records logged with
// the returned context carry it as the "file" attribute.
func WithFile(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, fileKey{}, path)
}

func FileFrom(ctx context.Context) (string, bool) {
	path, ok := ctx.Value(fileKey{}).(string)
	return path, ok
}

type Handler struct {
	slog.Handler
}

func (h *Handler) Handle(ctx context.Context, record slog.Record) error {
	if path, ok := FileFrom(ctx); ok {
		record.Add("file", path)
	}
	return h.Handler.Handle(ctx, record)
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{Handler: h.Handler.WithGroup(name)}
}

// WrapFile annotates err with the file recorded in ctx.
func WrapFile(ctx context.Context, err error) error {
	path, ok := FileFrom(ctx)
	if !ok || err == nil {
		return err
	}
	return fmt.Errorf("%s: %w", path, err)
}
