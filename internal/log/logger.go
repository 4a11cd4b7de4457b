package log

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/reglet-dev/rvext/internal/config"
)

// New builds the extension logger from settings. Records go to settings.File
// (stderr when empty) and, when ForwardToHost is set, through send.
//
// The returned closer releases the log file. If the file cannot be opened the
// logger falls back to stderr and the error is returned alongside it.
func New(settings config.LogSettings, send SendFunc) (*slog.Logger, io.Closer, error) {
	level := settings.SlogLevel()

	var (
		out     io.Writer = os.Stderr
		closer  io.Closer = nopCloser{}
		openErr error
	)
	if settings.File != "" {
		f, err := os.OpenFile(settings.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			openErr = fmt.Errorf("failed to open log file %s: %w", settings.File, err)
		} else {
			out, closer = f, f
		}
	}

	handlers := []slog.Handler{
		slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}),
	}
	if settings.ForwardToHost && send != nil {
		handlers = append(handlers, NewHostHandler(send, WithLevel(level)))
	}

	return slog.New(fanout(handlers)), closer, openErr
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// fanout dispatches every record to all of its handlers.
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, record slog.Record) error {
	var errs []error
	for _, h := range f {
		if h.Enabled(ctx, record.Level) {
			if err := h.Handle(ctx, record.Clone()); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make(fanout, len(f))
	for i, h := range f {
		next[i] = h.WithAttrs(attrs)
	}
	return next
}

func (f fanout) WithGroup(name string) slog.Handler {
	next := make(fanout, len(f))
	for i, h := range f {
		next[i] = h.WithGroup(name)
	}
	return next
}
