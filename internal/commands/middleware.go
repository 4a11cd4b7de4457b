package commands

import (
	"context"
	"log/slog"
	"time"
)

// PanicRecoveryMiddleware converts a panicking handler into an
// INTERNAL_ERROR ErrorResponse. A panic must never unwind into the Host.
func PanicRecoveryMiddleware() Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, args []string) (resp string, err error) {
			defer func() {
				if r := recover(); r != nil {
					resp = ""
					err = NewPanicError(r)
				}
			}()
			return next(ctx, args)
		}
	}
}

// LoggingMiddleware logs every invocation at debug level and failures at warn.
func LoggingMiddleware(logger *slog.Logger) Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, args []string) (string, error) {
			funcName := FunctionName(ctx)
			start := time.Now()

			resp, err := next(ctx, args)

			elapsed := time.Since(start)
			if err != nil {
				logger.WarnContext(ctx, "command failed",
					slog.String("function", funcName),
					slog.Int("args", len(args)),
					slog.Duration("elapsed", elapsed),
					slog.Any("error", err))
				return resp, err
			}
			logger.DebugContext(ctx, "command completed",
				slog.String("function", funcName),
				slog.Int("args", len(args)),
				slog.Int("response_bytes", len(resp)),
				slog.Duration("elapsed", elapsed))
			return resp, nil
		}
	}
}
