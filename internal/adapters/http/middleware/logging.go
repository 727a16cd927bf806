package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/jsamuelsen11/todo-api/internal/platform/logging"
)

// Logging stores a request-scoped logger (tagged with the request and
// correlation ids) in the context and logs each request twice: once on
// arrival and once on completion. The completion line carries the chi route
// pattern, status and body size, and its level follows the status: 5xx at
// Error, 4xx at Warn, everything else at Info.
func Logging(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			reqLogger := logger.With(
				slog.String("request_id", RequestIDFromContext(r.Context())),
				slog.String("correlation_id", CorrelationIDFromContext(r.Context())),
			)
			ctx := logging.WithLogger(r.Context(), reqLogger)

			reqLogger.InfoContext(ctx, "request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
			)
			logHeaders(ctx, reqLogger, r.Header)

			rec := recordResponse(w)
			next.ServeHTTP(rec, r.WithContext(ctx))

			status := rec.Status()
			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", status),
				slog.Int64("bytes", rec.BytesWritten()),
				slog.Duration("duration", time.Since(start)),
			}
			if route := routePattern(r); route != "" {
				attrs = append(attrs, slog.String("route", route))
			}
			reqLogger.LogAttrs(ctx, levelForStatus(status), "request completed", attrs...)
		})
	}
}

func levelForStatus(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// logHeaders dumps the redacted request headers at debug level.
func logHeaders(ctx context.Context, logger *slog.Logger, h http.Header) {
	if !logger.Enabled(ctx, slog.LevelDebug) {
		return
	}
	logger.LogAttrs(ctx, slog.LevelDebug, "request headers", RedactHeaders(h)...)
}
