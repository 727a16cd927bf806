// Package logging builds the service's slog logger and carries the
// request-scoped logger through context.
//
//	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
//	ctx = logging.WithLogger(ctx, logger.With(slog.String("request_id", id)))
//	logging.FromContext(ctx).InfoContext(ctx, "todo created", slog.Int64("id", t.ID))
//
// Failed store calls are logged with the operation, the todo id when there
// is one and the full error chain:
//
//	logger.ErrorContext(ctx, "todo datasource call failed",
//	    slog.String("operation", "UpdateByID"),
//	    slog.Int64("id", id),
//	    slog.Any("error", err),
//	)
//
// Every handler passes records through a masq redactor, so credentials that
// end up in attributes or error strings are masked.
package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

type loggerKey struct{}

// New returns a logger writing to w. level accepts anything slog.Level
// parses, case-insensitively ("debug", "WARN", "info+2"); other values mean
// info. format "text" selects key=value output and anything else JSON. At
// debug level and below each record also carries its source location.
func New(level, format string, w io.Writer) *slog.Logger {
	lvl := ParseLevel(level)

	opts := &slog.HandlerOptions{
		Level:       lvl,
		AddSource:   lvl <= slog.LevelDebug,
		ReplaceAttr: redactor(),
	}

	if strings.EqualFold(format, "text") {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// ParseLevel converts a configured level name to a slog.Level, falling back
// to info.
func ParseLevel(level string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// WithLogger stores logger in ctx.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns the logger stored by WithLogger, or slog.Default().
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
