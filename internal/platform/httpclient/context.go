package httpclient

import (
	"context"
	"net/http"
)

type (
	requestIDKey     struct{}
	correlationIDKey struct{}
)

// WithRequestID stores the inbound request id so outbound calls made with
// ctx carry it as X-Request-ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// WithCorrelationID stores the inbound correlation id so outbound calls made
// with ctx carry it as X-Correlation-ID.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, id)
}

// propagateIDs copies the ids stored in ctx onto outbound headers.
func propagateIDs(ctx context.Context, h http.Header) {
	if id, _ := ctx.Value(requestIDKey{}).(string); id != "" {
		h.Set("X-Request-ID", id)
	}
	if id, _ := ctx.Value(correlationIDKey{}).(string); id != "" {
		h.Set("X-Correlation-ID", id)
	}
}
