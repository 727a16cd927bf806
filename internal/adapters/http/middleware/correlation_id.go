package middleware

import (
	"context"
	"net/http"

	"github.com/jsamuelsen11/todo-api/internal/platform/httpclient"
)

const headerCorrelationID = "X-Correlation-ID"

type correlationIDKey struct{}

// WithCorrelationID stores id in ctx for this package and for outbound
// httpclient requests.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return httpclient.WithCorrelationID(context.WithValue(ctx, correlationIDKey{}, id), id)
}

// CorrelationIDFromContext returns the correlation id, or "" if none is set.
func CorrelationIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(correlationIDKey{}).(string)
	return id
}

// CorrelationID ties together the requests that make up one logical
// operation. A valid incoming X-Correlation-ID is kept; otherwise the
// request id stands in for it, so RequestID must run first. The id is echoed
// on the response.
func CorrelationID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			id := r.Header.Get(headerCorrelationID)
			if !validID(id) {
				id = RequestIDFromContext(ctx)
			}

			w.Header().Set(headerCorrelationID, id)
			next.ServeHTTP(w, r.WithContext(WithCorrelationID(ctx, id)))
		})
	}
}
