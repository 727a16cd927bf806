package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/jsamuelsen11/todo-api/internal/platform/httpclient"
)

const headerRequestID = "X-Request-ID"

// maxIDLen bounds client-supplied ids before they reach logs.
const maxIDLen = 128

// requestIDKey is private to this package; httpclient keeps its own key so
// it never imports middleware.
type requestIDKey struct{}

// WithRequestID stores id in ctx. The remote store reads it back through
// httpclient so outbound calls carry the same X-Request-ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return httpclient.WithRequestID(context.WithValue(ctx, requestIDKey{}, id), id)
}

// RequestIDFromContext returns the request id, or "" if none is set.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// RequestID gives each request an X-Request-ID. A valid incoming header is
// reused; anything else is replaced with a fresh UUID v4. The id is stored
// in the context and echoed on the response.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(headerRequestID)
			if !validID(id) {
				id = uuid.NewString()
			}

			w.Header().Set(headerRequestID, id)
			next.ServeHTTP(w, r.WithContext(WithRequestID(r.Context(), id)))
		})
	}
}

// validID accepts non-empty ids of at most maxIDLen printable ASCII
// characters without spaces, which keeps header values safe to log.
func validID(id string) bool {
	if id == "" || len(id) > maxIDLen {
		return false
	}
	for i := range len(id) {
		if c := id[i]; c < '!' || c > '~' {
			return false
		}
	}
	return true
}
