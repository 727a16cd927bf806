package middleware

import (
	"net/http"
	"slices"
)

// Middleware wraps a handler with behaviour that runs around it.
type Middleware = func(http.Handler) http.Handler

// Chain folds mws into a single Middleware with mws[0] outermost, so
// Chain(a, b)(h) serves requests as a(b(h)). Nil entries are skipped.
func Chain(mws ...Middleware) Middleware {
	return func(h http.Handler) http.Handler {
		for _, mw := range slices.Backward(mws) {
			if mw != nil {
				h = mw(h)
			}
		}
		return h
	}
}
