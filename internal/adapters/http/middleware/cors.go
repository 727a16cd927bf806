package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

const corsMaxAge = 300

// CORS returns middleware that answers preflight requests and sets CORS
// response headers for the given origins. With no origins it passes requests
// through untouched, which is the same-origin setup where the API also
// serves the single-page app.
func CORS(allowedOrigins []string) Middleware {
	if len(allowedOrigins) == 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	return cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"Accept", "Content-Type", headerRequestID, headerCorrelationID},
		ExposedHeaders: []string{headerRequestID, headerCorrelationID},
		MaxAge:         corsMaxAge,
	})
}
