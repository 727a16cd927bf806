// Package http is the inbound HTTP adapter: the chi router that exposes the
// todo API and health probes, and the Server that runs it.
package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/todo-api/internal/adapters/http/dto"
	"github.com/jsamuelsen11/todo-api/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/todo-api/internal/adapters/http/middleware"
)

const apiPrefix = "/api"

// NewRouter mounts
//
//	GET    /health/live
//	GET    /health/ready
//	GET    /api/todos
//	POST   /api/todos
//	GET    /api/todos/{id}
//	PUT    /api/todos/{id}
//	DELETE /api/todos/{id}
//
// behind mws, outermost first. Unmatched paths under /api answer a JSON
// 404. Other unmatched paths go to static (the single-page app) or, when
// static is nil, get the same JSON 404. A known path with the wrong method
// answers a JSON 405.
func NewRouter(
	todos *handlers.TodoHandler,
	health *handlers.HealthHandler,
	static http.Handler,
	mws ...middleware.Middleware,
) http.Handler {
	r := chi.NewRouter()
	r.Use(mws...)

	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	r.Route(apiPrefix, func(api chi.Router) {
		api.Get("/todos", todos.ListTodos)
		api.Post("/todos", todos.CreateTodo)
		api.Get("/todos/{id}", todos.GetTodo)
		api.Put("/todos/{id}", todos.UpdateTodo)
		api.Delete("/todos/{id}", todos.DeleteTodo)
	})

	r.NotFound(fallback(static))
	r.MethodNotAllowed(statusOnly(http.StatusMethodNotAllowed))

	return r
}

func fallback(static http.Handler) http.HandlerFunc {
	notFound := statusOnly(http.StatusNotFound)
	if static == nil {
		return notFound
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if p := r.URL.Path; p == apiPrefix || strings.HasPrefix(p, apiPrefix+"/") {
			notFound(w, r)
			return
		}
		static.ServeHTTP(w, r)
	}
}

// statusOnly answers with status and its standard text as the error.
func statusOnly(status int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dto.WriteError(w, r, status, http.StatusText(status))
	}
}
