package handlers

import (
	"log/slog"
	"net/http"

	"github.com/jsamuelsen11/todo-api/internal/adapters/http/dto"
	"github.com/jsamuelsen11/todo-api/internal/platform/logging"
	"github.com/jsamuelsen11/todo-api/internal/ports"
)

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	registry ports.HealthRegistry
}

// NewHealthHandler creates a HealthHandler backed by registry.
func NewHealthHandler(registry ports.HealthRegistry) *HealthHandler {
	return &HealthHandler{registry: registry}
}

// Liveness handles GET /health/live. The process answering is the check.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	respond(w, r, http.StatusOK, dto.HealthResponse{Status: dto.HealthOK})
}

// Readiness handles GET /health/ready: 200 when the store and its breaker
// pass their checks, 503 otherwise. Failure details go to the log only.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	results := h.registry.CheckAll(r.Context())

	resp, healthy := dto.NewReadinessResponse(results)
	if healthy {
		respond(w, r, http.StatusOK, resp)
		return
	}

	logger := logging.FromContext(r.Context())
	for name, err := range results {
		if err != nil {
			logger.WarnContext(r.Context(), "readiness check failed",
				slog.String("checker", name),
				slog.Any("error", err),
			)
		}
	}
	respond(w, r, http.StatusServiceUnavailable, resp)
}
