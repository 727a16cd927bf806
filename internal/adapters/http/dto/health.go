package dto

// Probe states reported by the health endpoints.
const (
	HealthOK       = "ok"
	HealthReady    = "ready"
	HealthNotReady = "not_ready"
	// HealthFailing replaces a checker's error text, which may name hosts or
	// credentials, in readiness responses.
	HealthFailing = "unavailable"
)

// HealthResponse is the body of /health/live and /health/ready. Checks is
// only present on readiness and maps checker name to HealthOK or
// HealthFailing.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// NewReadinessResponse folds checker results into a readiness body and
// reports whether every checker passed.
func NewReadinessResponse(results map[string]error) (HealthResponse, bool) {
	resp := HealthResponse{Status: HealthReady, Checks: make(map[string]string, len(results))}
	healthy := true
	for name, err := range results {
		if err != nil {
			resp.Checks[name] = HealthFailing
			healthy = false
			continue
		}
		resp.Checks[name] = HealthOK
	}
	if !healthy {
		resp.Status = HealthNotReady
	}
	return resp, healthy
}
