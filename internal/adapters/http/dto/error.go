package dto

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jsamuelsen11/todo-api/internal/domain"
	"github.com/jsamuelsen11/todo-api/internal/platform/logging"
)

// Client-facing messages for failures whose cause must not leak.
const (
	MsgInternal    = "internal server error"
	MsgUnavailable = "service unavailable"
	MsgInvalidJSON = "Invalid JSON body"
)

// ErrorResponse is the envelope written for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewErrorResponse maps a domain error to an HTTP status and envelope.
//
// Validation and not-found errors carry their own message. Storage faults and
// unknown errors are reported as a generic 500 so internals stay private.
func NewErrorResponse(err error) (int, ErrorResponse) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest, ErrorResponse{Error: verr.Message}
	}

	var nf *domain.NotFoundError
	if errors.As(err, &nf) {
		return http.StatusNotFound, ErrorResponse{Error: nf.Error()}
	}

	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, ErrorResponse{Error: err.Error()}
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, ErrorResponse{Error: err.Error()}
	case errors.Is(err, domain.ErrUnavailable):
		return http.StatusServiceUnavailable, ErrorResponse{Error: MsgUnavailable}
	default:
		return http.StatusInternalServerError, ErrorResponse{Error: MsgInternal}
	}
}

// WriteErrorResponse writes the error envelope for a domain error. Server-side
// failures are logged with the full error chain.
func WriteErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := NewErrorResponse(err)

	if status >= http.StatusInternalServerError {
		logging.FromContext(r.Context()).ErrorContext(r.Context(), "request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", status),
			slog.Any("error", err),
		)
	}

	WriteError(w, r, status, resp.Error)
}

// WriteError writes the error envelope with an explicit status and message.
func WriteError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if encErr := json.NewEncoder(w).Encode(ErrorResponse{Error: msg}); encErr != nil {
		logging.FromContext(r.Context()).WarnContext(r.Context(), "writing error body failed",
			slog.Any("error", encErr),
		)
	}
}
