package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/todo-api/internal/adapters/http/dto"
	"github.com/jsamuelsen11/todo-api/internal/domain/todo"
	"github.com/jsamuelsen11/todo-api/internal/platform/logging"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

func pathID(r *http.Request) (int64, error) {
	return todo.ParseID(chi.URLParam(r, "id"))
}

// respond writes v as a JSON body with status. Once the header is out an
// encoding failure can only be logged.
func respond(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.FromContext(r.Context()).WarnContext(r.Context(), "writing response body failed",
			slog.Int("status", status),
			slog.Any("error", err),
		)
	}
}

// readJSON decodes the request body into dst. A missing body leaves dst
// zero so field checks report what is absent. Anything that is not a JSON
// value of dst's shape, or exceeds maxBodyBytes, is answered with 400 and
// reported as false.
func readJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	dto.WriteError(w, r, http.StatusBadRequest, dto.MsgInvalidJSON)
	return false
}
