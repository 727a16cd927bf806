package remote

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/jsamuelsen11/todo-api/internal/domain"
)

// maxErrorBodySize limits how much of an error response body we read.
const maxErrorBodySize = 1 << 20 // 1 MB

// translateHTTPError maps a downstream error response to a domain error.
// A 404 for a single-row call becomes *domain.NotFoundError for id; a 400
// becomes *domain.ValidationError carrying the downstream message. Anything
// else is a storage failure and counts against the circuit breaker.
func translateHTTPError(op string, id int64, resp *http.Response) error {
	msg := readErrorMessage(resp)
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound && id > 0:
		return &domain.NotFoundError{ID: id}

	case resp.StatusCode == http.StatusBadRequest:
		return domain.NewValidationError("", msg)

	default:
		return domain.StorageFailure(op, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, msg))
	}
}

// readErrorMessage reads the {"error": "..."} envelope. Returns an empty
// string when the body is not a JSON envelope.
func readErrorMessage(resp *http.Response) string {
	if resp.Body == nil {
		return ""
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		return ""
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	if err != nil {
		return ""
	}

	var env errorDTO
	if err := json.Unmarshal(body, &env); err != nil {
		return ""
	}
	return env.Error
}
