package middleware

import (
	"log/slog"
	"maps"
	"net/http"
	"slices"
	"strings"

	"github.com/jsamuelsen11/todo-api/internal/platform/logging"
)

const redacted = "[REDACTED]"

// RedactHeaders flattens headers into log attributes sorted by name.
// Values of logging.SensitiveHeaders are masked and repeated values are
// comma-joined.
func RedactHeaders(headers http.Header) []slog.Attr {
	attrs := make([]slog.Attr, 0, len(headers))
	for _, name := range slices.Sorted(maps.Keys(headers)) {
		value := redacted
		if !logging.SensitiveHeaders[strings.ToLower(name)] {
			value = strings.Join(headers[name], ",")
		}
		attrs = append(attrs, slog.String(name, value))
	}
	return attrs
}
