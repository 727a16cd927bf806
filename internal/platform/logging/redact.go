package logging

import (
	"log/slog"
	"regexp"

	"github.com/m-mizutani/masq"
)

// SensitiveHeaders lists header names (lowercase) whose values never reach
// the log. The HTTP middleware masks them in header dumps and the handler
// masks attributes that carry the same names.
var SensitiveHeaders = map[string]bool{
	"authorization": true,
	"x-api-key":     true,
	"cookie":        true,
}

// sensitiveFields are attribute keys masked wherever they appear. "dsn" is
// the postgres connection string.
var sensitiveFields = []string{"password", "secret", "token", "dsn"}

var sensitivePrefixes = []string{"secret_", "api_key"}

// sensitiveValues catch secrets that slipped into free-form strings such as
// wrapped driver errors.
var sensitiveValues = []*regexp.Regexp{
	regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9\-._~+/]+=*`),
	// JWT: three base64url segments of at least ten characters each.
	regexp.MustCompile(`[a-zA-Z0-9\-_]{10,}\.[a-zA-Z0-9\-_]{10,}\.[a-zA-Z0-9\-_]{10,}`),
	regexp.MustCompile(`(?i)(api[_\-]?key|apikey)\s*[:=]\s*\S+`),
	// Credentials in a URL, as in postgres://todo:pass@db:5432/todo.
	regexp.MustCompile(`[a-zA-Z][a-zA-Z0-9+.\-]*://[^/\s:@]+:[^/\s@]+@`),
}

// redactor builds the masq ReplaceAttr hook installed on every handler.
func redactor() func([]string, slog.Attr) slog.Attr {
	opts := make([]masq.Option, 0,
		len(SensitiveHeaders)+len(sensitiveFields)+len(sensitivePrefixes)+len(sensitiveValues))

	for name := range SensitiveHeaders {
		opts = append(opts, masq.WithFieldName(name))
	}
	for _, name := range sensitiveFields {
		opts = append(opts, masq.WithFieldName(name))
	}
	for _, prefix := range sensitivePrefixes {
		opts = append(opts, masq.WithFieldPrefix(prefix))
	}
	for _, re := range sensitiveValues {
		opts = append(opts, masq.WithRegex(re))
	}

	return masq.New(opts...)
}
