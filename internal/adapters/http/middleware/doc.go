// Package middleware holds the inbound HTTP pipeline wrapped around the todo
// router. cmd/server installs it in this order:
//
//	Recovery → CORS → RequestID → CorrelationID → OpenTelemetry → Logging → Timeout → Handler
//
// Recovery stays outermost so that a panic anywhere below it, including one
// raised on the Timeout goroutine, still ends as a JSON 500.
package middleware
