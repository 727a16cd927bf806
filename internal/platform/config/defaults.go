package config

const (
	defaultServerPort = 8080

	defaultPostgresMaxConns = 10

	defaultCircuitBreakerMaxFailures = 5
	defaultCircuitBreakerHalfOpen    = 1

	defaultRetryMaxAttempts = 3
	defaultRetryMultiplier  = 2.0
	defaultRateLimitBurst   = 10
)

// defaults returns the default configuration values.
// These are loaded first and can be overridden by base.yaml, profile YAML, and env vars.
func defaults() map[string]any {
	return map[string]any{
		"server.host":          "0.0.0.0",
		"server.port":          defaultServerPort,
		"server.read_timeout":  "5s",
		"server.write_timeout": "10s",
		"server.idle_timeout":  "120s",
		"server.public_path":   "public",

		"server.request_timeout":      "8s",
		"server.health_check_timeout": "2s",

		"log.level":  "info",
		"log.format": "json",

		"store.driver":                          DriverMemory,
		"store.postgres.dsn":                    "",
		"store.postgres.max_conns":              defaultPostgresMaxConns,
		"store.postgres.ensure_schema":          false,
		"store.sqlite.path":                     "data/todos.db",
		"store.circuit_breaker.max_failures":    defaultCircuitBreakerMaxFailures,
		"store.circuit_breaker.timeout":         "30s",
		"store.circuit_breaker.half_open_limit": defaultCircuitBreakerHalfOpen,

		"store.remote.base_url":                       "",
		"store.remote.timeout":                        "10s",
		"store.remote.health_path":                    "/health/live",
		"store.remote.retry.max_attempts":             defaultRetryMaxAttempts,
		"store.remote.retry.initial_interval":         "100ms",
		"store.remote.retry.max_interval":             "2s",
		"store.remote.retry.multiplier":               defaultRetryMultiplier,
		"store.remote.rate_limit.requests_per_second": 0,
		"store.remote.rate_limit.burst_size":          defaultRateLimitBurst,

		"telemetry.enabled":      false,
		"telemetry.exporter":     "stdout",
		"telemetry.endpoint":     "",
		"telemetry.service_name": "todo-api",
	}
}
