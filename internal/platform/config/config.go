// Package config holds the todo API settings. Load merges built-in defaults,
// configs/base.yaml, the profile file named by APP_PROFILE and APP_*
// environment variables, in that order, and validates the result.
package config

import "time"

// Store drivers.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverRemote   = "remote"
)

// Config is the fully merged configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Log       LogConfig       `koanf:"log"`
	Store     StoreConfig     `koanf:"store"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host         string        `koanf:"host"`
	Port         int           `koanf:"port"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	IdleTimeout  time.Duration `koanf:"idle_timeout"`

	// RequestTimeout bounds handler execution. Keep it below WriteTimeout
	// so the timeout response still reaches the client.
	RequestTimeout     time.Duration `koanf:"request_timeout"`
	HealthCheckTimeout time.Duration `koanf:"health_check_timeout"`

	// PublicPath is the directory of the single-page app served for
	// unmatched non-API routes. Empty disables static serving.
	PublicPath string `koanf:"public_path"`

	// AllowedOrigins enables CORS for browser clients served from other
	// origins. Empty disables CORS handling.
	AllowedOrigins []string `koanf:"allowed_origins"`
}

// LogConfig holds structured logging settings.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// StoreConfig selects and configures the todo datasource.
type StoreConfig struct {
	Driver         string               `koanf:"driver"`
	Postgres       PostgresConfig       `koanf:"postgres"`
	SQLite         SQLiteConfig         `koanf:"sqlite"`
	Remote         RemoteConfig         `koanf:"remote"`
	CircuitBreaker CircuitBreakerConfig `koanf:"circuit_breaker"`
}

// PostgresConfig holds pgx pool settings.
type PostgresConfig struct {
	DSN          string `koanf:"dsn"`
	MaxConns     int32  `koanf:"max_conns"`
	EnsureSchema bool   `koanf:"ensure_schema"`
}

// SQLiteConfig holds the embedded database location.
type SQLiteConfig struct {
	Path string `koanf:"path"`
}

// RemoteConfig points the remote driver at another todo API. The circuit
// breaker in front of every driver also covers this one.
type RemoteConfig struct {
	BaseURL    string          `koanf:"base_url"`
	Timeout    time.Duration   `koanf:"timeout"`
	HealthPath string          `koanf:"health_path"`
	Retry      RetryConfig     `koanf:"retry"`
	RateLimit  RateLimitConfig `koanf:"rate_limit"`
}

// RetryConfig holds retry policy settings with exponential backoff.
type RetryConfig struct {
	MaxAttempts     int           `koanf:"max_attempts"`
	InitialInterval time.Duration `koanf:"initial_interval"`
	MaxInterval     time.Duration `koanf:"max_interval"`
	Multiplier      float64       `koanf:"multiplier"`
}

// RateLimitConfig holds token bucket settings for outbound requests.
// A zero RequestsPerSecond disables rate limiting.
type RateLimitConfig struct {
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	BurstSize         int     `koanf:"burst_size"`
}

// CircuitBreakerConfig holds circuit breaker settings.
type CircuitBreakerConfig struct {
	MaxFailures   int           `koanf:"max_failures"`
	Timeout       time.Duration `koanf:"timeout"`
	HalfOpenLimit int           `koanf:"half_open_limit"`
}

// TelemetryConfig holds OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled     bool   `koanf:"enabled"`
	Exporter    string `koanf:"exporter"`
	Endpoint    string `koanf:"endpoint"`
	ServiceName string `koanf:"service_name"`
}
