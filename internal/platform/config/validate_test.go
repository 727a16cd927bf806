package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/todo-api/internal/platform/config"
)

// validConfig mirrors configs/base.yaml.
func validConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:               "0.0.0.0",
			Port:               8080,
			ReadTimeout:        5 * time.Second,
			WriteTimeout:       10 * time.Second,
			IdleTimeout:        120 * time.Second,
			RequestTimeout:     8 * time.Second,
			HealthCheckTimeout: 2 * time.Second,
		},
		Log: config.LogConfig{Level: "info", Format: "json"},
		Store: config.StoreConfig{
			Driver: config.DriverMemory,
			SQLite: config.SQLiteConfig{Path: "data/todos.db"},
			Remote: config.RemoteConfig{
				Timeout:    10 * time.Second,
				HealthPath: "/health/live",
				Retry: config.RetryConfig{
					MaxAttempts:     3,
					InitialInterval: 100 * time.Millisecond,
					MaxInterval:     2 * time.Second,
					Multiplier:      2.0,
				},
				RateLimit: config.RateLimitConfig{BurstSize: 10},
			},
			CircuitBreaker: config.CircuitBreakerConfig{
				MaxFailures:   5,
				Timeout:       30 * time.Second,
				HalfOpenLimit: 1,
			},
		},
		Telemetry: config.TelemetryConfig{Exporter: "stdout"},
	}
}

func withRemote(s *config.StoreConfig) {
	s.Driver = config.DriverRemote
	s.Remote.BaseURL = "http://todos.internal:8080"
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*config.Config) {}},
		{name: "port zero", mutate: func(c *config.Config) { c.Server.Port = 0 }, wantErr: "server.port"},
		{name: "port too high", mutate: func(c *config.Config) { c.Server.Port = 70000 }, wantErr: "server.port"},
		{name: "zero request timeout", mutate: func(c *config.Config) { c.Server.RequestTimeout = 0 }, wantErr: "server.request_timeout"},
		{name: "zero health timeout", mutate: func(c *config.Config) { c.Server.HealthCheckTimeout = 0 }, wantErr: "server.health_check_timeout"},
		{name: "unknown log level", mutate: func(c *config.Config) { c.Log.Level = "verbose" }, wantErr: "log.level"},
		{name: "unknown log format", mutate: func(c *config.Config) { c.Log.Format = "xml" }, wantErr: "log.format"},
		{
			name: "postgres with dsn",
			mutate: func(c *config.Config) {
				c.Store.Driver = config.DriverPostgres
				c.Store.Postgres.DSN = "postgres://localhost/todo"
			},
		},
		{name: "postgres without dsn", mutate: func(c *config.Config) { c.Store.Driver = config.DriverPostgres }, wantErr: "store.postgres.dsn"},
		{
			name: "sqlite without path",
			mutate: func(c *config.Config) {
				c.Store.Driver = config.DriverSQLite
				c.Store.SQLite.Path = ""
			},
			wantErr: "store.sqlite.path",
		},
		{name: "remote with base url", mutate: func(c *config.Config) { withRemote(&c.Store) }},
		{name: "remote without base url", mutate: func(c *config.Config) { c.Store.Driver = config.DriverRemote }, wantErr: "store.remote.base_url"},
		{
			name: "remote relative base url",
			mutate: func(c *config.Config) {
				withRemote(&c.Store)
				c.Store.Remote.BaseURL = "todos.internal"
			},
			wantErr: "absolute URL",
		},
		{
			name: "remote zero attempts",
			mutate: func(c *config.Config) {
				withRemote(&c.Store)
				c.Store.Remote.Retry.MaxAttempts = 0
			},
			wantErr: "store.remote.retry.max_attempts",
		},
		{
			name: "remote rate limit without burst",
			mutate: func(c *config.Config) {
				withRemote(&c.Store)
				c.Store.Remote.RateLimit = config.RateLimitConfig{RequestsPerSecond: 5}
			},
			wantErr: "store.remote.rate_limit.burst_size",
		},
		{name: "unknown driver", mutate: func(c *config.Config) { c.Store.Driver = "mongo" }, wantErr: "store.driver"},
		{name: "zero breaker failures", mutate: func(c *config.Config) { c.Store.CircuitBreaker.MaxFailures = 0 }, wantErr: "store.circuit_breaker.max_failures"},
		{
			name: "otlp without endpoint",
			mutate: func(c *config.Config) {
				c.Telemetry.Enabled = true
				c.Telemetry.Exporter = "otlp"
			},
			wantErr: "telemetry.endpoint",
		},
		{
			name: "bad exporter ignored when disabled",
			mutate: func(c *config.Config) { c.Telemetry.Exporter = "zipkin" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_JoinsErrors(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Server.Port = 0
	cfg.Log.Level = "loud"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.port")
	assert.Contains(t, err.Error(), "log.level")
}
