package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
)

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"json", "text"}
	drivers    = []string{DriverMemory, DriverPostgres, DriverSQLite, DriverRemote}
	exporters  = []string{"stdout", "otlp"}
)

// problems collects every invalid setting so one run reports all of them.
type problems []error

func (p *problems) check(ok bool, format string, args ...any) {
	if !ok {
		*p = append(*p, fmt.Errorf(format, args...))
	}
}

func (p *problems) oneOf(key, got string, allowed []string) {
	p.check(slices.Contains(allowed, got), "%s must be one of %v, got %q", key, allowed, got)
}

// Validate reports every invalid setting, joined into one error.
func (c *Config) Validate() error {
	var p problems
	c.Server.validate(&p)
	c.Log.validate(&p)
	c.Store.validate(&p)
	c.Telemetry.validate(&p)
	return errors.Join(p...)
}

func (s *ServerConfig) validate(p *problems) {
	p.check(s.Port >= 1 && s.Port <= 65535, "server.port must be in 1..65535, got %d", s.Port)
	p.check(s.ReadTimeout > 0, "server.read_timeout must be positive")
	p.check(s.WriteTimeout > 0, "server.write_timeout must be positive")
	p.check(s.RequestTimeout > 0, "server.request_timeout must be positive")
	p.check(s.HealthCheckTimeout > 0, "server.health_check_timeout must be positive")
}

func (l *LogConfig) validate(p *problems) {
	p.oneOf("log.level", l.Level, logLevels)
	p.oneOf("log.format", l.Format, logFormats)
}

func (st *StoreConfig) validate(p *problems) {
	p.oneOf("store.driver", st.Driver, drivers)

	switch st.Driver {
	case DriverPostgres:
		p.check(st.Postgres.DSN != "", "store.postgres.dsn is required for the postgres driver")
		p.check(st.Postgres.MaxConns >= 0, "store.postgres.max_conns must be >= 0, got %d", st.Postgres.MaxConns)
	case DriverSQLite:
		p.check(st.SQLite.Path != "", "store.sqlite.path is required for the sqlite driver")
	case DriverRemote:
		st.Remote.validate(p)
	}

	cb := st.CircuitBreaker
	p.check(cb.MaxFailures >= 1, "store.circuit_breaker.max_failures must be >= 1, got %d", cb.MaxFailures)
	p.check(cb.Timeout > 0, "store.circuit_breaker.timeout must be positive")
}

func (r *RemoteConfig) validate(p *problems) {
	if r.BaseURL == "" {
		p.check(false, "store.remote.base_url is required for the remote driver")
	} else {
		u, err := url.Parse(r.BaseURL)
		p.check(err == nil && u.Scheme != "" && u.Host != "",
			"store.remote.base_url must be an absolute URL, got %q", r.BaseURL)
	}
	p.check(r.Timeout > 0, "store.remote.timeout must be positive")

	p.check(r.Retry.MaxAttempts >= 1, "store.remote.retry.max_attempts must be >= 1, got %d", r.Retry.MaxAttempts)
	p.check(r.Retry.InitialInterval > 0, "store.remote.retry.initial_interval must be positive")
	p.check(r.Retry.Multiplier >= 1, "store.remote.retry.multiplier must be >= 1, got %v", r.Retry.Multiplier)

	rl := r.RateLimit
	p.check(rl.RequestsPerSecond >= 0,
		"store.remote.rate_limit.requests_per_second must be >= 0, got %v", rl.RequestsPerSecond)
	p.check(rl.RequestsPerSecond == 0 || rl.BurstSize >= 1,
		"store.remote.rate_limit.burst_size must be >= 1 when rate limiting, got %d", rl.BurstSize)
}

// validate only inspects exporter settings when telemetry is enabled.
func (t *TelemetryConfig) validate(p *problems) {
	if !t.Enabled {
		return
	}
	p.oneOf("telemetry.exporter", t.Exporter, exporters)
	p.check(t.Exporter != "otlp" || t.Endpoint != "", "telemetry.endpoint is required for the otlp exporter")
}
