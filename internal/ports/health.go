package ports

import "context"

// HealthChecker is a component the readiness probe can ask about its state:
// the datasource behind the repository and the breaker guarding it.
type HealthChecker interface {
	// Name keys the checker in readiness output, e.g. "postgres" or
	// "store-breaker".
	Name() string

	// HealthCheck returns nil when the component can serve traffic. It must
	// give up when ctx is done.
	HealthCheck(ctx context.Context) error
}

// HealthRegistry collects checkers at startup and runs them per probe.
type HealthRegistry interface {
	Register(checker HealthChecker)

	// CheckAll maps each checker name to its result; nil means healthy.
	CheckAll(ctx context.Context) map[string]error
}
