// Package health runs the readiness checks. The store and the breaker in
// front of it register at startup; every readiness probe checks them all
// at once, each under its own deadline.
package health

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/jsamuelsen11/todo-api/internal/ports"
)

var _ ports.HealthRegistry = (*Registry)(nil)

// DefaultCheckTimeout is the per-checker deadline unless WithCheckTimeout
// says otherwise.
const DefaultCheckTimeout = 2 * time.Second

// Option adjusts a Registry.
type Option func(*Registry)

// WithCheckTimeout sets the per-checker deadline. d <= 0 is ignored.
func WithCheckTimeout(d time.Duration) Option {
	return func(r *Registry) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// Registry holds the readiness checkers. It is safe for concurrent use.
type Registry struct {
	timeout time.Duration

	mu       sync.RWMutex
	checkers []ports.HealthChecker
}

// New returns an empty Registry.
func New(opts ...Option) *Registry {
	r := &Registry{timeout: DefaultCheckTimeout}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds checker to every later CheckAll.
func (r *Registry) Register(checker ports.HealthChecker) {
	r.mu.Lock()
	r.checkers = append(r.checkers, checker)
	r.mu.Unlock()
}

// CheckAll runs the registered checkers in parallel and maps each name to
// its result, nil meaning healthy. A slow checker fails with
// context.DeadlineExceeded instead of holding up the probe. If two checkers
// share a name, the later registration's result is kept.
func (r *Registry) CheckAll(ctx context.Context) map[string]error {
	r.mu.RLock()
	checkers := slices.Clone(r.checkers)
	r.mu.RUnlock()

	errs := make([]error, len(checkers))
	var wg sync.WaitGroup
	for i, c := range checkers {
		wg.Go(func() {
			checkCtx, cancel := context.WithTimeout(ctx, r.timeout)
			defer cancel()
			errs[i] = c.HealthCheck(checkCtx)
		})
	}
	wg.Wait()

	results := make(map[string]error, len(checkers))
	for i, c := range checkers {
		results[c.Name()] = errs[i]
	}
	return results
}
