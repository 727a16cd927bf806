// Package datasource wraps a physical todo store with the cross-cutting
// concerns every driver shares.
//
// Guarded applies, in order:
//
//	Circuit Breaker → OTEL Span → Datasource → Metrics
//
// Construction:
//
//	ds := datasource.NewGuarded(postgres.New(pool), "postgres", &cfg.Store.CircuitBreaker, metrics, logger)
//
// The breaker only counts storage failures. Validation and not-found results
// are ordinary answers from a healthy store.
package datasource

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen11/todo-api/internal/domain"
	"github.com/jsamuelsen11/todo-api/internal/domain/todo"
	"github.com/jsamuelsen11/todo-api/internal/platform/config"
	"github.com/jsamuelsen11/todo-api/internal/platform/telemetry"
	"github.com/jsamuelsen11/todo-api/internal/ports"
)

const breakerName = "store-breaker"

// Operation names used for spans and metric attributes.
const (
	opGetAll     = "get_all"
	opFindByID   = "find_by_id"
	opCreate     = "create"
	opUpdateByID = "update_by_id"
	opDeleteByID = "delete_by_id"
)

// Guarded is a ports.TodoDatasource decorator adding a circuit breaker,
// tracing and metrics around another datasource.
type Guarded struct {
	inner   ports.TodoDatasource
	system  string
	breaker *gobreaker.CircuitBreaker[struct{}]
	metrics *telemetry.Metrics
	logger  *slog.Logger
}

var _ ports.TodoDatasource = (*Guarded)(nil)

// NewGuarded wraps inner. The system names the backing store ("memory",
// "postgres", "sqlite", "remote") in spans and metrics. If metrics is nil,
// metric recording is skipped.
func NewGuarded(
	inner ports.TodoDatasource,
	system string,
	cfg *config.CircuitBreakerConfig,
	metrics *telemetry.Metrics,
	logger *slog.Logger,
) *Guarded {
	cb := gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: toUint32(cfg.HalfOpenLimit),
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return int(counts.ConsecutiveFailures) >= cfg.MaxFailures
		},
		IsSuccessful: isSuccessful,
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				slog.String("breaker", name),
				slog.String("store", system),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	})

	return &Guarded{
		inner:   inner,
		system:  system,
		breaker: cb,
		metrics: metrics,
		logger:  logger,
	}
}

// GetAll implements ports.TodoDatasource.
func (g *Guarded) GetAll(ctx context.Context) ([]todo.Todo, error) {
	return run(ctx, g, opGetAll, g.inner.GetAll)
}

// FindByID implements ports.TodoDatasource.
func (g *Guarded) FindByID(ctx context.Context, id int64) (*todo.Todo, error) {
	return run(ctx, g, opFindByID, func(ctx context.Context) (*todo.Todo, error) {
		return g.inner.FindByID(ctx, id)
	})
}

// Create implements ports.TodoDatasource.
func (g *Guarded) Create(ctx context.Context, dto todo.CreateTodo) (*todo.Todo, error) {
	return run(ctx, g, opCreate, func(ctx context.Context) (*todo.Todo, error) {
		return g.inner.Create(ctx, dto)
	})
}

// UpdateByID implements ports.TodoDatasource.
func (g *Guarded) UpdateByID(ctx context.Context, dto todo.UpdateTodo) (*todo.Todo, error) {
	return run(ctx, g, opUpdateByID, func(ctx context.Context) (*todo.Todo, error) {
		return g.inner.UpdateByID(ctx, dto)
	})
}

// DeleteByID implements ports.TodoDatasource.
func (g *Guarded) DeleteByID(ctx context.Context, id int64) (*todo.Todo, error) {
	return run(ctx, g, opDeleteByID, func(ctx context.Context) (*todo.Todo, error) {
		return g.inner.DeleteByID(ctx, id)
	})
}

// Name returns the health checker identifier.
func (g *Guarded) Name() string {
	return breakerName
}

// HealthCheck reports store availability from the breaker state without
// touching the store.
//
// State mapping:
//   - "closed"    returns nil.
//   - "half-open" returns an error marking the store as degraded.
//   - "open"      returns an error marking the store as failing.
func (g *Guarded) HealthCheck(_ context.Context) error {
	state := g.breaker.State()
	switch state {
	case gobreaker.StateClosed:
		return nil
	case gobreaker.StateHalfOpen:
		return fmt.Errorf("%s: degraded (circuit breaker half-open)", g.system)
	case gobreaker.StateOpen:
		return fmt.Errorf("%s: failing (circuit breaker open)", g.system)
	default:
		return fmt.Errorf("%s: unknown circuit breaker state %v", g.system, state)
	}
}

// run executes fn through the breaker inside a client span and records
// metrics for the outcome, including breaker rejections.
func run[T any](ctx context.Context, g *Guarded, op string, fn func(context.Context) (T, error)) (T, error) {
	start := time.Now()

	var out T
	_, err := g.breaker.Execute(func() (struct{}, error) {
		spanCtx, span := g.startSpan(ctx, op)
		defer span.End()

		var callErr error
		out, callErr = fn(spanCtx)
		finishSpan(span, callErr)

		return struct{}{}, callErr
	})

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		g.recordMetrics(ctx, op, start, "circuit_open")
		var zero T
		return zero, fmt.Errorf("%s %s: %w: %w", g.system, op, domain.ErrUnavailable, err)
	}

	g.recordMetrics(ctx, op, start, resultOf(err))
	return out, err
}

func (g *Guarded) startSpan(ctx context.Context, op string) (context.Context, trace.Span) {
	tracer := otel.GetTracerProvider().Tracer("datasource")

	return tracer.Start(ctx, fmt.Sprintf("%s %s", g.system, op),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", g.system),
			attribute.String("db.operation", op),
		),
	)
}

func finishSpan(span trace.Span, err error) {
	if err == nil || !isStorageFailure(err) {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// recordMetrics is safe to call with nil metrics.
func (g *Guarded) recordMetrics(ctx context.Context, op string, start time.Time, result string) {
	if g.metrics == nil {
		return
	}

	attrs := metric.WithAttributes(
		telemetry.AttrDBSystem.String(g.system),
		telemetry.AttrDBOperation.String(op),
		telemetry.AttrResult.String(result),
	)

	g.metrics.StoreOperationDuration.Record(ctx, time.Since(start).Seconds(), attrs)
	g.metrics.StoreOperationTotal.Add(ctx, 1, attrs)
}

func resultOf(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrValidation):
		return "invalid"
	default:
		return "error"
	}
}

// isSuccessful decides which outcomes count against the breaker.
func isSuccessful(err error) bool {
	return err == nil || !isStorageFailure(err)
}

// isStorageFailure reports whether err is a store fault. Requests abandoned by
// the caller are not.
func isStorageFailure(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	return errors.Is(err, domain.ErrStorage)
}

// toUint32 converts a non-negative int to uint32, clamping at the uint32
// maximum. Negative values are treated as zero.
func toUint32(v int) uint32 {
	if v <= 0 {
		return 0
	}
	if v > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(v)
}
