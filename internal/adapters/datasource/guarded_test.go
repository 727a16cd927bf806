package datasource_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/mock"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/jsamuelsen11/todo-api/internal/adapters/datasource"
	"github.com/jsamuelsen11/todo-api/internal/adapters/datasource/datasourcetest"
	"github.com/jsamuelsen11/todo-api/internal/adapters/datasource/memory"
	"github.com/jsamuelsen11/todo-api/internal/domain"
	"github.com/jsamuelsen11/todo-api/internal/domain/todo"
	"github.com/jsamuelsen11/todo-api/internal/platform/config"
	"github.com/jsamuelsen11/todo-api/internal/platform/telemetry"
	"github.com/jsamuelsen11/todo-api/internal/ports"
	"github.com/jsamuelsen11/todo-api/mocks"
)

func testBreakerConfig() *config.CircuitBreakerConfig {
	return &config.CircuitBreakerConfig{
		MaxFailures:   3,
		Timeout:       1 * time.Second,
		HalfOpenLimit: 1,
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func storageErr() error {
	return domain.StorageFailure("find todo", io.ErrUnexpectedEOF)
}

func TestGuarded_Contract(t *testing.T) {
	t.Parallel()

	datasourcetest.Run(t, func(t *testing.T) ports.TodoDatasource {
		t.Helper()
		return datasource.NewGuarded(memory.New(), "memory", testBreakerConfig(), nil, testLogger())
	})
}

func TestGuarded_PassesThrough(t *testing.T) {
	t.Parallel()

	want := &todo.Todo{ID: 4, Text: "Buy milk"}
	inner := mocks.NewMockTodoDatasource(t)
	inner.EXPECT().FindByID(mock.Anything, int64(4)).Return(want, nil)

	g := datasource.NewGuarded(inner, "memory", testBreakerConfig(), nil, testLogger())

	got, err := g.FindByID(context.Background(), 4)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if got != want {
		t.Errorf("FindByID() = %+v, want %+v", got, want)
	}
}

func TestGuarded_NotFoundDoesNotTrip(t *testing.T) {
	t.Parallel()

	inner := mocks.NewMockTodoDatasource(t)
	inner.EXPECT().DeleteByID(mock.Anything, int64(9)).Return(nil, &domain.NotFoundError{ID: 9}).Times(3)

	cfg := testBreakerConfig()
	cfg.MaxFailures = 1
	g := datasource.NewGuarded(inner, "memory", cfg, nil, testLogger())

	for range 3 {
		_, err := g.DeleteByID(context.Background(), 9)
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("DeleteByID() error = %v, want ErrNotFound", err)
		}
	}
	if err := g.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck() = %v, want nil", err)
	}
}

func TestGuarded_CanceledDoesNotTrip(t *testing.T) {
	t.Parallel()

	canceled := domain.StorageFailure("list todos", context.Canceled)
	inner := mocks.NewMockTodoDatasource(t)
	inner.EXPECT().GetAll(mock.Anything).Return(nil, canceled).Times(2)

	cfg := testBreakerConfig()
	cfg.MaxFailures = 1
	g := datasource.NewGuarded(inner, "postgres", cfg, nil, testLogger())

	for range 2 {
		if _, err := g.GetAll(context.Background()); !errors.Is(err, context.Canceled) {
			t.Fatalf("GetAll() error = %v, want context.Canceled", err)
		}
	}
}

func TestGuarded_CircuitBreakerOpens(t *testing.T) {
	t.Parallel()

	inner := mocks.NewMockTodoDatasource(t)
	inner.EXPECT().GetAll(mock.Anything).Return(nil, storageErr()).Once()

	cfg := testBreakerConfig()
	cfg.MaxFailures = 1
	g := datasource.NewGuarded(inner, "postgres", cfg, nil, testLogger())

	if _, err := g.GetAll(context.Background()); !errors.Is(err, domain.ErrStorage) {
		t.Fatalf("GetAll() error = %v, want ErrStorage", err)
	}

	// The inner datasource must not be hit again while open.
	_, err := g.GetAll(context.Background())
	if !errors.Is(err, domain.ErrUnavailable) {
		t.Errorf("error = %v, want ErrUnavailable", err)
	}
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("error = %v, want gobreaker.ErrOpenState in chain", err)
	}

	hcErr := g.HealthCheck(context.Background())
	if hcErr == nil || !strings.Contains(hcErr.Error(), "failing") {
		t.Errorf("HealthCheck() = %v, want error containing %q", hcErr, "failing")
	}
}

func TestGuarded_CircuitBreakerRecovery(t *testing.T) {
	t.Parallel()

	inner := mocks.NewMockTodoDatasource(t)
	inner.EXPECT().GetAll(mock.Anything).Return(nil, storageErr()).Once()

	cfg := testBreakerConfig()
	cfg.MaxFailures = 1
	cfg.Timeout = 100 * time.Millisecond
	g := datasource.NewGuarded(inner, "postgres", cfg, nil, testLogger())

	_, _ = g.GetAll(context.Background())

	// Wait for the breaker timeout so it transitions to half-open.
	time.Sleep(150 * time.Millisecond)

	hcErr := g.HealthCheck(context.Background())
	if hcErr == nil || !strings.Contains(hcErr.Error(), "degraded") {
		t.Errorf("HealthCheck() = %v, want error containing %q", hcErr, "degraded")
	}

	inner.EXPECT().GetAll(mock.Anything).Return([]todo.Todo{}, nil).Once()

	if _, err := g.GetAll(context.Background()); err != nil {
		t.Fatalf("GetAll() error = %v, want nil (circuit should recover)", err)
	}
	if err := g.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck() = %v, want nil after recovery", err)
	}
}

func TestGuarded_Name(t *testing.T) {
	t.Parallel()

	g := datasource.NewGuarded(memory.New(), "memory", testBreakerConfig(), nil, testLogger())

	if got := g.Name(); got != "store-breaker" {
		t.Errorf("Name() = %q, want %q", got, "store-breaker")
	}
}

func TestGuarded_RecordsMetrics(t *testing.T) {
	t.Parallel()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	metrics, err := telemetry.NewMetrics(mp, "test")
	if err != nil {
		t.Fatalf("NewMetrics() error = %v", err)
	}

	inner := mocks.NewMockTodoDatasource(t)
	inner.EXPECT().FindByID(mock.Anything, int64(1)).Return(&todo.Todo{ID: 1, Text: "a"}, nil).Once()
	inner.EXPECT().FindByID(mock.Anything, int64(2)).Return(nil, &domain.NotFoundError{ID: 2}).Once()

	g := datasource.NewGuarded(inner, "memory", testBreakerConfig(), metrics, testLogger())

	_, _ = g.FindByID(context.Background(), 1)
	_, _ = g.FindByID(context.Background(), 2)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	counts := storeTotals(t, rm)
	if counts["success"] != 1 {
		t.Errorf("success count = %d, want 1", counts["success"])
	}
	if counts["not_found"] != 1 {
		t.Errorf("not_found count = %d, want 1", counts["not_found"])
	}
}

// storeTotals sums store.operation.total data points by result attribute.
func storeTotals(t *testing.T, rm metricdata.ResourceMetrics) map[string]int64 {
	t.Helper()

	out := make(map[string]int64)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "store.operation.total" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				t.Fatalf("store.operation.total data = %T, want Sum[int64]", m.Data)
			}
			for _, dp := range sum.DataPoints {
				result, _ := dp.Attributes.Value(attribute.Key("result"))
				out[result.AsString()] += dp.Value
			}
		}
	}
	return out
}
