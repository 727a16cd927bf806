package telemetry

import (
	"context"
	"errors"
	"fmt"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/jsamuelsen11/todo-api/internal/platform/config"
)

// Providers owns the SDK providers built by Setup. The zero value is a
// disabled setup: Metrics is nil and Shutdown does nothing.
type Providers struct {
	Metrics *Metrics

	tracer *sdktrace.TracerProvider
	meter  *sdkmetric.MeterProvider
}

// Setup installs the global tracer and meter providers described by cfg and
// registers the shared instruments under scope. A disabled cfg returns an
// empty Providers so callers never branch on it.
func Setup(ctx context.Context, cfg config.TelemetryConfig, scope string) (*Providers, error) {
	if !cfg.Enabled {
		return &Providers{}, nil
	}

	p := &Providers{}
	var err error

	if p.tracer, err = InitTracer(ctx, cfg.ServiceName, cfg.Exporter, cfg.Endpoint); err != nil {
		return nil, fmt.Errorf("tracer: %w", err)
	}
	if p.meter, err = InitMeter(ctx, cfg.ServiceName, cfg.Exporter, cfg.Endpoint); err != nil {
		return nil, errors.Join(fmt.Errorf("meter: %w", err), p.Shutdown(ctx))
	}
	if p.Metrics, err = NewMetrics(p.meter, scope); err != nil {
		return nil, errors.Join(fmt.Errorf("instruments: %w", err), p.Shutdown(ctx))
	}
	return p, nil
}

// Shutdown flushes pending spans and measurements. Nil-safe.
func (p *Providers) Shutdown(ctx context.Context) error {
	if p == nil {
		return nil
	}

	var errs []error
	if p.tracer != nil {
		if err := p.tracer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
		}
	}
	if p.meter != nil {
		if err := p.meter.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter shutdown: %w", err))
		}
	}
	return errors.Join(errs...)
}
