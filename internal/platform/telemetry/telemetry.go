// Package telemetry sets up OpenTelemetry tracing and metrics for the todo
// API. Spans and measurements go to stdout in development or to an
// OTLP/HTTP collector in production.
//
// cmd/server wires it as:
//
//	providers, err := telemetry.Setup(ctx, cfg.Telemetry, "github.com/jsamuelsen11/todo-api")
//	defer providers.Shutdown(ctx)
//
// Metrics carries the instruments shared by the HTTP middleware, the
// guarded datasource and the remote store's HTTP client.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.39.0"
)

// Supported exporter names.
const (
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"
)

// InitTracer installs a batching TracerProvider for serviceName as the
// global provider, along with W3C trace-context and baggage propagation.
// exporter is ExporterStdout or ExporterOTLP; endpoint is only read for
// OTLP. The caller shuts the provider down on exit.
func InitTracer(ctx context.Context, serviceName, exporter, endpoint string) (*sdktrace.TracerProvider, error) {
	res, err := newResource(serviceName)
	if err != nil {
		return nil, err
	}
	spans, err := newSpanExporter(ctx, exporter, endpoint)
	if err != nil {
		return nil, fmt.Errorf("span exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.AlwaysSample())),
		sdktrace.WithBatcher(spans),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	return tp, nil
}

// InitMeter installs a MeterProvider that pushes to exporter on the SDK's
// default interval as the global provider. The caller shuts it down on exit.
func InitMeter(ctx context.Context, serviceName, exporter, endpoint string) (*sdkmetric.MeterProvider, error) {
	res, err := newResource(serviceName)
	if err != nil {
		return nil, err
	}
	measurements, err := newMetricExporter(ctx, exporter, endpoint)
	if err != nil {
		return nil, fmt.Errorf("metric exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(measurements)),
	)
	otel.SetMeterProvider(mp)
	return mp, nil
}

func newResource(serviceName string) (*resource.Resource, error) {
	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(serviceName),
	))
	if err != nil {
		return nil, fmt.Errorf("building %s resource: %w", serviceName, err)
	}
	return res, nil
}
