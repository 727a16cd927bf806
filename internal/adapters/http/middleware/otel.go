package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen11/todo-api/internal/platform/telemetry"
)

const (
	tracerName    = "github.com/jsamuelsen11/todo-api/internal/adapters/http"
	attrHTTPRoute = attribute.Key("http.route")
)

// OpenTelemetry continues the caller's W3C trace (if any) with a server
// span per request and records request count and latency on metrics.
//
// The span starts as "HTTP <method>" and is renamed to the matched chi
// pattern, e.g. "HTTP GET /api/todos/{id}", once routing is done. Requests
// no route claimed keep the bare name so raw paths never become span names.
// A nil metrics only disables the measurements.
func OpenTelemetry(metrics *telemetry.Metrics) Middleware {
	tracer := otel.Tracer(tracerName)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
			ctx, span := tracer.Start(ctx, "HTTP "+r.Method,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					telemetry.AttrHTTPMethod.String(r.Method),
					attribute.String("http.url", r.URL.String()),
				),
			)
			defer span.End()

			rec := recordResponse(w)
			next.ServeHTTP(rec, r.WithContext(ctx))

			status := rec.Status()
			route := routePattern(r)

			span.SetAttributes(
				telemetry.AttrHTTPStatus.Int(status),
				attribute.Int64("http.response.body.size", rec.BytesWritten()),
			)
			if route != "" {
				span.SetName("HTTP " + r.Method + " " + route)
				span.SetAttributes(attrHTTPRoute.String(route))
			}
			if status >= http.StatusInternalServerError {
				span.SetStatus(codes.Error, http.StatusText(status))
			}

			if metrics == nil {
				return
			}
			result := "success"
			if status >= http.StatusBadRequest {
				result = "error"
			}
			attrs := metric.WithAttributes(
				telemetry.AttrHTTPMethod.String(r.Method),
				telemetry.AttrHTTPStatus.Int(status),
				attrHTTPRoute.String(route),
				telemetry.AttrResult.String(result),
			)
			metrics.ServerRequestDuration.Record(ctx, time.Since(start).Seconds(), attrs)
			metrics.ServerRequestTotal.Add(ctx, 1, attrs)
		})
	}
}

// routePattern is the chi pattern matched for r, or "" before routing or
// when nothing matched. chi fills its route context in place, so this is
// valid once the downstream handler has returned.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		return rctx.RoutePattern()
	}
	return ""
}
