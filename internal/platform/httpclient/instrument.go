package httpclient

import (
	"context"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen11/todo-api/internal/platform/telemetry"
)

const tracerName = "httpclient"

// startSpan opens a client span named "HTTP <method> <service>" and writes
// its W3C trace context into the outbound headers.
func (c *Client) startSpan(ctx context.Context, req *http.Request) (context.Context, trace.Span) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "HTTP "+req.Method+" "+c.serviceName,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			telemetry.AttrHTTPMethod.String(req.Method),
			attribute.String("http.url", req.URL.String()),
			telemetry.AttrPeerService.String(c.serviceName),
		),
	)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))
	return ctx, span
}

func endSpan(span trace.Span, resp *http.Response, err error) {
	defer span.End()

	if resp != nil {
		span.SetAttributes(telemetry.AttrHTTPStatus.Int(resp.StatusCode))
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// recordMetrics counts the call and its latency. A call succeeds when it
// returned no error and a status below 400. Status 0 means no response.
func (c *Client) recordMetrics(ctx context.Context, method string, start time.Time, resp *http.Response, err error) {
	if c.metrics == nil {
		return
	}

	status, result := 0, "error"
	if resp != nil {
		status = resp.StatusCode
		if err == nil && status < http.StatusBadRequest {
			result = "success"
		}
	}

	attrs := metric.WithAttributes(
		telemetry.AttrHTTPMethod.String(method),
		telemetry.AttrHTTPStatus.Int(status),
		telemetry.AttrPeerService.String(c.serviceName),
		telemetry.AttrResult.String(result),
	)
	c.metrics.ClientRequestDuration.Record(ctx, time.Since(start).Seconds(), attrs)
	c.metrics.ClientRequestTotal.Add(ctx, 1, attrs)
}
