package telemetry

import (
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Attribute keys used on spans and as metric labels.
var (
	AttrHTTPMethod  = attribute.Key("http.method")
	AttrHTTPStatus  = attribute.Key("http.status_code")
	AttrDBSystem    = attribute.Key("db.system")
	AttrDBOperation = attribute.Key("db.operation")
	AttrPeerService = attribute.Key("peer.service")
	AttrResult      = attribute.Key("result")
)

// Metrics holds the instruments shared by the HTTP middleware, the guarded
// datasource and the remote store's client. Durations are in seconds.
type Metrics struct {
	ServerRequestDuration  metric.Float64Histogram
	ServerRequestTotal     metric.Int64Counter
	StoreOperationDuration metric.Float64Histogram
	StoreOperationTotal    metric.Int64Counter
	ClientRequestDuration  metric.Float64Histogram
	ClientRequestTotal     metric.Int64Counter
}

// NewMetrics registers every instrument on mp's meter for scope.
func NewMetrics(mp metric.MeterProvider, scope string) (*Metrics, error) {
	meter := mp.Meter(scope)
	m := new(Metrics)
	var errs []error

	seconds := func(dst *metric.Float64Histogram, name, desc string) {
		h, err := meter.Float64Histogram(name, metric.WithDescription(desc), metric.WithUnit("s"))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
		*dst = h
	}
	count := func(dst *metric.Int64Counter, name, desc, unit string) {
		c, err := meter.Int64Counter(name, metric.WithDescription(desc), metric.WithUnit(unit))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
		*dst = c
	}

	seconds(&m.ServerRequestDuration, "http.server.request.duration", "Time to answer a todo API request")
	count(&m.ServerRequestTotal, "http.server.request.total", "Todo API requests answered", "{request}")
	seconds(&m.StoreOperationDuration, "store.operation.duration", "Time spent in the todo store per call")
	count(&m.StoreOperationTotal, "store.operation.total", "Calls made to the todo store", "{operation}")
	seconds(&m.ClientRequestDuration, "http.client.request.duration", "Time for a call to the remote todo API")
	count(&m.ClientRequestTotal, "http.client.request.total", "Calls made to the remote todo API", "{request}")

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("registering instruments: %w", err)
	}
	return m, nil
}
