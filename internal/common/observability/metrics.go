package observability

import (
	"context"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"

	"quickload-admin/internal/common/logger"
)

// Observability records data-hook lifecycle outcomes through an OpenTelemetry
// meter exported in Prometheus format. A zero value is safe to use and
// records nothing.
type Observability struct {
	meterProvider *metric.MeterProvider
	meter         otelmetric.Meter
	fetchCounter  otelmetric.Int64Counter
	fetchDuration otelmetric.Float64Histogram
	mutations     otelmetric.Int64Counter
}

// New registers the exporter with the default Prometheus registerer.
func New(serviceName string, log logger.Logger) *Observability {
	return NewWithRegisterer(serviceName, promclient.DefaultRegisterer, log)
}

func NewWithRegisterer(serviceName string, reg promclient.Registerer, log logger.Logger) *Observability {
	exporter, err := prometheus.New(prometheus.WithRegisterer(reg))
	if err != nil {
		log.Warn("failed to create prometheus exporter", map[string]interface{}{"error": err})
		return &Observability{}
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	fetchCounter, _ := meter.Int64Counter(
		"hooks.fetch",
		otelmetric.WithDescription("Number of resource fetches by outcome"),
	)

	fetchDuration, _ := meter.Float64Histogram(
		"hooks.fetch.duration",
		otelmetric.WithDescription("Resource fetch duration"),
		otelmetric.WithUnit("ms"),
	)

	mutations, _ := meter.Int64Counter(
		"hooks.mutation",
		otelmetric.WithDescription("Number of mutations by outcome"),
	)

	return &Observability{
		meterProvider: provider,
		meter:         meter,
		fetchCounter:  fetchCounter,
		fetchDuration: fetchDuration,
		mutations:     mutations,
	}
}

// RecordFetch records one fetch outcome (success, error or discarded).
func (o *Observability) RecordFetch(ctx context.Context, resource, status string, duration time.Duration) {
	if o == nil {
		return
	}
	attrs := otelmetric.WithAttributes(
		attribute.String("resource", resource),
		attribute.String("status", status),
	)
	if o.fetchCounter != nil {
		o.fetchCounter.Add(ctx, 1, attrs)
	}
	if o.fetchDuration != nil {
		o.fetchDuration.Record(ctx, float64(duration.Milliseconds()), attrs)
	}
}

func (o *Observability) RecordMutation(ctx context.Context, operation, status string) {
	if o == nil || o.mutations == nil {
		return
	}
	o.mutations.Add(ctx, 1, otelmetric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("status", status),
	))
}

func (o *Observability) Shutdown() {
	if o != nil && o.meterProvider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = o.meterProvider.Shutdown(ctx)
	}
}
