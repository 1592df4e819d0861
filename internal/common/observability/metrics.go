package observability

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

type Observability struct {
	meterProvider *metric.MeterProvider
	meter         otelmetric.Meter
	fetchCounter  otelmetric.Int64Counter
	fetchDuration otelmetric.Float64Histogram
}

func New(serviceName string) *Observability {
	exporter, err := prometheus.New()
	if err != nil {
		log.Printf("Failed to create Prometheus exporter: %v", err)
		return &Observability{}
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	fetchCounter, _ := meter.Int64Counter(
		"fetches.completed",
		otelmetric.WithDescription("Number of entity fetches completed"),
	)

	fetchDuration, _ := meter.Float64Histogram(
		"fetches.duration",
		otelmetric.WithDescription("Entity fetch duration"),
		otelmetric.WithUnit("ms"),
	)

	return &Observability{
		meterProvider: provider,
		meter:         meter,
		fetchCounter:  fetchCounter,
		fetchDuration: fetchDuration,
	}
}

// RecordFetch records one fetch outcome for the given entity type.
func (o *Observability) RecordFetch(ctx context.Context, entity, status string, elapsed time.Duration) {
	if o.fetchCounter != nil {
		o.fetchCounter.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("entity", entity),
			attribute.String("status", status),
		))
	}
	if o.fetchDuration != nil {
		o.fetchDuration.Record(ctx, float64(elapsed.Milliseconds()), otelmetric.WithAttributes(
			attribute.String("entity", entity),
		))
	}
}

func (o *Observability) Shutdown() {
	if o.meterProvider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := o.meterProvider.Shutdown(ctx); err != nil {
			log.Printf("Failed to shut down meter provider: %v", err)
		}
	}
}
