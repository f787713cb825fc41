// Package telemetry sets up OpenTelemetry tracing for the catalog service.
package telemetry

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Config describes the traced service and where spans are exported.
type Config struct {
	Service       string
	Version       string
	Environment   string
	CollectorAddr string
}

var globalTelemetry = NewNull()

// Global returns the process-wide Telemetry. It is a no-op until New succeeds.
func Global() Telemetry {
	return globalTelemetry
}

// SetGlobal replaces the process-wide Telemetry.
func SetGlobal(t Telemetry) {
	globalTelemetry = t
}

// Telemetry holds the tracer services start spans from.
type Telemetry struct {
	trace trace.Tracer
}

// NewNull returns a Telemetry whose spans are discarded.
func NewNull() Telemetry {
	return Telemetry{trace: noop.NewTracerProvider().Tracer("noop")}
}

// New installs an OTLP gRPC tracer provider and makes it global. When
// cfg.CollectorAddr is empty the no-op Telemetry is returned.
func New(ctx context.Context, cfg Config) (tel Telemetry, shutdown func(context.Context) error, err error) {
	if cfg.CollectorAddr == "" {
		return NewNull(), func(context.Context) error { return nil }, nil
	}

	exporter, err := otlptrace.New(ctx,
		otlptracegrpc.NewClient(
			otlptracegrpc.WithEndpoint(cfg.CollectorAddr),
			otlptracegrpc.WithInsecure(),
		),
	)
	if err != nil {
		return NewNull(), nil, err
	}

	res, err := resource.New(ctx,
		resource.WithFromEnv(),
		resource.WithHost(),
		resource.WithAttributes(
			attribute.String("service.name", cfg.Service),
			attribute.String("service.version", cfg.Version),
			attribute.String("deployment.environment", cfg.Environment),
		),
	)
	if err != nil {
		return NewNull(), nil, errors.Join(err, exporter.Shutdown(ctx))
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(time.Second)),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	tel = Telemetry{trace: tp.Tracer(cfg.Service)}
	SetGlobal(tel)
	return tel, tp.Shutdown, nil
}

// T returns the tracer.
func (t Telemetry) T() trace.Tracer {
	return t.trace
}
