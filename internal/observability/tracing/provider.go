package tracing

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// ProviderConfig describes the process for the tracer provider.
type ProviderConfig struct {
	ServiceName string
	Version     string
	// SampleRatio is the fraction of new root traces recorded, in [0, 1].
	// Incoming sampled parents are always honored.
	SampleRatio float64
	// Options are appended to the provider options, e.g. an exporter.
	Options []sdktrace.TracerProviderOption
}

// NewProvider builds a tracer provider tagged with the service name and version.
func NewProvider(cfg ProviderConfig) *sdktrace.TracerProvider {
	ratio := min(max(cfg.SampleRatio, 0), 1)

	res := resource.NewSchemaless(
		attribute.String("service.name", cfg.ServiceName),
		attribute.String("service.version", cfg.Version),
	)

	opts := append([]sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))),
	}, cfg.Options...)
	return sdktrace.NewTracerProvider(opts...)
}

// Install makes tp the global provider and enables W3C trace context and baggage propagation.
func Install(tp *sdktrace.TracerProvider) {
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
}
