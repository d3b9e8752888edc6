package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestNewProvider_RecordsWithResource(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := NewProvider(ProviderConfig{
		ServiceName: "notes-api",
		Version:     "1.2.3",
		SampleRatio: 1,
		Options:     []sdktrace.TracerProviderOption{sdktrace.WithSyncer(exporter)},
	})
	defer func() { _ = tp.Shutdown(context.Background()) }()

	_, span := tp.Tracer("test").Start(context.Background(), "op")
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	attrs := map[string]string{}
	for _, kv := range spans[0].Resource.Attributes() {
		attrs[string(kv.Key)] = kv.Value.AsString()
	}
	assert.Equal(t, "notes-api", attrs["service.name"])
	assert.Equal(t, "1.2.3", attrs["service.version"])
}

func TestNewProvider_ZeroRatioDropsRootSpans(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := NewProvider(ProviderConfig{
		ServiceName: "notes-api",
		SampleRatio: -5, // clamped to 0
		Options:     []sdktrace.TracerProviderOption{sdktrace.WithSyncer(exporter)},
	})
	defer func() { _ = tp.Shutdown(context.Background()) }()

	_, span := tp.Tracer("test").Start(context.Background(), "op")
	span.End()

	assert.Empty(t, exporter.GetSpans())
}

func TestInstall(t *testing.T) {
	prevTP := otel.GetTracerProvider()
	prevProp := otel.GetTextMapPropagator()
	defer func() {
		otel.SetTracerProvider(prevTP)
		otel.SetTextMapPropagator(prevProp)
	}()

	exporter := tracetest.NewInMemoryExporter()
	tp := NewProvider(ProviderConfig{
		ServiceName: "notes-api",
		SampleRatio: 1,
		Options:     []sdktrace.TracerProviderOption{sdktrace.WithSyncer(exporter)},
	})
	Install(tp)

	_, span := StartSpan(context.Background(), "installed")
	span.End()

	require.Len(t, exporter.GetSpans(), 1)
	assert.ElementsMatch(t, []string{"traceparent", "tracestate", "baggage"}, otel.GetTextMapPropagator().Fields())
}
