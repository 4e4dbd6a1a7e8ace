package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"octav_mcp/internal/config"
)

func TestSetup_DisabledIsNoop(t *testing.T) {
	tracer, shutdown, err := Setup(context.Background(), config.TracingConfig{Enabled: false})
	require.NoError(t, err)

	_, span := tracer.Start(context.Background(), "tool.call")
	assert.False(t, span.IsRecording())
	span.End()
	assert.NoError(t, shutdown(context.Background()))
}

func TestNewProvider_TagsServiceName(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp, err := NewProvider("octav-mcp-test", sdktrace.WithSyncer(exporter))
	require.NoError(t, err)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	_, span := tp.Tracer(InstrumentationName).Start(context.Background(), "tool.call")
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "tool.call", spans[0].Name)

	var service string
	for _, kv := range spans[0].Resource.Attributes() {
		if kv.Key == attribute.Key("service.name") {
			service = kv.Value.AsString()
		}
	}
	assert.Equal(t, "octav-mcp-test", service)
}
