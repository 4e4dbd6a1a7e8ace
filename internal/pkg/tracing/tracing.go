package tracing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"octav_mcp/internal/config"
)

// InstrumentationName names the tracer handed to the tool registry.
const InstrumentationName = "octav_mcp/tools"

// ShutdownFunc flushes and stops span export.
type ShutdownFunc func(context.Context) error

// Setup returns the tracer for tool calls. With tracing disabled the tracer is
// a no-op and nothing leaves the process.
func Setup(ctx context.Context, cfg config.TracingConfig) (trace.Tracer, ShutdownFunc, error) {
	if !cfg.Enabled {
		return noop.NewTracerProvider().Tracer(InstrumentationName), func(context.Context) error { return nil }, nil
	}

	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create OTLP trace exporter: %w", err)
	}

	tp, err := NewProvider(cfg.ServiceName, sdktrace.WithBatcher(exporter))
	if err != nil {
		return nil, nil, err
	}
	otel.SetTracerProvider(tp)
	return tp.Tracer(InstrumentationName), tp.Shutdown, nil
}

// NewProvider builds an SDK tracer provider tagged with serviceName.
func NewProvider(serviceName string, opts ...sdktrace.TracerProviderOption) (*sdktrace.TracerProvider, error) {
	res, err := resource.Merge(
		resource.Default(),
		resource.NewSchemaless(attribute.String("service.name", serviceName)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create trace resource: %w", err)
	}
	return sdktrace.NewTracerProvider(append([]sdktrace.TracerProviderOption{sdktrace.WithResource(res)}, opts...)...), nil
}
