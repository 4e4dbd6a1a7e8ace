// Package tools binds tool names to argument validation, an Octav API call
// and a formatter.
package tools

import (
	"context"
	"fmt"
	"time"

	"octav_mcp/internal/app/formatter"
	"octav_mcp/internal/app/port"
	"octav_mcp/internal/app/validation"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Annotations are the behavioral hints advertised with each tool.
type Annotations struct {
	ReadOnly    bool `json:"readOnlyHint"`
	Destructive bool `json:"destructiveHint"`
	OpenWorld   bool `json:"openWorldHint"`
}

// Descriptor describes one tool.
type Descriptor struct {
	Name        string         `json:"name"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
	Annotations Annotations    `json:"annotations"`

	run runFunc
}

type decodeFunc func(out any) error

type runFunc func(ctx context.Context, decode decodeFunc, api port.OctavAPI) (formatter.Output, error)

// Registry holds the fixed tool table. It is read-only after NewRegistry
// and safe for concurrent use.
type Registry struct {
	tools     []Descriptor
	index     map[string]int
	validator *validation.Validator
	logger    port.Logger
	metrics   port.Metrics
	tracer    trace.Tracer
}

// NewRegistry creates a new instance of Registry with every tool registered.
func NewRegistry(logger port.Logger, metrics port.Metrics, tracer trace.Tracer) *Registry {
	if logger == nil {
		logger = port.NopLogger{}
	}
	if metrics == nil {
		metrics = port.NopMetrics{}
	}
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("")
	}
	r := &Registry{
		index:     make(map[string]int),
		validator: validation.NewValidator(),
		logger:    logger,
		metrics:   metrics,
		tracer:    tracer,
	}
	for _, d := range descriptors() {
		r.register(d)
	}
	return r
}

func (r *Registry) register(d Descriptor) {
	if _, exists := r.index[d.Name]; exists {
		panic(fmt.Sprintf("tools: duplicate tool name %q", d.Name))
	}
	r.index[d.Name] = len(r.tools)
	r.tools = append(r.tools, d)
}

// List returns every descriptor in registration order.
func (r *Registry) List() []Descriptor {
	out := make([]Descriptor, len(r.tools))
	copy(out, r.tools)
	return out
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.index[name]
	return ok
}

// Get returns the descriptor registered under name.
func (r *Registry) Get(name string) (Descriptor, bool) {
	idx, ok := r.index[name]
	if !ok {
		return Descriptor{}, false
	}
	return r.tools[idx], true
}

// Execute validates args, performs the tool's API call and formats the
// response. Nothing partial is returned on failure.
func (r *Registry) Execute(ctx context.Context, name string, args map[string]any, api port.OctavAPI) (Result, error) {
	d, ok := r.Get(name)
	if !ok {
		return Result{}, &UnknownToolError{Name: name}
	}
	decode := func(out any) error {
		return r.validator.Decode(d.Name, d.InputSchema, args, out)
	}
	out, err := d.run(ctx, decode, api)
	if err != nil {
		return Result{}, err
	}
	return textResult(out)
}

// Call is Execute with every error turned into an isError result.
func (r *Registry) Call(ctx context.Context, name string, args map[string]any, api port.OctavAPI) Result {
	callID := uuid.NewString()
	toolLabel := name
	if !r.Has(name) {
		toolLabel = "unknown"
	}

	ctx, span := r.tracer.Start(ctx, "tool.call", trace.WithAttributes(
		attribute.String("tool_name", toolLabel),
		attribute.String("call_id", callID),
	))
	defer span.End()

	started := time.Now()
	res, err := r.guardedExecute(ctx, name, args, api)
	elapsed := time.Since(started)

	label := outcome(err)
	r.metrics.ObserveToolCall(toolLabel, label, elapsed)
	span.SetAttributes(attribute.String("outcome", label))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, label)
		r.logger.Warn("Tool call failed", "tool", name, "callId", callID, "outcome", label, "elapsed", elapsed, "error", err)
		return ErrorResult(err)
	}

	span.SetStatus(codes.Ok, "")
	r.logger.Info("Tool call completed", "tool", name, "callId", callID, "elapsed", elapsed)
	return res
}

// guardedExecute is Execute with panics converted to errors.
func (r *Registry) guardedExecute(ctx context.Context, name string, args map[string]any, api port.OctavAPI) (res Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("Tool call panicked", "tool", name, "panic", rec)
			res, err = Result{}, fmt.Errorf("internal error: %v", rec)
		}
	}()
	return r.Execute(ctx, name, args, api)
}
