// Package telemetry adapts OpenTelemetry tracing to ports.Tracer and forwards task spans
// to a progress renderer.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/vpm/internal/core/ports"
)

// TaskAttribute marks spans that represent a user-visible unit of progress.
const TaskAttribute = attribute.Key("vpm.task")

// OTelTracer is a concrete implementation of ports.Tracer using OpenTelemetry.
type OTelTracer struct {
	tracer   trace.Tracer
	renderer ports.Renderer
}

// NewOTelTracer creates a new OTelTracer with the given instrumentation name.
func NewOTelTracer(provider trace.TracerProvider, name string) *OTelTracer {
	return &OTelTracer{tracer: provider.Tracer(name)}
}

// WithRenderer sets the renderer that receives plan announcements.
func (t *OTelTracer) WithRenderer(r ports.Renderer) *OTelTracer {
	t.renderer = r
	return t
}

// Start creates a new span.
func (t *OTelTracer) Start(ctx context.Context, name string, opts ...ports.SpanOption) (context.Context, ports.Span) {
	cfg := &ports.SpanConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	var startOpts []trace.SpanStartOption
	if cfg.Task {
		startOpts = append(startOpts, trace.WithAttributes(TaskAttribute.Bool(true)))
	}

	ctx, span := t.tracer.Start(ctx, name, startOpts...)
	return ctx, &OTelSpan{span: span}
}

// EmitPlan signals that a set of tasks is planned by adding an event to the current span.
func (t *OTelTracer) EmitPlan(ctx context.Context, taskNames []string) {
	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.AddEvent("plan_emitted", trace.WithAttributes(
			attribute.StringSlice("tasks", taskNames),
		))
	}

	if t.renderer != nil {
		t.renderer.OnPlanEmit(taskNames)
	}
}

// OTelSpan is a concrete implementation of ports.Span using OpenTelemetry.
type OTelSpan struct {
	span trace.Span
}

// End completes the span.
func (s *OTelSpan) End() {
	s.span.End()
}

// RecordError records an error for the span.
func (s *OTelSpan) RecordError(err error) {
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

// SetAttribute adds a key-value pair to the span.
func (s *OTelSpan) SetAttribute(key string, value any) {
	switch v := value.(type) {
	case string:
		s.span.SetAttributes(attribute.String(key, v))
	case int:
		s.span.SetAttributes(attribute.Int(key, v))
	case int64:
		s.span.SetAttributes(attribute.Int64(key, v))
	case float64:
		s.span.SetAttributes(attribute.Float64(key, v))
	case bool:
		s.span.SetAttributes(attribute.Bool(key, v))
	case []string:
		s.span.SetAttributes(attribute.StringSlice(key, v))
	default:
		s.span.SetAttributes(attribute.String(key, fmt.Sprintf("%v", v)))
	}
}
