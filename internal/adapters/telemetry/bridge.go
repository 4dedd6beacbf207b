package telemetry

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/vpm/internal/core/ports"
)

// Bridge implements sdktrace.SpanProcessor to forward task spans to a Renderer.
// Spans without the task attribute are ignored.
type Bridge struct {
	renderer ports.Renderer
}

// NewBridge returns a new Bridge.
func NewBridge(renderer ports.Renderer) *Bridge {
	return &Bridge{
		renderer: renderer,
	}
}

// OnStart is called when a span starts.
func (b *Bridge) OnStart(_ context.Context, s sdktrace.ReadWriteSpan) {
	if b.renderer == nil || !isTask(s.Attributes()) {
		return
	}

	sc := s.SpanContext()
	if !sc.IsValid() {
		return
	}

	b.renderer.OnTaskStart(sc.SpanID().String(), s.Name(), s.StartTime())
}

// OnEnd is called when a span ends.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.renderer == nil || !isTask(s.Attributes()) {
		return
	}

	sc := s.SpanContext()
	if !sc.IsValid() {
		return
	}

	var err error
	if s.Status().Code == codes.Error {
		desc := s.Status().Description
		if desc == "" {
			desc = "task failed"
		}
		err = errors.New(desc)
	}

	b.renderer.OnTaskComplete(sc.SpanID().String(), s.EndTime(), err)
}

// ForceFlush does nothing.
func (b *Bridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *Bridge) Shutdown(_ context.Context) error {
	return nil
}

func isTask(attrs []attribute.KeyValue) bool {
	for _, kv := range attrs {
		if kv.Key == TaskAttribute {
			return kv.Value.AsBool()
		}
	}
	return false
}
