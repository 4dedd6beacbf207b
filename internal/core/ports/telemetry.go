package ports

import "context"

//go:generate mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Tracer is the entry point for creating spans.
type Tracer interface {
	// Start creates a new span.
	Start(ctx context.Context, name string, opts ...SpanOption) (context.Context, Span)
	// EmitPlan announces the task names about to run under the span in ctx.
	EmitPlan(ctx context.Context, taskNames []string)
}

// Span represents a unit of work.
type Span interface {
	// End completes the span.
	End()
	// RecordError records an error for the span.
	RecordError(err error)
	// SetAttribute adds a key-value pair to the span.
	SetAttribute(key string, value any)
}

// SpanConfig holds configuration for a starting span.
type SpanConfig struct {
	// Task marks the span as a user-visible unit of progress.
	Task bool
}

// SpanOption is a functional option for configuring a span.
type SpanOption func(*SpanConfig)

// WithTask marks a span as a progress task shown by the renderer.
func WithTask() SpanOption {
	return func(c *SpanConfig) {
		c.Task = true
	}
}
