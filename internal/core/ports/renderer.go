package ports

import (
	"context"
	"time"
)

// Renderer is the abstraction for progress output.
// It decouples telemetry collection from presentation logic,
// allowing the same event stream to drive either a TUI or linear CI logs.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// Start initializes the renderer and begins its lifecycle.
	Start(ctx context.Context) error

	// Stop signals the renderer to stop accepting new events and flush.
	Stop() error

	// Wait blocks until the renderer has fully terminated.
	Wait() error

	// OnPlanEmit is called with the task names an operation is about to run.
	OnPlanEmit(tasks []string)

	// OnTaskStart is called when a task begins.
	OnTaskStart(spanID, name string, startTime time.Time)

	// OnTaskComplete is called when a task finishes; err is nil on success.
	OnTaskComplete(spanID string, endTime time.Time, err error)
}
