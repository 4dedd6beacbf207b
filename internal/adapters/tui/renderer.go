package tui

import (
	"context"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/vpm/internal/ui/output"
)

// Renderer wraps the Bubble Tea progress model as a ports.Renderer.
type Renderer struct {
	program *tea.Program
	model   *Model
	errCh   chan error
}

// NewRenderer creates a TUI renderer drawing to w.
func NewRenderer(w io.Writer, opts ...tea.ProgramOption) *Renderer {
	if w == nil {
		w = os.Stderr
	}
	lipgloss.SetColorProfile(output.ColorProfile())

	model := NewModel()
	opts = append([]tea.ProgramOption{tea.WithOutput(w)}, opts...)
	return &Renderer{
		program: tea.NewProgram(model, opts...),
		model:   model,
		errCh:   make(chan error, 1),
	}
}

// Start launches the TUI in a background goroutine.
func (r *Renderer) Start(_ context.Context) error {
	go func() {
		_, err := r.program.Run()
		r.errCh <- err
	}()
	return nil
}

// Stop signals the TUI to quit.
func (r *Renderer) Stop() error {
	r.program.Quit()
	return nil
}

// Wait blocks until the TUI has terminated.
func (r *Renderer) Wait() error {
	return <-r.errCh
}

// OnPlanEmit forwards the planned installs to the TUI.
func (r *Renderer) OnPlanEmit(tasks []string) {
	r.program.Send(MsgInitTasks{Tasks: tasks})
}

// OnTaskStart forwards task start events to the TUI.
func (r *Renderer) OnTaskStart(spanID, name string, startTime time.Time) {
	r.program.Send(MsgTaskStart{
		SpanID:    spanID,
		Name:      name,
		StartTime: startTime,
	})
}

// OnTaskComplete forwards task completion events to the TUI.
func (r *Renderer) OnTaskComplete(spanID string, endTime time.Time, err error) {
	r.program.Send(MsgTaskComplete{
		SpanID:  spanID,
		EndTime: endTime,
		Err:     err,
	})
}

// Model returns the underlying model for inspection after Wait.
func (r *Renderer) Model() *Model {
	return r.model
}
