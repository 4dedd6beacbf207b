// Package linear provides a synchronous, line-based renderer for CI environments.
package linear

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"go.trai.ch/vpm/internal/ui/output"
	"go.trai.ch/vpm/internal/ui/style"
)

// Renderer implements ports.Renderer for CI/non-interactive environments.
// It prints one line per task start and completion, in chronological order.
type Renderer struct {
	stderr io.Writer
	out    *termenv.Output

	mu    sync.Mutex
	tasks map[string]*taskState // spanID -> task state
}

type taskState struct {
	name      string
	startTime time.Time
}

// NewRenderer creates a new linear Renderer writing to stderr.
func NewRenderer(stderr io.Writer) *Renderer {
	if stderr == nil {
		stderr = os.Stderr
	}

	return &Renderer{
		stderr: stderr,
		out:    output.NewWithProfile(stderr, output.ColorProfileANSI),
		tasks:  make(map[string]*taskState),
	}
}

// Start is a no-op for linear renderer (synchronous).
func (r *Renderer) Start(_ context.Context) error {
	return nil
}

// Stop forgets tasks that never completed.
func (r *Renderer) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clear(r.tasks)
	return nil
}

// Wait is a no-op for linear renderer (synchronous).
func (r *Renderer) Wait() error {
	return nil
}

// OnPlanEmit prints the planned tasks.
func (r *Renderer) OnPlanEmit(tasks []string) {
	if len(tasks) == 0 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	_, _ = fmt.Fprintf(r.stderr, "Installing %d package(s)\n", len(tasks))
}

// OnTaskStart prints a task start message.
func (r *Renderer) OnTaskStart(spanID, name string, startTime time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tasks[spanID] = &taskState{
		name:      name,
		startTime: startTime,
	}

	prefix := r.out.String(fmt.Sprintf("[%s]", name)).Faint().String()
	_, _ = fmt.Fprintf(r.stderr, "%s Starting...\n", prefix)
}

// OnTaskComplete prints the completion status of a started task.
func (r *Renderer) OnTaskComplete(spanID string, endTime time.Time, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[spanID]
	if !ok {
		return
	}
	delete(r.tasks, spanID)

	duration := endTime.Sub(task.startTime).Round(time.Millisecond)
	prefix := fmt.Sprintf("[%s]", task.name)

	if err != nil {
		symbol := r.out.String(style.Cross).Foreground(termenv.ANSIRed).String()
		_, _ = fmt.Fprintf(r.stderr, "%s %s Failed after %v: %v\n", prefix, symbol, duration, err)
		return
	}

	symbol := r.out.String(style.Check).Foreground(termenv.ANSIGreen).String()
	_, _ = fmt.Fprintf(r.stderr, "%s %s Completed in %v\n", prefix, symbol, duration)
}
