package watcher

import (
	"slices"
	"sync"
	"time"
)

// Debouncer coalesces bursts of file events into one callback per quiet period.
type Debouncer struct {
	mu       sync.Mutex
	pending  map[string]struct{}
	timer    *time.Timer
	window   time.Duration
	callback func(paths []string)
}

// NewDebouncer creates a new debouncer with the given time window and callback.
func NewDebouncer(window time.Duration, callback func(paths []string)) *Debouncer {
	return &Debouncer{
		pending:  make(map[string]struct{}),
		window:   window,
		callback: callback,
	}
}

// Add records a changed path and restarts the quiet period.
func (d *Debouncer) Add(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending[path] = struct{}{}

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.fire)
}

// takeLocked drains the pending set in sorted order. Must be called with d.mu held.
func (d *Debouncer) takeLocked() []string {
	paths := make([]string, 0, len(d.pending))
	for p := range d.pending {
		paths = append(paths, p)
	}
	slices.Sort(paths)
	clear(d.pending)
	return paths
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	d.timer = nil
	paths := d.takeLocked()
	d.mu.Unlock()

	if len(paths) > 0 && d.callback != nil {
		go d.callback(paths)
	}
}

// Flush runs the callback synchronously with anything still pending.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		if !d.timer.Stop() {
			// Timer already fired, let it complete rather than processing twice.
			d.mu.Unlock()
			return
		}
		d.timer = nil
	}
	paths := d.takeLocked()
	d.mu.Unlock()

	if len(paths) > 0 && d.callback != nil {
		d.callback(paths)
	}
}

// Stop cancels a pending callback and drops pending paths.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	clear(d.pending)
}
