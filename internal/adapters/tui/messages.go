package tui

import "time"

// MsgInitTasks adds planned tasks to the list.
type MsgInitTasks struct {
	Tasks []string
}

// MsgTaskStart marks a planned task as running.
type MsgTaskStart struct {
	SpanID    string
	Name      string
	StartTime time.Time
}

// MsgTaskComplete marks a running task as finished.
type MsgTaskComplete struct {
	SpanID  string
	EndTime time.Time
	Err     error
}
