// Package tui provides an interactive progress view for package installs.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TaskStatus represents the current state of a task.
type TaskStatus string

const (
	// StatusPending indicates the task is waiting to start.
	StatusPending TaskStatus = "Pending"
	// StatusRunning indicates the task is currently executing.
	StatusRunning TaskStatus = "Running"
	// StatusDone indicates the task completed successfully.
	StatusDone TaskStatus = "Done"
	// StatusError indicates the task failed.
	StatusError TaskStatus = "Error"
)

// TaskNode represents a single task in the UI list.
type TaskNode struct {
	Name      string
	Status    TaskStatus
	StartTime time.Time
	Duration  time.Duration
	Err       error
}

// Model represents the progress view state.
type Model struct {
	Tasks   []*TaskNode
	TaskMap map[string]*TaskNode
	SpanMap map[string]*TaskNode
	Width   int
	Height  int
	// Interrupted is set when the user pressed ctrl+c.
	Interrupted bool
}

// NewModel creates an empty model.
func NewModel() *Model {
	return &Model{
		TaskMap: make(map[string]*TaskNode),
		SpanMap: make(map[string]*TaskNode),
	}
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.Interrupted = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case MsgInitTasks:
		// Each phase announces its own plan; earlier rows stay visible.
		for _, name := range msg.Tasks {
			if _, ok := m.TaskMap[name]; ok {
				continue
			}
			node := &TaskNode{Name: name, Status: StatusPending}
			m.Tasks = append(m.Tasks, node)
			m.TaskMap[name] = node
		}

	case MsgTaskStart:
		node, ok := m.TaskMap[msg.Name]
		if !ok {
			// Tasks outside the announced plan are appended as they appear.
			node = &TaskNode{Name: msg.Name}
			m.Tasks = append(m.Tasks, node)
			m.TaskMap[msg.Name] = node
		}
		node.Status = StatusRunning
		node.StartTime = msg.StartTime
		m.SpanMap[msg.SpanID] = node

	case MsgTaskComplete:
		node, ok := m.SpanMap[msg.SpanID]
		if !ok {
			return m, nil
		}
		node.Duration = msg.EndTime.Sub(node.StartTime)
		node.Err = msg.Err
		if msg.Err != nil {
			node.Status = StatusError
		} else {
			node.Status = StatusDone
		}
	}

	return m, nil
}

// Counts returns the number of finished tasks and the total.
func (m *Model) Counts() (done, total int) {
	for _, t := range m.Tasks {
		if t.Status == StatusDone || t.Status == StatusError {
			done++
		}
	}
	return done, len(m.Tasks)
}
