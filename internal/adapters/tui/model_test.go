package tui_test

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/vpm/internal/adapters/tui"
)

func update(m *tui.Model, msg tea.Msg) (*tui.Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(*tui.Model), cmd
}

func TestModel_Update(t *testing.T) {
	start := time.Now()

	m := tui.NewModel()
	m, _ = update(m, tui.MsgInitTasks{Tasks: []string{"a@1.0.0", "b@2.0.0"}})
	require.Len(t, m.Tasks, 2)
	assert.Equal(t, tui.StatusPending, m.Tasks[0].Status)

	m, _ = update(m, tui.MsgTaskStart{SpanID: "s1", Name: "a@1.0.0", StartTime: start})
	assert.Equal(t, tui.StatusRunning, m.TaskMap["a@1.0.0"].Status)

	m, _ = update(m, tui.MsgTaskComplete{SpanID: "s1", EndTime: start.Add(time.Second)})
	assert.Equal(t, tui.StatusDone, m.TaskMap["a@1.0.0"].Status)
	assert.Equal(t, time.Second, m.TaskMap["a@1.0.0"].Duration)

	m, _ = update(m, tui.MsgTaskStart{SpanID: "s2", Name: "b@2.0.0", StartTime: start})
	m, _ = update(m, tui.MsgTaskComplete{SpanID: "s2", EndTime: start, Err: errors.New("boom")})
	assert.Equal(t, tui.StatusError, m.TaskMap["b@2.0.0"].Status)

	done, total := m.Counts()
	assert.Equal(t, 2, done)
	assert.Equal(t, 2, total)
}

func TestModel_PlansAccumulate(t *testing.T) {
	m := tui.NewModel()
	m, _ = update(m, tui.MsgInitTasks{Tasks: []string{"a@1.0.0"}})
	m, _ = update(m, tui.MsgInitTasks{Tasks: []string{"a@1.0.0", "b@1.0.0"}})

	require.Len(t, m.Tasks, 2)
	assert.Equal(t, "b@1.0.0", m.Tasks[1].Name)
}

func TestModel_UnplannedTask(t *testing.T) {
	m := tui.NewModel()
	m, _ = update(m, tui.MsgTaskStart{SpanID: "s1", Name: "extra@1.0.0", StartTime: time.Now()})

	require.Len(t, m.Tasks, 1)
	assert.Equal(t, tui.StatusRunning, m.Tasks[0].Status)
}

func TestModel_UnknownSpanIgnored(t *testing.T) {
	m := tui.NewModel()
	m, _ = update(m, tui.MsgInitTasks{Tasks: []string{"a@1.0.0"}})
	m, _ = update(m, tui.MsgTaskComplete{SpanID: "nope", EndTime: time.Now()})

	assert.Equal(t, tui.StatusPending, m.Tasks[0].Status)
}

func TestModel_CtrlC(t *testing.T) {
	m := tui.NewModel()
	m, cmd := update(m, tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.True(t, m.Interrupted)
}

func TestModel_WindowSize(t *testing.T) {
	m := tui.NewModel()
	m, _ = update(m, tea.WindowSizeMsg{Width: 80, Height: 24})

	assert.Equal(t, 80, m.Width)
	assert.Equal(t, 24, m.Height)
}

func TestModel_View(t *testing.T) {
	start := time.Now()

	m := tui.NewModel()
	assert.Empty(t, m.View())

	m, _ = update(m, tui.MsgInitTasks{Tasks: []string{"a@1.0.0", "b@2.0.0", "c@3.0.0"}})
	m, _ = update(m, tui.MsgTaskStart{SpanID: "s1", Name: "a@1.0.0", StartTime: start})
	m, _ = update(m, tui.MsgTaskComplete{SpanID: "s1", EndTime: start.Add(250 * time.Millisecond)})
	m, _ = update(m, tui.MsgTaskStart{SpanID: "s2", Name: "b@2.0.0", StartTime: start})
	m, _ = update(m, tui.MsgTaskComplete{SpanID: "s2", EndTime: start, Err: errors.New("checksum mismatch")})

	view := m.View()
	assert.Contains(t, view, "INSTALLING 2/3")
	assert.Contains(t, view, "✓ a@1.0.0")
	assert.Contains(t, view, "250ms")
	assert.Contains(t, view, "✗ b@2.0.0")
	assert.Contains(t, view, "checksum mismatch")
	assert.Contains(t, view, "○ c@3.0.0")
}

func TestModel_ViewKeepsTailVisible(t *testing.T) {
	m := tui.NewModel()
	m, _ = update(m, tui.MsgInitTasks{Tasks: []string{"a", "b", "c", "d", "e"}})
	m, _ = update(m, tea.WindowSizeMsg{Width: 80, Height: 5})

	view := m.View()
	assert.NotContains(t, view, "○ a\n")
	assert.Contains(t, view, "○ e")
}
