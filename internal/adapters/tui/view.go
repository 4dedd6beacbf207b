package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/vpm/internal/ui/style"
)

// View renders the UI.
func (m *Model) View() string {
	if len(m.Tasks) == 0 {
		return ""
	}

	done, total := m.Counts()

	var s strings.Builder
	s.WriteString(titleStyle.Render(fmt.Sprintf("INSTALLING %d/%d", done, total)) + "\n\n")

	rows := m.Tasks
	// Keep the tail in view when the terminal is shorter than the list.
	if limit := m.Height - 3; m.Height > 0 && limit > 0 && len(rows) > limit {
		rows = rows[len(rows)-limit:]
	}

	for _, task := range rows {
		s.WriteString(renderTaskRow(task) + "\n")
	}

	return s.String()
}

func renderTaskRow(task *TaskNode) string {
	row := taskStyle(task).Render(fmt.Sprintf("%s %s", taskIcon(task), task.Name))

	switch task.Status {
	case StatusDone:
		row += " " + durationStyle.Render(task.Duration.Round(time.Millisecond).String())
	case StatusError:
		row += " " + taskErrorStyle.Render(task.Err.Error())
	}
	return row
}

func taskIcon(task *TaskNode) string {
	switch task.Status {
	case StatusRunning:
		return style.Dot
	case StatusDone:
		return style.Check
	case StatusError:
		return style.Cross
	default:
		return style.Circle
	}
}

func taskStyle(task *TaskNode) lipgloss.Style {
	switch task.Status {
	case StatusRunning:
		return taskRunningStyle
	case StatusDone:
		return taskDoneStyle
	case StatusError:
		return taskErrorStyle
	default:
		return taskPendingStyle
	}
}
