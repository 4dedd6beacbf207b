package tui

import (
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/vpm/internal/ui/style"
)

var (
	taskPendingStyle = lipgloss.NewStyle().
				Foreground(style.Slate)

	taskRunningStyle = lipgloss.NewStyle().
				Foreground(style.Iris).
				Bold(true)

	taskDoneStyle = lipgloss.NewStyle().
			Foreground(style.Green)

	taskErrorStyle = lipgloss.NewStyle().
			Foreground(style.Red)

	durationStyle = lipgloss.NewStyle().
			Foreground(style.Slate).
			Faint(true)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Background(style.Iris).
			Foreground(style.White)
)
