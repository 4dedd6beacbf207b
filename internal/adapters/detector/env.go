// Package detector picks the progress output mode for the current terminal.
package detector

import (
	"os"

	"go.trai.ch/vpm/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/term"
)

// OutputMode represents the rendering mode for install progress.
type OutputMode int

const (
	// ModeAuto automatically detects the appropriate mode.
	ModeAuto OutputMode = iota
	// ModeTUI forces the interactive TUI renderer.
	ModeTUI
	// ModeLinear forces the linear CI renderer.
	ModeLinear
	// ModeQuiet disables progress output.
	ModeQuiet
)

func (m OutputMode) String() string {
	switch m {
	case ModeTUI:
		return "tui"
	case ModeLinear:
		return "linear"
	case ModeQuiet:
		return "quiet"
	default:
		return "auto"
	}
}

// ParseMode parses a user supplied --output-mode value.
func ParseMode(s string) (OutputMode, error) {
	switch s {
	case "auto", "":
		return ModeAuto, nil
	case "tui":
		return ModeTUI, nil
	case "linear", "ci":
		return ModeLinear, nil
	case "quiet", "none":
		return ModeQuiet, nil
	default:
		return ModeAuto, zerr.With(domain.ErrInvalidOutputMode, "mode", s)
	}
}

// DetectEnvironment returns the recommended output mode for stderr.
func DetectEnvironment() OutputMode {
	return Detect(os.Getenv, term.IsTerminal(int(os.Stderr.Fd())))
}

// Detect returns ModeLinear when output is not a terminal or CI is set.
func Detect(getenv func(string) string, isTTY bool) OutputMode {
	ci := getenv("CI")
	isCI := ci == "true" || ci == "1"

	if !isTTY || isCI {
		return ModeLinear
	}
	return ModeTUI
}

// ResolveMode applies the user's choice on top of the detected mode.
func ResolveMode(autoDetected, requested OutputMode) OutputMode {
	if requested == ModeAuto {
		return autoDetected
	}
	return requested
}
