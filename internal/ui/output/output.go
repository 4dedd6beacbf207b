// Package output provides termenv outputs and tabular printing shared by the CLI.
package output

import (
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// ColorProfile returns the color profile to use for interactive TUI environments.
// NO_COLOR forces Ascii; otherwise the terminal's capabilities are detected.
func ColorProfile() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

// ColorProfileANSI returns the color profile for CI/non-interactive environments.
func ColorProfileANSI() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.ANSI
}

// New creates a new termenv.Output using ColorProfile.
func New(w io.Writer, opts ...termenv.OutputOption) *termenv.Output {
	return NewWithProfile(w, ColorProfile, opts...)
}

// NewWithProfile creates a new termenv.Output with a custom profile selector.
func NewWithProfile(w io.Writer, profileFn func() termenv.Profile, opts ...termenv.OutputOption) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}

	opts = append(opts,
		termenv.WithProfile(profileFn()),
		termenv.WithTTY(true),
	)

	return termenv.NewOutput(w, opts...)
}

// IsTerminal reports whether w is a terminal file descriptor.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
