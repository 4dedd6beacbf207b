package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/vpm/internal/ui/style"
)

// Table prints rows either tab separated or as aligned, styled columns.
type Table struct {
	w      io.Writer
	styled bool
	header []string
	rows   [][]string
}

// NewTable creates a table writing to w. When styled is false the output
// is one tab-separated line per row with no header, suitable for scripts.
func NewTable(w io.Writer, styled bool, header ...string) *Table {
	return &Table{w: w, styled: styled, header: header}
}

// Row appends a row.
func (t *Table) Row(cells ...string) {
	t.rows = append(t.rows, cells)
}

// Len returns the number of rows added so far.
func (t *Table) Len() int {
	return len(t.rows)
}

// Flush writes every row.
func (t *Table) Flush() error {
	if !t.styled {
		for _, r := range t.rows {
			if _, err := fmt.Fprintln(t.w, strings.Join(r, "\t")); err != nil {
				return err
			}
		}
		return nil
	}

	widths := t.widths()
	if len(t.header) > 0 {
		if _, err := fmt.Fprintln(t.w, headerStyle.Render(pad(t.header, widths))); err != nil {
			return err
		}
	}
	for _, r := range t.rows {
		if _, err := fmt.Fprintln(t.w, pad(r, widths)); err != nil {
			return err
		}
	}
	return nil
}

func (t *Table) widths() []int {
	var widths []int
	measure := func(cells []string) {
		for i, c := range cells {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], lipgloss.Width(c))
		}
	}
	measure(t.header)
	for _, r := range t.rows {
		measure(r)
	}
	return widths
}

func pad(cells []string, widths []int) string {
	var b strings.Builder
	for i, c := range cells {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(c)
		if i < len(cells)-1 {
			b.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(c)))
		}
	}
	return b.String()
}

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(style.Iris)
