package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Row is one table line. Cells are pre-formatted.
type Row struct {
	Label string
	Cells []string
}

// Table renders aligned columns: labels left-aligned, cells right-aligned.
type Table struct {
	Headers []string
	Rows    []Row
}

// String renders the table.
func (t *Table) String() string {
	if len(t.Rows) == 0 {
		return ""
	}

	cols := len(t.Headers)
	for _, r := range t.Rows {
		cols = max(cols, len(r.Cells)+1)
	}

	widths := make([]int, cols)

	measure := func(i int, s string) {
		widths[i] = max(widths[i], lipgloss.Width(s))
	}

	for i, h := range t.Headers {
		measure(i, h)
	}

	for _, r := range t.Rows {
		measure(0, r.Label)

		for i, c := range r.Cells {
			measure(i+1, c)
		}
	}

	var b strings.Builder

	if len(t.Headers) > 0 {
		cells := make([]string, cols)
		for i := range cols {
			h := ""
			if i < len(t.Headers) {
				h = t.Headers[i]
			}

			cells[i] = pad(h, widths[i], i > 0)
		}

		b.WriteString(SectionStyle.Render(strings.TrimRight(strings.Join(cells, "  "), " ")))
		b.WriteString("\n")
	}

	for _, r := range t.Rows {
		line := KeyStyle.Render(pad(r.Label, widths[0], false))

		for i := 1; i < cols; i++ {
			c := ""
			if i-1 < len(r.Cells) {
				c = r.Cells[i-1]
			}

			line += "  " + ValueStyle.Render(pad(c, widths[i], true))
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}

func pad(s string, width int, right bool) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}

	if right {
		return strings.Repeat(" ", gap) + s
	}

	return s + strings.Repeat(" ", gap)
}
