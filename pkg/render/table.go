// Package render implements the rendering collaborators consumed by the
// virtualizer: a table-mode row/header renderer and a card-mode renderer.
// The virtualization core never imports this package; it sees only the
// Fragment values these renderers produce.
package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"gitlab.com/tinyland/lab/gridline/pkg/layout"
	"gitlab.com/tinyland/lab/gridline/pkg/patch"
	"gitlab.com/tinyland/lab/gridline/pkg/theme"
)

// Table renders header and data rows for table mode. Each row occupies
// exactly one terminal line (extent 1).
type Table struct {
	columns []layout.Column
	widths  []int
	width   int

	headerStyle lipgloss.Style
	evenStyle   lipgloss.Style
	oddStyle    lipgloss.Style
	selStyle    lipgloss.Style
}

// NewTable creates a table renderer for the given columns and palette.
func NewTable(cols []layout.Column, th theme.Theme) *Table {
	t := &Table{columns: cols}
	t.headerStyle = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.Color(th.HeaderFg)).
		Background(lipgloss.Color(th.HeaderBg))
	t.evenStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(th.Foreground))
	if th.RowEvenBg != "" {
		t.evenStyle = t.evenStyle.Background(lipgloss.Color(th.RowEvenBg))
	}
	t.oddStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(th.Foreground))
	if th.RowOddBg != "" {
		t.oddStyle = t.oddStyle.Background(lipgloss.Color(th.RowOddBg))
	}
	t.selStyle = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.Color(th.SelectedFg)).
		Background(lipgloss.Color(th.SelectedBg))
	return t
}

// SetWidth re-resolves column widths for a new total width.
func (t *Table) SetWidth(w int) {
	if w < 0 {
		w = 0
	}
	t.width = w
	t.widths = layout.ResolveWidths(t.columns, w, true)
}

// Width returns the last configured total width.
func (t *Table) Width() int { return t.width }

// Header renders the fixed header line.
func (t *Table) Header() string {
	if t.width <= 0 {
		return ""
	}
	cells := make([]string, len(t.columns))
	for i, col := range t.columns {
		cells[i] = col.Title
	}
	return t.headerStyle.Render(t.joinCells(cells))
}

// RenderHeader satisfies the grid widget's header contract. The column set
// is fixed at construction; the argument only exists for the interface
// shape and is ignored.
func (t *Table) RenderHeader([]layout.Column) string {
	return t.Header()
}

// Separator renders the line under the header.
func (t *Table) Separator() string {
	if t.width <= 0 {
		return ""
	}
	return strings.Repeat("─", t.width)
}

// Row renders one data row as a single-line fragment.
func (t *Table) Row(cells []string, absIndex int, selected bool) patch.Fragment {
	line := t.joinCells(cells)
	style := t.evenStyle
	switch {
	case selected:
		style = t.selStyle
	case absIndex%2 == 1:
		style = t.oddStyle
	}
	return patch.Fragment{
		Index:   absIndex,
		Content: style.Render(line),
		Extent:  1,
	}
}

// joinCells truncates and pads each cell to its resolved width and joins
// them with single-space separators, padding the result to the full width.
func (t *Table) joinCells(cells []string) string {
	var sb strings.Builder
	used := 0
	for i := range t.columns {
		if i >= len(t.widths) {
			break
		}
		w := t.widths[i]
		if w <= 0 {
			continue
		}
		if i > 0 {
			sb.WriteByte(' ')
			used++
		}
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		sb.WriteString(fitCell(cell, w, t.columns[i].Align))
		used += w
	}
	if used < t.width {
		sb.WriteString(strings.Repeat(" ", t.width-used))
	}
	out := sb.String()
	if ansi.StringWidth(out) > t.width {
		out = ansi.Truncate(out, t.width, "")
	}
	return out
}

// fitCell truncates s to width (ANSI- and wide-rune-aware) and pads it
// according to align.
func fitCell(s string, width int, align layout.Align) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(s) > width {
		s = ansi.Truncate(s, width, "…")
	}
	pad := width - ansi.StringWidth(s)
	if pad <= 0 {
		return s
	}
	switch align {
	case layout.AlignRight:
		return strings.Repeat(" ", pad) + s
	case layout.AlignCenter:
		left := pad / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
	default:
		return s + strings.Repeat(" ", pad)
	}
}
