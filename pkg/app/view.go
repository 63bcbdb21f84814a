package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"gitlab.com/tinyland/lab/gridline/pkg/grid"
	"gitlab.com/tinyland/lab/gridline/pkg/patch"
)

// View renders header, dataset viewport, and status bar. The surface holds
// only the materialized window; the viewport is cut out of it using the
// current scroll offset and the leading spacer extent.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width <= 0 || m.height <= 0 {
		return "loading..."
	}

	var b strings.Builder
	if m.mode == grid.ModeTable {
		b.WriteString(m.table.Header())
		b.WriteByte('\n')
		b.WriteString(m.table.Separator())
		b.WriteByte('\n')
	}
	b.WriteString(m.bodyView())
	b.WriteByte('\n')
	b.WriteString(m.statusView())

	// Scan registers the zone marks embedded by the render stage and
	// strips them from the final output.
	return m.zones.Scan(b.String())
}

// bodyView slices the visible lines out of the materialized window.
func (m *Model) bodyView() string {
	surface, ok := m.g.Surface().(*patch.TermSurface)
	if !ok {
		return ""
	}
	window := surface.Window()
	leading, _ := surface.Spacers()

	var lines []string
	if m.mode == grid.ModeCards {
		lines = m.cardLines(window)
	} else {
		lines = make([]string, 0, len(window))
		for _, f := range window {
			lines = append(lines, f.Content)
		}
	}

	// The window starts `leading` extent units into the dataset; the
	// viewport starts at the scroll offset. Extent units are terminal rows
	// here, so the difference is the number of lines to skip.
	skip := int(m.offset - leading)
	if skip < 0 {
		skip = 0
	}
	if skip > len(lines) {
		skip = len(lines)
	}
	lines = lines[skip:]

	n := m.bodyRows()
	if len(lines) > n {
		lines = lines[:n]
	}
	for len(lines) < n {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// cardLines groups the window's cards into grid rows and joins each row
// horizontally.
func (m *Model) cardLines(window []patch.Fragment) []string {
	cols := m.g.Layout().ColumnsPerRow
	if cols < 1 {
		cols = 1
	}
	gap := strings.Repeat(" ", m.cfg.Grid.Gap)

	var lines []string
	for i := 0; i < len(window); i += cols {
		end := i + cols
		if end > len(window) {
			end = len(window)
		}
		cells := make([]string, 0, cols*2)
		for j := i; j < end; j++ {
			if j > i {
				cells = append(cells, gap)
			}
			cells = append(cells, window[j].Content)
		}
		row := lipgloss.JoinHorizontal(lipgloss.Top, cells...)
		lines = append(lines, strings.Split(row, "\n")...)
	}
	return lines
}

// statusView renders the metrics bar.
func (m *Model) statusView() string {
	metrics := m.g.Metrics()

	mode := "table"
	if m.mode == grid.ModeCards {
		mode = "cards"
	}

	health := lipgloss.NewStyle().Foreground(lipgloss.Color(m.th.StatusOK)).Render("ok")
	if m.lastErr != nil {
		health = lipgloss.NewStyle().Foreground(lipgloss.Color(m.th.StatusErr)).
			Render(m.lastErr.Error())
	} else if !m.src.Healthy() {
		health = lipgloss.NewStyle().Foreground(lipgloss.Color(m.th.StatusWarn)).Render("stale")
	}

	left := fmt.Sprintf(" %s · %s · %d rows · sel %d", m.src.Name(), mode, metrics.Total, m.selected)
	right := fmt.Sprintf("win %d · eff %.1f%% · %s · cache %d · %s ",
		metrics.VisibleCount,
		metrics.EfficiencyRatio*100,
		metrics.LastRenderDuration.Round(10*time.Microsecond),
		metrics.CacheSize,
		health,
	)

	pad := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if pad < 1 {
		pad = 1
	}
	bar := left + strings.Repeat(" ", pad) + right
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.th.Dim)).
		Render(bar)
}
