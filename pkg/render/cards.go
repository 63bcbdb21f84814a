package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"gitlab.com/tinyland/lab/gridline/pkg/layout"
	"gitlab.com/tinyland/lab/gridline/pkg/patch"
	"gitlab.com/tinyland/lab/gridline/pkg/theme"
)

// Cards renders bordered, variable-height card fragments for card mode.
// The fragment extent is the card's actual rendered line count, which is
// what gets written back into the height cache after paint.
type Cards struct {
	grid layout.GridLayout

	borderStyle lipgloss.Style
	selBorder   lipgloss.Style
	titleStyle  lipgloss.Style
	bodyStyle   lipgloss.Style
}

// NewCards creates a card renderer with the given palette.
func NewCards(th theme.Theme) *Cards {
	return &Cards{
		borderStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(th.CardBorder)),
		selBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(th.Accent)),
		titleStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(th.CardTitleFg)),
		bodyStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color(th.Foreground)),
	}
}

// SetLayout installs the grid shape computed by the layout solver.
func (c *Cards) SetLayout(g layout.GridLayout) {
	c.grid = g
}

// Layout returns the current grid shape.
func (c *Cards) Layout() layout.GridLayout { return c.grid }

// Card renders one card. Body lines wrap naturally within the item width;
// the card's height therefore varies with content.
func (c *Cards) Card(title string, body []string, absIndex int, selected bool) patch.Fragment {
	inner := c.grid.ItemWidth - 2 // border columns
	if inner < 1 {
		inner = 1
	}

	lines := make([]string, 0, len(body)+1)
	lines = append(lines, c.titleStyle.Render(clip(title, inner)))
	for _, b := range body {
		lines = append(lines, c.bodyStyle.Render(clip(b, inner)))
	}

	style := c.borderStyle
	if selected {
		style = c.selBorder
	}
	content := style.Width(inner).Render(strings.Join(lines, "\n"))

	return patch.Fragment{
		Index:   absIndex,
		Content: content,
		Extent:  float64(lipgloss.Height(content)),
	}
}

// clip truncates s to width, ANSI-aware.
func clip(s string, width int) string {
	if ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "…")
}
