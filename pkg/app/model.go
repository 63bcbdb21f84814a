package app

import (
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"gitlab.com/tinyland/lab/gridline/pkg/config"
	"gitlab.com/tinyland/lab/gridline/pkg/grid"
	"gitlab.com/tinyland/lab/gridline/pkg/patch"
	"gitlab.com/tinyland/lab/gridline/pkg/render"
	"gitlab.com/tinyland/lab/gridline/pkg/source"
	"gitlab.com/tinyland/lab/gridline/pkg/theme"
)

// Model is the root Bubbletea model: one gridline widget browsing one
// dataset source, with a status bar underneath.
type Model struct {
	cfg  *config.Config
	keys KeyMap
	log  *slog.Logger

	themeName string
	th        theme.Theme

	src  source.Source
	rows source.Rows

	mode  grid.Mode
	g     *grid.Grid
	table *render.Table
	cards *render.Cards

	zones   *zone.Manager
	program *tea.Program

	width, height int
	offset        float64 // scroll offset, extent units
	selected      int
	lastErr       error
	quitting      bool
}

// New builds the browser model. The grid is created immediately with an
// empty dataset; the first snapshot arrives through Init's command.
func New(cfg *config.Config, src source.Source, logger *slog.Logger) (*Model, error) {
	if logger == nil {
		logger = slog.Default()
	}
	m := &Model{
		cfg:       cfg,
		keys:      DefaultKeyMap(),
		log:       logger,
		themeName: cfg.Theme.Name,
		th:        theme.Get(cfg.Theme.Name),
		src:       src,
		rows:      source.Rows{},
		zones:     zone.New(),
	}
	if cfg.Grid.Mode == "cards" {
		m.mode = grid.ModeCards
	}
	m.table = render.NewTable(src.Columns(), m.th)
	m.cards = render.NewCards(m.th)

	g, err := m.buildGrid(m.mode)
	if err != nil {
		return nil, err
	}
	m.g = g
	return m, nil
}

// SetProgram wires the running program in so frame callbacks can be
// delivered as messages. Without a program, frames run inline.
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
}

// Grid exposes the widget, mostly for tests and the status bar.
func (m *Model) Grid() *grid.Grid { return m.g }

// buildGrid assembles a widget for the given mode over the current rows.
func (m *Model) buildGrid(mode grid.Mode) (*grid.Grid, error) {
	return grid.New(grid.Config{
		Mode:     mode,
		Columns:  m.src.Columns(),
		Dataset:  m.rows,
		Renderer: grid.ItemRendererFunc(m.renderItem),
		Header:   m.table,
		Stages:   []grid.Stage{m.zoneStage},
		Tunables: m.cfg.Tunables(),
		Options: grid.Options{
			FixedItemExtent:     m.cfg.Grid.RowHeight,
			EstimatedItemExtent: m.cfg.Grid.EstimatedCardHeight,
			Overscan:            m.cfg.Grid.Overscan,
			MinItemWidth:        m.cfg.Grid.MinCardWidth,
			Gap:                 m.cfg.Grid.Gap,
		},
		Logger:       m.log,
		RequestFrame: m.requestFrame,
	})
}

// renderItem is the grid's renderer collaborator.
func (m *Model) renderItem(item any, idx int) patch.Fragment {
	row, ok := item.(source.Row)
	if !ok {
		return patch.Fragment{Content: "", Extent: 1}
	}
	selected := idx == m.selected
	if m.mode == grid.ModeCards {
		return m.cards.Card(row.ID, row.Cells, idx, selected)
	}
	return m.table.Row(row.Cells, idx, selected)
}

// rowZoneID names the bubblezone zone for one absolute row index.
func rowZoneID(i int) string {
	return fmt.Sprintf("row-%d", i)
}

// zoneStage marks each fragment as a clickable zone.
func (m *Model) zoneStage(sc *grid.StageContext) {
	sc.Fragment.Content = m.zones.Mark(rowZoneID(sc.Index), sc.Fragment.Content)
}

func (m *Model) requestFrame() {
	if m.program != nil {
		go m.program.Send(FrameMsg{})
		return
	}
	m.g.Frame()
}

// Init requests the first snapshot.
func (m *Model) Init() tea.Cmd {
	return SnapshotCmd(m.src)
}

// Update is the message dispatcher.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table.SetWidth(msg.Width)
		m.g.Resize(msg.Width, m.bodyRows())
		m.cards.SetLayout(m.g.Layout())
		return m, nil

	case FrameMsg:
		m.g.Frame()
		return m, nil

	case SnapshotMsg:
		return m.handleSnapshot(msg)

	case RefreshTickMsg:
		return m, SnapshotCmd(m.src)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m *Model) handleSnapshot(msg SnapshotMsg) (tea.Model, tea.Cmd) {
	var next tea.Cmd
	if iv := m.src.Interval(); iv > 0 {
		next = RefreshTickCmd(iv)
	}
	if msg.Err != nil {
		m.lastErr = msg.Err
		m.log.Warn("snapshot failed", "source", msg.Source, "err", msg.Err)
		return m, next
	}
	m.lastErr = nil
	m.rows = msg.Rows
	if m.selected >= len(m.rows) {
		m.selected = len(m.rows) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
	m.g.SetDataset(m.rows)
	return m, next
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.g.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.moveSelection(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveSelection(1)
	case key.Matches(msg, m.keys.PageUp):
		m.moveSelection(-m.pageSize())
	case key.Matches(msg, m.keys.PageDown):
		m.moveSelection(m.pageSize())
	case key.Matches(msg, m.keys.Home):
		m.moveSelectionTo(0, -1)
	case key.Matches(msg, m.keys.End):
		m.moveSelectionTo(len(m.rows)-1, 1)

	case key.Matches(msg, m.keys.Center):
		m.offset = m.g.ScrollToIndex(m.selected, grid.AlignCenter)

	case key.Matches(msg, m.keys.Mode):
		return m, m.toggleMode()

	case key.Matches(msg, m.keys.Theme):
		m.nextTheme()

	case key.Matches(msg, m.keys.Refresh):
		return m, SnapshotCmd(m.src)
	}
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.scrollBy(-3)
		return m, nil
	case tea.MouseButtonWheelDown:
		m.scrollBy(3)
		return m, nil
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return m, nil
		}
		start := m.g.Surface().(*patch.TermSurface).Start()
		count := m.g.Surface().(*patch.TermSurface).WindowLen()
		for i := start; i < start+count; i++ {
			z := m.zones.Get(rowZoneID(i))
			if z != nil && z.InBounds(msg) {
				m.selected = i
				m.repaint()
				break
			}
		}
	}
	return m, nil
}

// moveSelection moves the selection by delta rows and keeps it on screen.
func (m *Model) moveSelection(delta int) {
	m.moveSelectionTo(m.selected+delta, delta)
}

func (m *Model) moveSelectionTo(sel, direction int) {
	if len(m.rows) == 0 {
		return
	}
	if sel < 0 {
		sel = 0
	}
	if sel >= len(m.rows) {
		sel = len(m.rows) - 1
	}
	if sel == m.selected {
		return
	}
	m.selected = sel
	m.ensureVisible(direction)
	m.repaint()
}

// ensureVisible scrolls the minimum amount that brings the selection into
// the viewport.
func (m *Model) ensureVisible(direction int) {
	if m.mode == grid.ModeTable {
		rowH := m.cfg.Grid.RowHeight
		if rowH <= 0 {
			rowH = 1
		}
		vis := float64(m.bodyRows())
		top := float64(m.selected) * rowH
		bottom := top + rowH
		switch {
		case top < m.offset:
			m.offset = top
		case bottom > m.offset+vis:
			m.offset = bottom - vis
		default:
			return
		}
		m.g.NotifyScroll(m.offset)
		return
	}
	if direction < 0 {
		m.offset = m.g.ScrollToIndex(m.selected, grid.AlignStart)
	} else {
		m.offset = m.g.ScrollToIndex(m.selected, grid.AlignEnd)
	}
}

// scrollBy scrolls by delta rows without moving the selection.
func (m *Model) scrollBy(delta int) {
	unit := m.cfg.Grid.RowHeight
	if m.mode == grid.ModeCards || unit <= 0 {
		unit = m.cfg.Grid.EstimatedCardHeight
		if unit <= 0 {
			unit = 1
		}
	}
	m.offset += float64(delta) * unit
	if m.offset < 0 {
		m.offset = 0
	}
	m.g.NotifyScroll(m.offset)
}

// toggleMode rebuilds the widget in the other layout mode.
func (m *Model) toggleMode() tea.Cmd {
	next := grid.ModeTable
	if m.mode == grid.ModeTable {
		next = grid.ModeCards
	}
	g, err := m.buildGrid(next)
	if err != nil {
		m.lastErr = err
		return nil
	}
	m.g.Close()
	m.mode = next
	m.g = g
	m.offset = 0
	m.g.SetDataset(m.rows)
	if m.width > 0 {
		m.g.Resize(m.width, m.bodyRows())
		m.cards.SetLayout(m.g.Layout())
	}
	return nil
}

// nextTheme cycles through the registered themes.
func (m *Model) nextTheme() {
	names := theme.Names()
	if len(names) == 0 {
		return
	}
	idx := 0
	for i, n := range names {
		if n == m.themeName {
			idx = i
			break
		}
	}
	m.themeName = names[(idx+1)%len(names)]
	m.th = theme.Get(m.themeName)
	m.table = render.NewTable(m.src.Columns(), m.th)
	m.table.SetWidth(m.width)
	m.cards = render.NewCards(m.th)
	m.cards.SetLayout(m.g.Layout())
	m.repaint()
}

// repaint forces the current window to re-render with unchanged geometry.
func (m *Model) repaint() {
	m.g.Repaint()
}

// pageSize is the number of rows in one viewport page.
func (m *Model) pageSize() int {
	n := m.bodyRows()
	if m.mode == grid.ModeTable && m.cfg.Grid.RowHeight > 1 {
		n = int(float64(n) / m.cfg.Grid.RowHeight)
	}
	if n < 1 {
		n = 1
	}
	return n
}

// bodyRows is the dataset viewport height in terminal rows.
func (m *Model) bodyRows() int {
	chrome := 1 // status bar
	if m.mode == grid.ModeTable {
		chrome += 2 // header + separator
	}
	n := m.height - chrome
	if n < 1 {
		n = 1
	}
	return n
}
