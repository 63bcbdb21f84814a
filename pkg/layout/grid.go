// Package layout derives render geometry for the gridline widget: the
// card-mode grid shape (columns per row and item width from container
// width) and table-mode column widths from declarative sizing rules.
//
// Both computations are pure functions of their inputs. The grid solver
// memoizes the last result so an unchanged layout never triggers downstream
// patch work.
package layout

// GridLayout describes the card-grid shape for a given container width.
type GridLayout struct {
	ColumnsPerRow int
	ItemWidth     int
	Gap           int
}

// GridSolver computes GridLayouts and remembers the last computation to
// suppress redundant work on repeat calls with identical inputs.
type GridSolver struct {
	lastWidth    int
	lastMinWidth int
	lastGap      int
	last         GridLayout
	valid        bool
}

// NewGridSolver returns an empty solver.
func NewGridSolver() *GridSolver {
	return &GridSolver{}
}

// Solve derives the grid layout for containerWidth. The changed result is
// false when the inputs match the previous call, letting callers skip
// re-patching entirely.
//
//	columnsPerRow = max(1, floor((w+gap) / (minItemWidth+gap)))
//	itemWidth     = floor((w - gap*(columnsPerRow-1)) / columnsPerRow)
func (s *GridSolver) Solve(containerWidth, minItemWidth, gap int) (l GridLayout, changed bool) {
	if minItemWidth < 1 {
		minItemWidth = 1
	}
	if gap < 0 {
		gap = 0
	}
	if containerWidth < 0 {
		containerWidth = 0
	}

	if s.valid && s.lastWidth == containerWidth && s.lastMinWidth == minItemWidth && s.lastGap == gap {
		return s.last, false
	}

	cols := (containerWidth + gap) / (minItemWidth + gap)
	if cols < 1 {
		cols = 1
	}
	itemWidth := (containerWidth - gap*(cols-1)) / cols
	if itemWidth < 0 {
		itemWidth = 0
	}

	l = GridLayout{ColumnsPerRow: cols, ItemWidth: itemWidth, Gap: gap}
	s.lastWidth, s.lastMinWidth, s.lastGap = containerWidth, minItemWidth, gap
	s.last, s.valid = l, true
	return l, true
}

// Invalidate clears the memo so the next Solve recomputes unconditionally.
func (s *GridSolver) Invalidate() {
	s.valid = false
}
