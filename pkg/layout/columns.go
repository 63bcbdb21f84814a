package layout

// ---------------------------------------------------------------------------
// Column alignment and sizing
// ---------------------------------------------------------------------------

// Align controls horizontal text alignment within a table cell.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// SizingKind discriminates the three column sizing strategies.
type SizingKind int

const (
	sizingFixed   SizingKind = iota
	sizingPercent            // percentage of total width
	sizingFill               // takes remaining space
)

// Sizing describes how a column's width is computed.
type Sizing struct {
	Kind  SizingKind
	Value int // width for Fixed, percentage 1-100 for Percent, unused for Fill
}

// SizingFixed returns a Sizing that allocates exactly width characters.
func SizingFixed(width int) Sizing {
	if width < 0 {
		width = 0
	}
	return Sizing{Kind: sizingFixed, Value: width}
}

// SizingPercent returns a Sizing that allocates pct% of available width.
func SizingPercent(pct int) Sizing {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return Sizing{Kind: sizingPercent, Value: pct}
}

// SizingFill returns a Sizing that shares remaining space equally with
// other Fill columns.
func SizingFill() Sizing {
	return Sizing{Kind: sizingFill}
}

// Column defines a single table-mode column.
type Column struct {
	Title    string
	Sizing   Sizing
	Align    Align
	MinWidth int
}

// ---------------------------------------------------------------------------
// Width resolution (multi-pass)
// ---------------------------------------------------------------------------

// ResolveWidths allocates totalWidth across cols. When separators is true,
// one character per column boundary is reserved first.
//
// Passes: fixed columns, then percentage columns, then Fill columns share
// the remainder equally; MinWidth deficits steal from Fill columns right to
// left; finally overflow is trimmed from the rightmost Fill.
func ResolveWidths(cols []Column, totalWidth int, separators bool) []int {
	n := len(cols)
	if n == 0 {
		return nil
	}

	widths := make([]int, n)

	sepOverhead := 0
	if separators {
		sepOverhead = n - 1
	}
	available := totalWidth - sepOverhead
	if available < 0 {
		available = 0
	}

	// Pass 1: fixed columns.
	remaining := available
	for i, col := range cols {
		if col.Sizing.Kind == sizingFixed {
			w := col.Sizing.Value
			if w > remaining {
				w = remaining
			}
			widths[i] = w
			remaining -= w
		}
	}

	// Pass 2: percentage columns.
	for i, col := range cols {
		if col.Sizing.Kind == sizingPercent {
			w := (available * col.Sizing.Value) / 100
			if w > remaining {
				w = remaining
			}
			widths[i] = w
			remaining -= w
		}
	}

	// Pass 3: Fill columns share remaining space, remainder to the leftmost.
	fillCount := 0
	for _, col := range cols {
		if col.Sizing.Kind == sizingFill {
			fillCount++
		}
	}
	if fillCount > 0 && remaining > 0 {
		each := remaining / fillCount
		extra := remaining % fillCount
		filled := 0
		for i, col := range cols {
			if col.Sizing.Kind == sizingFill {
				w := each
				if filled < extra {
					w++
				}
				widths[i] = w
				filled++
			}
		}
	}

	// Pass 4: enforce MinWidth, stealing from Fill columns right to left.
	for i, col := range cols {
		if col.MinWidth > 0 && widths[i] < col.MinWidth {
			deficit := col.MinWidth - widths[i]
			widths[i] = col.MinWidth
			for j := n - 1; j >= 0 && deficit > 0; j-- {
				if j == i || cols[j].Sizing.Kind != sizingFill {
					continue
				}
				canSteal := widths[j] - cols[j].MinWidth
				if canSteal <= 0 {
					continue
				}
				steal := deficit
				if steal > canSteal {
					steal = canSteal
				}
				widths[j] -= steal
				deficit -= steal
			}
		}
	}

	// Pass 5: trim overflow from the rightmost Fill columns.
	totalUsed := 0
	for _, w := range widths {
		totalUsed += w
	}
	if totalUsed > available {
		excess := totalUsed - available
		for i := n - 1; i >= 0 && excess > 0; i-- {
			if cols[i].Sizing.Kind != sizingFill {
				continue
			}
			canCut := widths[i]
			if cols[i].MinWidth > 0 {
				canCut = widths[i] - cols[i].MinWidth
			}
			if canCut <= 0 {
				continue
			}
			cut := excess
			if cut > canCut {
				cut = canCut
			}
			widths[i] -= cut
			excess -= cut
		}
	}

	return widths
}
