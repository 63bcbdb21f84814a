package layout

import "testing"

// --- GridSolver ---

func TestGridSolverBasic(t *testing.T) {
	s := NewGridSolver()
	l, changed := s.Solve(100, 30, 2)
	if !changed {
		t.Fatal("first Solve must report changed")
	}
	// cols = floor((100+2)/(30+2)) = 3, itemWidth = floor((100-4)/3) = 32
	if l.ColumnsPerRow != 3 {
		t.Errorf("cols=%d, want 3", l.ColumnsPerRow)
	}
	if l.ItemWidth != 32 {
		t.Errorf("itemWidth=%d, want 32", l.ItemWidth)
	}
}

func TestGridSolverMemoizes(t *testing.T) {
	s := NewGridSolver()
	l1, _ := s.Solve(120, 40, 1)
	l2, changed := s.Solve(120, 40, 1)
	if changed {
		t.Error("identical inputs must not report changed")
	}
	if l1 != l2 {
		t.Errorf("memoized result differs: %v vs %v", l1, l2)
	}
	_, changed = s.Solve(121, 40, 1)
	if !changed {
		t.Error("new width must report changed")
	}
}

func TestGridSolverInvalidate(t *testing.T) {
	s := NewGridSolver()
	s.Solve(120, 40, 1)
	s.Invalidate()
	if _, changed := s.Solve(120, 40, 1); !changed {
		t.Error("Solve after Invalidate must recompute")
	}
}

func TestGridSolverNarrowContainer(t *testing.T) {
	s := NewGridSolver()
	l, _ := s.Solve(10, 40, 2)
	if l.ColumnsPerRow != 1 {
		t.Errorf("cols=%d, want 1 for container narrower than min item width", l.ColumnsPerRow)
	}
	if l.ItemWidth != 10 {
		t.Errorf("itemWidth=%d, want 10", l.ItemWidth)
	}
}

func TestGridSolverClampsInputs(t *testing.T) {
	s := NewGridSolver()
	l, _ := s.Solve(-5, 0, -3)
	if l.ColumnsPerRow < 1 || l.ItemWidth < 0 || l.Gap != 0 {
		t.Errorf("unsafe layout from malformed inputs: %+v", l)
	}
}

// --- ResolveWidths ---

func TestResolveWidthsFixed(t *testing.T) {
	cols := []Column{
		{Title: "A", Sizing: SizingFixed(10)},
		{Title: "B", Sizing: SizingFixed(20)},
	}
	w := ResolveWidths(cols, 40, true)
	if w[0] != 10 || w[1] != 20 {
		t.Errorf("got %v, want [10 20]", w)
	}
}

func TestResolveWidthsPercent(t *testing.T) {
	cols := []Column{
		{Title: "A", Sizing: SizingPercent(50)},
		{Title: "B", Sizing: SizingPercent(50)},
	}
	// totalWidth=41 -> available = 40 after one separator.
	w := ResolveWidths(cols, 41, true)
	if w[0] != 20 || w[1] != 20 {
		t.Errorf("got %v, want [20 20]", w)
	}
}

func TestResolveWidthsFillShares(t *testing.T) {
	cols := []Column{
		{Title: "A", Sizing: SizingFill()},
		{Title: "B", Sizing: SizingFixed(9)},
		{Title: "C", Sizing: SizingFill()},
	}
	// totalWidth=43 -> available 41, fills share 32: 16 each.
	w := ResolveWidths(cols, 43, true)
	if w[1] != 9 {
		t.Errorf("fixed col got %d, want 9", w[1])
	}
	if w[0]+w[2] != 32 {
		t.Errorf("fills got %d+%d, want sum 32", w[0], w[2])
	}
}

func TestResolveWidthsMinWidthSteals(t *testing.T) {
	cols := []Column{
		{Title: "A", Sizing: SizingFixed(2), MinWidth: 8},
		{Title: "B", Sizing: SizingFill()},
	}
	w := ResolveWidths(cols, 21, true)
	if w[0] != 8 {
		t.Errorf("min width not enforced: got %d, want 8", w[0])
	}
	if w[0]+w[1] > 20 {
		t.Errorf("total %d exceeds available 20", w[0]+w[1])
	}
}

func TestResolveWidthsEmpty(t *testing.T) {
	if w := ResolveWidths(nil, 80, true); w != nil {
		t.Errorf("got %v, want nil for no columns", w)
	}
}
