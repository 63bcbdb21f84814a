package patch

import (
	"strings"
	"sync"
)

// TermSurface is a string-backed Surface for terminal rendering. The
// window holds one rendered string per materialized item; the spacers are
// tracked as extents (terminal rows) and rendered as blank filler so the
// scroll geometry of the full dataset is preserved.
type TermSurface struct {
	mu       sync.Mutex
	leading  float64
	trailing float64
	start    int
	window   []Fragment

	// swaps / slotWrites count the two write paths, mostly for tests and
	// the metrics readout.
	swaps      int
	slotWrites int
}

// NewTermSurface returns an empty surface.
func NewTermSurface() *TermSurface {
	return &TermSurface{}
}

// SetSpacers records the extents of the skipped leading/trailing items.
func (s *TermSurface) SetSpacers(leading, trailing float64) {
	s.mu.Lock()
	if leading < 0 {
		leading = 0
	}
	if trailing < 0 {
		trailing = 0
	}
	s.leading, s.trailing = leading, trailing
	s.mu.Unlock()
}

// ReplaceWindow swaps the entire visible window in one operation.
func (s *TermSurface) ReplaceWindow(start int, frags []Fragment) {
	s.mu.Lock()
	s.start = start
	s.window = append(s.window[:0], frags...)
	s.swaps++
	s.mu.Unlock()
}

// ResizeWindow grows or shrinks the window to n slots in place.
func (s *TermSurface) ResizeWindow(n int) {
	s.mu.Lock()
	if n < 0 {
		n = 0
	}
	if n <= cap(s.window) {
		s.window = s.window[:n]
	} else {
		grown := make([]Fragment, n)
		copy(grown, s.window)
		s.window = grown
	}
	s.mu.Unlock()
}

// ReplaceSlot writes one window position in place.
func (s *TermSurface) ReplaceSlot(pos int, frag Fragment) {
	s.mu.Lock()
	if pos >= 0 && pos < len(s.window) {
		if pos == 0 {
			s.start = frag.Index
		}
		s.window[pos] = frag
		s.slotWrites++
	}
	s.mu.Unlock()
}

// WindowLen returns the number of materialized slots.
func (s *TermSurface) WindowLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.window)
}

// Start returns the absolute index of the first materialized item.
func (s *TermSurface) Start() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.start
}

// Spacers returns the current leading and trailing spacer extents.
func (s *TermSurface) Spacers() (leading, trailing float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.leading, s.trailing
}

// Swaps and SlotWrites expose the write-path counters.
func (s *TermSurface) Swaps() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.swaps
}

func (s *TermSurface) SlotWrites() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.slotWrites
}

// View joins the window contents. Spacer extents are not expanded here;
// the widget slices the window against its viewport instead.
func (s *TermSurface) View() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	parts := make([]string, 0, len(s.window))
	for _, f := range s.window {
		parts = append(parts, f.Content)
	}
	return strings.Join(parts, "\n")
}

// Window returns a copy of the materialized fragments.
func (s *TermSurface) Window() []Fragment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Fragment, len(s.window))
	copy(out, s.window)
	return out
}
