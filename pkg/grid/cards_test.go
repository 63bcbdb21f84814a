package grid

import (
	"fmt"
	"strings"
	"testing"

	"gitlab.com/tinyland/lab/gridline/pkg/patch"
)

// cardData yields items whose rendered height varies by index.
type cardData struct{ n int }

func (d cardData) Len() int     { return d.n }
func (d cardData) At(i int) any { return fmt.Sprintf("card %d", i) }

func cardRenderer() ItemRenderer {
	return ItemRendererFunc(func(item any, i int) patch.Fragment {
		s, _ := item.(string)
		lines := 3 + i%4 // heights 3..6
		return patch.Fragment{
			Content: strings.Repeat(s+"\n", lines-1) + s,
			Extent:  float64(lines),
		}
	})
}

func newCardHarness(t *testing.T, n int) *harness {
	t.Helper()
	return newHarness(t, Config{
		Mode:     ModeCards,
		Dataset:  cardData{n: n},
		Renderer: cardRenderer(),
		Options: Options{
			EstimatedItemExtent: 5,
			Gap:                 1,
			MinItemWidth:        20,
			Overscan:            2,
		},
	})
}

func TestCardResizeSolvesLayout(t *testing.T) {
	h := newCardHarness(t, 500)
	h.grid.Resize(100, 40)
	h.cycle(t)

	lay := h.grid.Layout()
	// (100+1)/(20+1) = 4 columns, width (100-3)/4 = 24.
	if lay.ColumnsPerRow != 4 {
		t.Fatalf("columns = %d, want 4", lay.ColumnsPerRow)
	}
	if lay.ItemWidth != 24 {
		t.Errorf("item width = %d, want 24", lay.ItemWidth)
	}

	h.grid.Resize(40, 40)
	h.cycle(t)
	if lay := h.grid.Layout(); lay.ColumnsPerRow != 1 {
		t.Errorf("narrow container: columns = %d, want 1", lay.ColumnsPerRow)
	}
}

func TestCardHeightsFeedEstimate(t *testing.T) {
	h := newCardHarness(t, 500)
	h.grid.Resize(100, 40)

	before := h.grid.Metrics().CacheSize
	if before != 0 {
		t.Fatalf("cache not empty before first paint: %d", before)
	}
	h.cycle(t) // paint, then cooldown writes measured extents back

	m := h.grid.Metrics()
	if m.CacheSize == 0 {
		t.Fatal("cooldown did not write measured extents to the cache")
	}
	if m.CacheSize != m.RenderCount {
		t.Errorf("cache size %d != rendered %d", m.CacheSize, m.RenderCount)
	}
}

func TestCardWindowCoversViewport(t *testing.T) {
	h := newCardHarness(t, 500)
	h.grid.Resize(100, 40)
	h.cycle(t)

	if h.surface.WindowLen() == 0 {
		t.Fatal("no cards materialized")
	}
	if h.surface.WindowLen() >= 500 {
		t.Fatal("card mode materialized the whole dataset")
	}
	_, trail := h.surface.Spacers()
	if trail == 0 {
		t.Error("trailing spacer empty with most of the dataset off-screen")
	}
}

func TestCardScrollToIndexUsesRows(t *testing.T) {
	h := newCardHarness(t, 500)
	h.grid.Resize(100, 40)
	h.cycle(t)

	// 4 columns: items 100..103 share row 25.
	a := h.grid.ScrollToIndex(100, AlignStart)
	b := h.grid.ScrollToIndex(103, AlignStart)
	if a != b {
		t.Errorf("same-row items scrolled to different offsets: %v vs %v", a, b)
	}
	if a == 0 {
		t.Error("row 25 resolved to offset 0")
	}
}
