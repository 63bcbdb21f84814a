package source

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"gitlab.com/tinyland/lab/gridline/pkg/layout"
)

var (
	synthNames = []string{
		"api-gateway", "ingest", "billing", "search", "relay", "scheduler",
		"archiver", "notifier", "resolver", "exporter", "frontier", "mirror",
	}
	synthRegions = []string{"fra1", "nyc3", "sfo2", "lon1", "sgp1", "ams3"}
	synthStates  = []string{"running", "degraded", "stopped", "starting"}
)

// Synthetic generates a deterministic pseudo-random dataset of n service
// records. The same n always yields the same rows, so scroll positions and
// screenshots are reproducible across runs.
type Synthetic struct {
	n int
}

// NewSynthetic creates a synthetic source of n rows. Negative n is treated
// as zero.
func NewSynthetic(n int) *Synthetic {
	if n < 0 {
		n = 0
	}
	return &Synthetic{n: n}
}

func (s *Synthetic) Name() string            { return "synthetic" }
func (s *Synthetic) Interval() time.Duration { return 0 }
func (s *Synthetic) Healthy() bool           { return true }

// Columns describes the synthetic record layout.
func (s *Synthetic) Columns() []layout.Column {
	return []layout.Column{
		{Title: "ID", Sizing: layout.SizingFixed(10), Align: layout.AlignRight},
		{Title: "SERVICE", Sizing: layout.SizingFill(), MinWidth: 12},
		{Title: "REGION", Sizing: layout.SizingFixed(8)},
		{Title: "STATE", Sizing: layout.SizingFixed(10)},
		{Title: "LATENCY", Sizing: layout.SizingFixed(9), Align: layout.AlignRight},
	}
}

// Snapshot materializes all n rows. Generation is cheap enough to be done
// eagerly even for hundreds of thousands of rows; the grid will only ever
// render a window of them.
func (s *Synthetic) Snapshot(ctx context.Context) (Rows, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	// Fixed seed: the dataset must be identical on every run.
	rng := rand.New(rand.NewSource(int64(s.n)))
	rows := make(Rows, s.n)
	for i := range rows {
		name := fmt.Sprintf("%s-%02d", synthNames[rng.Intn(len(synthNames))], rng.Intn(100))
		rows[i] = Row{
			ID: fmt.Sprintf("svc-%06d", i),
			Cells: []string{
				fmt.Sprintf("%d", i),
				name,
				synthRegions[rng.Intn(len(synthRegions))],
				synthStates[rng.Intn(len(synthStates))],
				fmt.Sprintf("%dms", 1+rng.Intn(400)),
			},
		}
	}
	return rows, nil
}
