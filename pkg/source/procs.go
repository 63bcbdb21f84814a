package source

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v4/process"

	"gitlab.com/tinyland/lab/gridline/pkg/layout"
)

// Procs snapshots the live process table via gopsutil. Per-process reads
// that fail (the process exited mid-scan, or access is denied) are skipped
// rather than failing the whole snapshot.
type Procs struct {
	refresh time.Duration

	mu      sync.Mutex
	healthy bool
}

// NewProcs creates a process-list source refreshing every refresh. A
// non-positive refresh falls back to 2s.
func NewProcs(refresh time.Duration) *Procs {
	if refresh <= 0 {
		refresh = 2 * time.Second
	}
	return &Procs{refresh: refresh, healthy: true}
}

func (p *Procs) Name() string            { return "procs" }
func (p *Procs) Interval() time.Duration { return p.refresh }

func (p *Procs) Healthy() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.healthy
}

func (p *Procs) setHealthy(h bool) {
	p.mu.Lock()
	p.healthy = h
	p.mu.Unlock()
}

// Columns describes the process record layout.
func (p *Procs) Columns() []layout.Column {
	return []layout.Column{
		{Title: "PID", Sizing: layout.SizingFixed(8), Align: layout.AlignRight},
		{Title: "NAME", Sizing: layout.SizingFill(), MinWidth: 16},
		{Title: "CPU%", Sizing: layout.SizingFixed(7), Align: layout.AlignRight},
		{Title: "MEM%", Sizing: layout.SizingFixed(7), Align: layout.AlignRight},
		{Title: "STATE", Sizing: layout.SizingFixed(8)},
	}
}

// Snapshot reads the current process table, sorted by CPU usage descending
// so the interesting rows surface first.
func (p *Procs) Snapshot(ctx context.Context) (Rows, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		p.setHealthy(false)
		return nil, fmt.Errorf("procs: list processes: %w", err)
	}

	type record struct {
		row Row
		cpu float64
	}
	records := make([]record, 0, len(procs))
	for _, proc := range procs {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		name, err := proc.NameWithContext(ctx)
		if err != nil {
			continue // exited mid-scan
		}
		cpu, _ := proc.CPUPercentWithContext(ctx)
		mem, _ := proc.MemoryPercentWithContext(ctx)
		status, _ := proc.StatusWithContext(ctx)
		records = append(records, record{
			row: procRow(proc.Pid, name, cpu, float64(mem), firstOf(status)),
			cpu: cpu,
		})
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].cpu > records[j].cpu
	})

	rows := make(Rows, len(records))
	for i, rec := range records {
		rows[i] = rec.row
	}
	p.setHealthy(true)
	return rows, nil
}

// procRow formats one process into a Row matching Columns.
func procRow(pid int32, name string, cpu, mem float64, state string) Row {
	return Row{
		ID: fmt.Sprintf("pid-%d", pid),
		Cells: []string{
			fmt.Sprintf("%d", pid),
			name,
			fmt.Sprintf("%.1f", cpu),
			fmt.Sprintf("%.1f", mem),
			state,
		},
	}
}

func firstOf(ss []string) string {
	if len(ss) == 0 {
		return "?"
	}
	return ss[0]
}
