package config

import (
	"fmt"
	"time"

	"gitlab.com/tinyland/lab/gridline/pkg/virt"
)

// Config is the top-level gridline configuration.
type Config struct {
	General GeneralConfig `toml:"general" yaml:"general"`
	Grid    GridConfig    `toml:"grid" yaml:"grid"`
	Virt    VirtConfig    `toml:"virtualization" yaml:"virtualization"`
	Theme   ThemeConfig   `toml:"theme" yaml:"theme"`
	Source  SourceConfig  `toml:"source" yaml:"source"`
}

// GeneralConfig holds process-wide settings.
type GeneralConfig struct {
	LogLevel string `toml:"log_level" yaml:"log_level"`
}

// GridConfig holds the widget knobs exposed to users.
type GridConfig struct {
	// Mode is "table" or "cards".
	Mode string `toml:"mode" yaml:"mode"`
	// RowHeight is the uniform row height in table mode.
	RowHeight float64 `toml:"row_height" yaml:"row_height"`
	// EstimatedCardHeight seeds card-mode windowing before measurement.
	EstimatedCardHeight float64 `toml:"estimated_card_height" yaml:"estimated_card_height"`
	// Overscan is the number of extra items rendered beyond each viewport edge.
	Overscan int `toml:"overscan" yaml:"overscan"`
	// MinCardWidth is the narrowest acceptable card, in cells.
	MinCardWidth int `toml:"min_card_width" yaml:"min_card_width"`
	// Gap is the spacing between cards, in cells.
	Gap int `toml:"gap" yaml:"gap"`
}

// VirtConfig overrides the windowing thresholds. Zero values keep the
// defaults; these are tuning knobs, not correctness constants.
type VirtConfig struct {
	VeryLargeTotal  int      `toml:"very_large_total" yaml:"very_large_total"`
	UltraLargeTotal int      `toml:"ultra_large_total" yaml:"ultra_large_total"`
	Cooldown        Duration `toml:"cooldown" yaml:"cooldown"`
	CooldownUltra   Duration `toml:"cooldown_ultra" yaml:"cooldown_ultra"`
	CacheMaxEntries int      `toml:"cache_max_entries" yaml:"cache_max_entries"`
	CacheEvictBatch int      `toml:"cache_evict_batch" yaml:"cache_evict_batch"`
}

// ThemeConfig selects the color theme by name.
type ThemeConfig struct {
	Name string `toml:"name" yaml:"name"`
}

// SourceConfig selects the demo dataset.
type SourceConfig struct {
	// Kind is "synthetic" or "procs".
	Kind string `toml:"kind" yaml:"kind"`
	// Rows sizes the synthetic dataset.
	Rows int `toml:"rows" yaml:"rows"`
	// Refresh is the process-list refresh interval (procs only).
	Refresh Duration `toml:"refresh" yaml:"refresh"`
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() *Config {
	return &Config{
		General: GeneralConfig{LogLevel: "info"},
		Grid: GridConfig{
			Mode:                "table",
			RowHeight:           1,
			EstimatedCardHeight: 6,
			Overscan:            4,
			MinCardWidth:        24,
			Gap:                 1,
		},
		Theme: ThemeConfig{Name: "default"},
		Source: SourceConfig{
			Kind:    "synthetic",
			Rows:    100_000,
			Refresh: Duration{2 * time.Second},
		},
	}
}

// Validate rejects values that cannot be mapped onto the widget.
func (c *Config) Validate() error {
	switch c.Grid.Mode {
	case "table", "cards":
	default:
		return fmt.Errorf("grid.mode %q: must be \"table\" or \"cards\"", c.Grid.Mode)
	}
	switch c.Source.Kind {
	case "synthetic", "procs":
	default:
		return fmt.Errorf("source.kind %q: must be \"synthetic\" or \"procs\"", c.Source.Kind)
	}
	if c.Source.Rows < 0 {
		return fmt.Errorf("source.rows %d: must be non-negative", c.Source.Rows)
	}
	if c.Virt.VeryLargeTotal < 0 || c.Virt.UltraLargeTotal < 0 {
		return fmt.Errorf("virtualization thresholds must be non-negative")
	}
	return nil
}

// Tunables maps the override section onto the windowing defaults.
func (c *Config) Tunables() virt.Tunables {
	t := virt.DefaultTunables()
	if c.Virt.VeryLargeTotal > 0 {
		t.VeryLargeTotal = c.Virt.VeryLargeTotal
	}
	if c.Virt.UltraLargeTotal > 0 {
		t.UltraLargeTotal = c.Virt.UltraLargeTotal
	}
	if c.Virt.Cooldown.Duration > 0 {
		t.CooldownNormal = c.Virt.Cooldown.Duration
	}
	if c.Virt.CooldownUltra.Duration > 0 {
		t.CooldownUltraLarge = c.Virt.CooldownUltra.Duration
	}
	if c.Virt.CacheMaxEntries > 0 {
		t.CacheMaxEntries = c.Virt.CacheMaxEntries
	}
	if c.Virt.CacheEvictBatch > 0 {
		t.CacheEvictBatch = c.Virt.CacheEvictBatch
	}
	return t.Normalized()
}
