// Package config provides file-based configuration for gridline. TOML is
// the primary format; a YAML file is accepted at the same search paths for
// hosts that standardize on it.
package config

import (
	"fmt"
	"time"
)

// Duration wraps time.Duration with text-friendly parsing so config files
// can say "150ms" or "2s" instead of nanosecond integers.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler for TOML and YAML.
func (d *Duration) UnmarshalText(text []byte) error {
	s := string(text)
	if s == "" {
		d.Duration = 0
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	if parsed < 0 {
		return fmt.Errorf("negative duration %q not allowed", s)
	}
	d.Duration = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}
