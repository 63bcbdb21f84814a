package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Load reads configuration from the standard config path.
// Search order:
//  1. $XDG_CONFIG_HOME/gridline/config.toml
//  2. $XDG_CONFIG_HOME/gridline/config.yaml
//  3. ~/.config/gridline/config.toml
//  4. ~/.config/gridline/config.yaml
//
// If no file exists, returns DefaultConfig() with env overrides applied.
func Load() (*Config, error) {
	for _, p := range configSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return LoadFromFile(p)
		}
	}
	cfg := DefaultConfig()
	applyEnvOverrides(cfg)
	return cfg, cfg.Validate()
}

// LoadFromFile reads configuration from a specific file path. The format
// is chosen by extension: .yaml/.yml decode as YAML, everything else as
// TOML.
func LoadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			applyEnvOverrides(cfg)
			return cfg, cfg.Validate()
		}
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadYAML(f)
	default:
		return LoadTOML(f)
	}
}

// LoadTOML decodes TOML configuration from r over the defaults.
func LoadTOML(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.NewDecoder(r).Decode(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	applyEnvOverrides(cfg)
	return cfg, cfg.Validate()
}

// LoadYAML decodes YAML configuration from r over the defaults.
func LoadYAML(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.NewDecoder(r).Decode(cfg); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	applyEnvOverrides(cfg)
	return cfg, cfg.Validate()
}

// applyEnvOverrides checks environment variables and overrides config
// values. Env wins over file.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GRIDLINE_THEME"); v != "" {
		cfg.Theme.Name = v
	}
	if v := os.Getenv("GRIDLINE_MODE"); v != "" {
		cfg.Grid.Mode = v
	}
	if v := os.Getenv("GRIDLINE_SOURCE"); v != "" {
		cfg.Source.Kind = v
	}
	if v := os.Getenv("GRIDLINE_LOG_LEVEL"); v != "" {
		cfg.General.LogLevel = v
	}
}

// configSearchPaths returns the ordered list of config file paths to try.
func configSearchPaths() []string {
	home, _ := os.UserHomeDir()
	var paths []string

	xdg := xdgConfigHome(home)
	paths = append(paths,
		filepath.Join(xdg, "gridline", "config.toml"),
		filepath.Join(xdg, "gridline", "config.yaml"),
	)

	// If XDG_CONFIG_HOME was explicitly set, also try the fallback default.
	defaultXDG := filepath.Join(home, ".config")
	if xdg != defaultXDG {
		paths = append(paths,
			filepath.Join(defaultXDG, "gridline", "config.toml"),
			filepath.Join(defaultXDG, "gridline", "config.yaml"),
		)
	}

	return paths
}

// xdgConfigHome returns XDG_CONFIG_HOME or ~/.config as fallback.
func xdgConfigHome(home string) string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	return filepath.Join(home, ".config")
}
