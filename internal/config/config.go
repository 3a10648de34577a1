package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultTickInterval = 100 * time.Millisecond
	MinTickInterval     = 10 * time.Millisecond
)

// Config is the on-disk configuration of memtree.
type Config struct {
	Exclude         []string `yaml:"exclude"`
	TickInterval    string   `yaml:"tick_interval"`
	MaxNodesPerTick int      `yaml:"max_nodes_per_tick"`
}

func Default() *Config {
	return &Config{
		TickInterval: DefaultTickInterval.String(),
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/memtree/config.yaml, falling back to
// ~/.config when XDG_CONFIG_HOME is unset.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "memtree", "config.yaml")
}

// Load reads the YAML file at path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.TickInterval == "" {
		cfg.TickInterval = DefaultTickInterval.String()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	d, err := time.ParseDuration(c.TickInterval)
	if err != nil {
		return fmt.Errorf("tick_interval: %w", err)
	}
	if d < MinTickInterval {
		return fmt.Errorf("tick_interval %s is below %s", d, MinTickInterval)
	}
	if c.MaxNodesPerTick < 0 {
		return fmt.Errorf("max_nodes_per_tick must not be negative")
	}
	return nil
}

// Tick returns the parsed drain interval.
func (c *Config) Tick() time.Duration {
	d, err := time.ParseDuration(c.TickInterval)
	if err != nil || d < MinTickInterval {
		return DefaultTickInterval
	}
	return d
}
