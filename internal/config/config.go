// Package config handles layered YAML configuration with environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all rolodex configuration.
type Config struct {
	Store  Store  `yaml:"store"`
	Export Export `yaml:"export"`
	Log    Log    `yaml:"log"`
	UI     UI     `yaml:"ui"`
	Stats  Stats  `yaml:"stats"`
}

// Store holds the contacts file settings.
type Store struct {
	Path string `yaml:"path"` // .json, or .yaml/.yml for YAML
}

// Export holds CSV export settings.
type Export struct {
	Dir string `yaml:"dir"`
}

// Log holds logger settings.
type Log struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console, json
	File   string `yaml:"file"`   // "" writes to stderr
}

// UI holds presentation settings.
type UI struct {
	Plain bool `yaml:"plain"` // Disable colour and the dashboard.
}

// Stats holds statistics settings.
type Stats struct {
	RecentDays int `yaml:"recent_days"` // Look-back for "recently updated".
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Store: Store{
			Path: "contacts_data.json",
		},
		Export: Export{
			Dir: ".",
		},
		Log: Log{
			Level:  "warn",
			Format: "console",
		},
		Stats: Stats{
			RecentDays: 7,
		},
	}
}

// LoadLayered loads config from multiple paths with increasing priority.
// Later paths override earlier ones. Missing files are skipped.
func LoadLayered(paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range paths {
		layer, err := loadLayer(path)
		if err != nil {
			return nil, err
		}
		if layer == nil {
			continue
		}
		cfg.merge(layer)
	}

	return &cfg, nil
}

// Validate checks that config values are usable.
func (c *Config) Validate() error {
	if c.Store.Path == "" {
		return errors.New("config: store.path cannot be empty")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return fmt.Errorf("config: log.level must be debug, info, warn or error, got %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "console", "json":
		// valid
	default:
		return fmt.Errorf("config: log.format must be \"console\" or \"json\", got %q", c.Log.Format)
	}
	if c.Stats.RecentDays <= 0 {
		return fmt.Errorf("config: stats.recent_days must be positive, got %d", c.Stats.RecentDays)
	}
	return nil
}

// ApplyEnv applies environment variable overrides to the config.
// Supported variables: ROLODEX_STORE, ROLODEX_EXPORT_DIR, ROLODEX_LOG_LEVEL,
// ROLODEX_LOG_FILE, ROLODEX_PLAIN.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("ROLODEX_STORE"); v != "" {
		c.Store.Path = v
	}
	if v := os.Getenv("ROLODEX_EXPORT_DIR"); v != "" {
		c.Export.Dir = v
	}
	if v := os.Getenv("ROLODEX_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("ROLODEX_LOG_FILE"); v != "" {
		c.Log.File = v
	}
	if v := os.Getenv("ROLODEX_PLAIN"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: invalid ROLODEX_PLAIN %q: %w", v, err)
		}
		c.UI.Plain = b
	}
	return nil
}

// rawConfig mirrors Config but uses pointers to distinguish set vs unset fields.
type rawConfig struct {
	Store  *rawStore  `yaml:"store"`
	Export *rawExport `yaml:"export"`
	Log    *rawLog    `yaml:"log"`
	UI     *rawUI     `yaml:"ui"`
	Stats  *rawStats  `yaml:"stats"`
}

type rawStore struct {
	Path *string `yaml:"path"`
}

type rawExport struct {
	Dir *string `yaml:"dir"`
}

type rawLog struct {
	Level  *string `yaml:"level"`
	Format *string `yaml:"format"`
	File   *string `yaml:"file"`
}

type rawUI struct {
	Plain *bool `yaml:"plain"`
}

type rawStats struct {
	RecentDays *int `yaml:"recent_days"`
}

// loadLayer reads a single config file into a rawConfig for selective merging.
// Returns nil if the file does not exist. Rejects unknown fields.
func loadLayer(path string) (*rawConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return nil, nil
	}

	var raw rawConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &raw, nil
}

// merge applies non-nil fields from a rawConfig layer onto this Config.
func (c *Config) merge(layer *rawConfig) {
	if layer.Store != nil && layer.Store.Path != nil {
		c.Store.Path = *layer.Store.Path
	}
	if layer.Export != nil && layer.Export.Dir != nil {
		c.Export.Dir = *layer.Export.Dir
	}
	if layer.Log != nil {
		if layer.Log.Level != nil {
			c.Log.Level = *layer.Log.Level
		}
		if layer.Log.Format != nil {
			c.Log.Format = *layer.Log.Format
		}
		if layer.Log.File != nil {
			c.Log.File = *layer.Log.File
		}
	}
	if layer.UI != nil && layer.UI.Plain != nil {
		c.UI.Plain = *layer.UI.Plain
	}
	if layer.Stats != nil && layer.Stats.RecentDays != nil {
		c.Stats.RecentDays = *layer.Stats.RecentDays
	}
}
