// Package config loads the framer command's JSON configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (
	appDir       = "framer"
	configFile   = "config.json"
	databaseFile = "frames.db"
)

// Config holds the command's settings.
// Fields may be loaded from a JSON file and overridden by command-line flags.
type Config struct {
	Debug bool `json:"debug"`

	// Rendering
	Interpolation  string `json:"interpolation"`
	AlphaThreshold int    `json:"alpha_threshold"`
	Workers        int    `json:"workers"`

	// Export
	Environment string `json:"environment"`
	OutputDir   string `json:"output_dir"`

	// Frame library
	Database  string `json:"database"`
	CacheSize int    `json:"cache_size"`
}

// DefaultConfig returns a Config populated with standard defaults.
// Database is left empty; DatabasePath resolves it.
func DefaultConfig() *Config {
	return &Config{
		Debug:          false,
		Interpolation:  "bilinear",
		AlphaThreshold: 50,
		Workers:        1,
		Environment:    "desktop",
		OutputDir:      ".",
		CacheSize:      16,
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	if c.Interpolation == "" {
		c.Interpolation = "bilinear"
	}
	if c.AlphaThreshold < 0 || c.AlphaThreshold > 255 {
		return fmt.Errorf("config: alpha_threshold %d out of range 0-255", c.AlphaThreshold)
	}
	if c.Workers < 0 {
		c.Workers = 0
	}
	switch c.Environment {
	case "":
		c.Environment = "desktop"
	case "desktop", "mobile":
	default:
		return fmt.Errorf("config: unknown environment %q", c.Environment)
	}
	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	if c.CacheSize <= 0 {
		c.CacheSize = 16
	}
	return nil
}

// DatabasePath returns the configured database path, or the default one
// under the XDG data home. Nothing is created on disk.
func (c *Config) DatabasePath() (string, error) {
	if c.Database != "" {
		return c.Database, nil
	}
	return filepath.Join(xdg.DataHome, appDir, databaseFile), nil
}

// SearchPath returns the first existing config file in the XDG config
// directories. It fails if there is none.
func SearchPath() (string, error) {
	return xdg.SearchConfigFile(filepath.Join(appDir, configFile))
}

// DefaultPath returns the config file location under the XDG config home,
// creating its directory. Use it for writing only.
func DefaultPath() (string, error) {
	return xdg.ConfigFile(filepath.Join(appDir, configFile))
}

// Load reads configuration from the given JSON file path. If the file does
// not exist it returns DefaultConfig(). On JSON error it returns defaults
// with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("config: %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return DefaultConfig(), err
	}
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format. An empty
// path means DefaultPath.
func (c *Config) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
