// Package config handles configuration loading, validation, and management
// for the progress ring demo.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Version is the current configuration schema version.
const Version = 1

// Config holds the complete demo configuration.
type Config struct {
	// Version is the configuration schema version.
	Version int `toml:"version" json:"version" yaml:"version"`

	// Window configuration for the GUI.
	Window WindowConfig `toml:"window" json:"window" yaml:"window"`

	// Logging configuration.
	Logging LoggingConfig `toml:"logging" json:"logging" yaml:"logging"`

	// Rings are the progress rings, laid out left to right.
	Rings []RingConfig `toml:"ring" json:"rings" yaml:"rings"`

	// Updates are applied when the Update button is clicked.
	Updates []UpdateAction `toml:"update" json:"updates" yaml:"updates"`

	mu sync.RWMutex `toml:"-" json:"-" yaml:"-"`
}

// WindowConfig holds the demo window settings.
type WindowConfig struct {
	Title  string `toml:"title" json:"title" yaml:"title"`
	Width  int    `toml:"width" json:"width" yaml:"width"`
	Height int    `toml:"height" json:"height" yaml:"height"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum level: debug, info, warn, error.
	Level string `toml:"level" json:"level" yaml:"level"`

	// Format is text or json.
	Format string `toml:"format" json:"format" yaml:"format"`

	// Output is stdout, stderr or file.
	Output string `toml:"output" json:"output" yaml:"output"`

	// FilePath is used when Output is file.
	FilePath string `toml:"file_path" json:"file_path" yaml:"file_path"`
}

// RingConfig describes one progress ring.
type RingConfig struct {
	Name string `toml:"name" json:"name,omitempty" yaml:"name,omitempty"`

	// Size is the side length of the square drawing area in pixels.
	Size int `toml:"size" json:"size" yaml:"size"`

	// Thickness is the ring thickness in pixels.
	Thickness int `toml:"thickness" json:"thickness" yaml:"thickness"`

	// StartAt is the requested start offset in degrees.
	StartAt int `toml:"start_at" json:"start_at" yaml:"start_at"`

	Clockwise bool    `toml:"clockwise" json:"clockwise" yaml:"clockwise"`
	Value     float64 `toml:"value" json:"value" yaml:"value"`

	// Label replaces the live percentage when set.
	Label *string `toml:"label" json:"label,omitempty" yaml:"label,omitempty"`

	BackgroundColor string `toml:"background_color" json:"background_color" yaml:"background_color"`
	PercentageColor string `toml:"percentage_color" json:"percentage_color" yaml:"percentage_color"`
}

// DisplayName returns the ring's name, or "ring-N" for an unnamed ring at
// the 1-based position n.
func (r RingConfig) DisplayName(n int) string {
	if r.Name != "" {
		return r.Name
	}
	return fmt.Sprintf("ring-%d", n)
}

// UpdateAction sets a ring's value.
type UpdateAction struct {
	// Ring is the 1-based ring index.
	Ring  int     `toml:"ring" json:"ring" yaml:"ring"`
	Value float64 `toml:"value" json:"value" yaml:"value"`
}

func label(s string) *string { return &s }

// DefaultRings returns the five demo rings.
func DefaultRings() []RingConfig {
	return []RingConfig{
		{
			Size: 200, Thickness: 5, StartAt: 0, Clockwise: true, Value: 20,
			BackgroundColor: "#555657", PercentageColor: "#ffffff",
		},
		{
			Size: 200, Thickness: 100, StartAt: 0, Clockwise: true, Value: 100,
			Label:           label("100% full"),
			BackgroundColor: "#555657", PercentageColor: "#ff0000",
		},
		{
			Size: 200, Thickness: 5, StartAt: 25, Clockwise: true, Value: 50,
			Label:           label("50% starting from right"),
			BackgroundColor: "#555657", PercentageColor: "#e834bc",
		},
		{
			Size: 200, Thickness: 5, StartAt: 0, Clockwise: false, Value: 46,
			Label:           label("46% counter clockwise"),
			BackgroundColor: "#555657", PercentageColor: "#008423",
		},
		{
			Size: 200, Thickness: 5, StartAt: 0, Clockwise: false, Value: 0,
			BackgroundColor: "#555657", PercentageColor: "#2300c1",
		},
	}
}

// DefaultUpdates returns the actions bound to the Update button.
func DefaultUpdates() []UpdateAction {
	return []UpdateAction{
		{Ring: 1, Value: 64},
		{Ring: 5, Value: 25},
	}
}

// DefaultConfig returns a configuration reproducing the demo.
func DefaultConfig() *Config {
	return &Config{
		Version: Version,
		Window: WindowConfig{
			Title:  "Circle progress bar",
			Width:  100,
			Height: 600,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "text",
			Output:   "stderr",
			FilePath: filepath.Join(PlatformLogDir(), "progressring.log"),
		},
		Rings:   DefaultRings(),
		Updates: DefaultUpdates(),
	}
}

// ConfigPath returns the configuration file path, honouring
// PROGRESSRING_CONFIG.
func ConfigPath() string {
	if v := os.Getenv("PROGRESSRING_CONFIG"); v != "" {
		return v
	}
	return filepath.Join(PlatformConfigDir(), "config.toml")
}

// Load reads configuration from path, or ConfigPath when path is empty.
// A missing file yields the defaults. TOML, JSON and YAML are selected by
// extension.
func Load(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}
	cfg, err := loadConfigFromFile(path)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnvOverrides()
	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	return ValidateConfig(c)
}

// ApplyEnvOverrides applies PROGRESSRING_* environment overrides.
func (c *Config) ApplyEnvOverrides() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if v := os.Getenv("PROGRESSRING_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("PROGRESSRING_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv("PROGRESSRING_LOG_PATH"); v != "" {
		c.Logging.Output = "file"
		c.Logging.FilePath = v
	}
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	c.mu.RLock()
	defer c.mu.RUnlock()

	clone := &Config{
		Version: c.Version,
		Window:  c.Window,
		Logging: c.Logging,
		Updates: append([]UpdateAction(nil), c.Updates...),
	}
	clone.Rings = make([]RingConfig, len(c.Rings))
	for i, r := range c.Rings {
		if r.Label != nil {
			r.Label = label(*r.Label)
		}
		clone.Rings[i] = r
	}
	return clone
}
