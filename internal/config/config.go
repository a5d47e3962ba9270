// Package config loads and saves the arcanim YAML settings file.
package config

import (
	"errors"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
	"periph.io/x/conn/v3/physic"

	"github.com/coreman2200/funtimes-arcanim/internal/clock"
	"github.com/coreman2200/funtimes-arcanim/internal/diagnostics"
)

type Server struct {
	Addr string `yaml:"addr"` // e.g. :8080
}

type Config struct {
	FrameRate string `yaml:"frame_rate"` // e.g. "60Hz"
	Timing    string `yaml:"timing"`     // "fixed" | "wall"
	LogLevel  string `yaml:"log_level"`
	Server    Server `yaml:"server"`

	// Scenes holds per-scene parameters keyed by scene name.
	Scenes map[string]map[string]any `yaml:"scenes,omitempty"`
}

func Default() *Config {
	return &Config{
		FrameRate: "60Hz",
		Timing:    string(clock.Fixed),
		LogLevel:  "info",
		Server:    Server{Addr: ":8080"},
		Scenes:    map[string]map[string]any{},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, &diagnostics.Error{Kind: diagnostics.Configuration, Op: "load", Subject: path, Detail: "invalid YAML", Err: err}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// Rate parses FrameRate.
func (c *Config) Rate() (physic.Frequency, error) {
	var f physic.Frequency
	if err := f.Set(c.FrameRate); err != nil {
		return 0, diagnostics.Configf("frame_rate", c.FrameRate, "%v", err)
	}
	if f <= 0 {
		return 0, diagnostics.Configf("frame_rate", c.FrameRate, "must be positive")
	}
	return f, nil
}

func (c *Config) TimingMode() (clock.Timing, error) { return clock.ParseTiming(c.Timing) }

// Params returns the configured parameters for scene, or nil.
func (c *Config) Params(scene string) map[string]any { return c.Scenes[scene] }

func (c *Config) Validate() error {
	if _, err := c.Rate(); err != nil {
		return err
	}
	_, err := c.TimingMode()
	return err
}
