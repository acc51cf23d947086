// Package config loads the emberglow settings: YAML on top of embedded defaults.
package config

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Scroll  ScrollConfig  `yaml:"scroll"`
	Log     LogConfig     `yaml:"log"`
	Preview PreviewConfig `yaml:"preview"`
}

// WindowConfig holds the desktop window settings.
type WindowConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Title     string `yaml:"title"`
	VSync     bool   `yaml:"vsync"`
	Resizable bool   `yaml:"resizable"`
}

// ScrollConfig maps page scrolling onto ember intensity.
type ScrollConfig struct {
	PageHeight   float64 `yaml:"page_height"`
	FadeDistance float64 `yaml:"fade_distance"`
	WheelStep    float64 `yaml:"wheel_step"`
	PageStep     float64 `yaml:"page_step"`
}

// LogConfig selects the slog level: debug, info, warn or error.
type LogConfig struct {
	Level string `yaml:"level"`
}

// PreviewConfig holds defaults for the offline preview tool.
type PreviewConfig struct {
	Width         int     `yaml:"width"`
	Height        int     `yaml:"height"`
	Scale         int     `yaml:"scale"`
	Time          float64 `yaml:"time"`
	Intensity     float64 `yaml:"intensity"`
	SweepFrames   int     `yaml:"sweep_frames"`
	SweepDuration float64 `yaml:"sweep_duration"`
}

// Load reads the embedded defaults and, if path is not empty, the YAML file
// at path on top of them. Keys missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.Scroll.FadeDistance <= 0 {
		return fmt.Errorf("scroll.fade_distance must be positive, got %v", c.Scroll.FadeDistance)
	}
	if c.Scroll.PageHeight < 0 {
		return fmt.Errorf("scroll.page_height must not be negative, got %v", c.Scroll.PageHeight)
	}
	if c.Preview.Scale < 1 {
		return fmt.Errorf("preview.scale must be at least 1, got %d", c.Preview.Scale)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses Level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(l.Level))); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}
