package config

import (
	"fmt"
	"os"

	"github.com/san-kum/sortviz/internal/algorithms"
	"github.com/san-kum/sortviz/internal/dataset"
	"github.com/san-kum/sortviz/internal/playback"
	"gopkg.in/yaml.v3"
)

const (
	DefaultAlgorithm = "bubble"
	DefaultTheme     = "cyberpunk"
	DefaultFPS       = 30
)

type Config struct {
	Algorithm string `yaml:"algorithm"`
	Size      int    `yaml:"size"`
	Speed     int    `yaml:"speed"`
	Seed      int64  `yaml:"seed"`
	Pattern   string `yaml:"pattern"`
	MinValue  int    `yaml:"min_value"`
	MaxValue  int    `yaml:"max_value"`
	ResetMode string `yaml:"reset_mode"`
	Theme     string `yaml:"theme"`
	FPS       int    `yaml:"fps"`
}

func DefaultConfig() *Config {
	return &Config{
		Algorithm: DefaultAlgorithm,
		Size:      dataset.DefaultSize,
		Speed:     playback.DefaultSpeed,
		Pattern:   string(dataset.Random),
		MinValue:  dataset.DefaultMin,
		MaxValue:  dataset.DefaultMax,
		ResetMode: playback.ResetRestore.String(),
		Theme:     DefaultTheme,
		FPS:       DefaultFPS,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports the first field that cannot be used.
func (c *Config) Validate() error {
	if !algorithms.Default().Has(c.Algorithm) {
		return fmt.Errorf("unknown algorithm %q (available: %v)", c.Algorithm, algorithms.Names())
	}
	if c.Size < 0 {
		return fmt.Errorf("size must be non-negative, got %d", c.Size)
	}
	if c.Speed < playback.MinSpeed || c.Speed > playback.MaxSpeed {
		return fmt.Errorf("speed must be in [%d, %d], got %d", playback.MinSpeed, playback.MaxSpeed, c.Speed)
	}
	if _, err := dataset.ParsePattern(c.Pattern); err != nil {
		return err
	}
	if c.MinValue > c.MaxValue {
		return fmt.Errorf("min_value %d exceeds max_value %d", c.MinValue, c.MaxValue)
	}
	if _, err := playback.ParseResetMode(c.ResetMode); err != nil {
		return err
	}
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.FPS)
	}
	return nil
}

// DatasetOptions converts the array fields for dataset.Generator.
func (c *Config) DatasetOptions() dataset.Options {
	return dataset.Options{
		Size:    c.Size,
		Min:     c.MinValue,
		Max:     c.MaxValue,
		Pattern: dataset.Pattern(c.Pattern),
	}
}

// SchedulerOptions converts the playback fields. ResetMode must already be
// valid.
func (c *Config) SchedulerOptions() []playback.Option {
	mode, _ := playback.ParseResetMode(c.ResetMode)
	return []playback.Option{
		playback.WithSpeed(c.Speed),
		playback.WithResetMode(mode),
	}
}
