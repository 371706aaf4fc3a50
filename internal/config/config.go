package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/tilemaze/internal/maze"
	"github.com/san-kum/tilemaze/internal/playback"
)

const (
	DefaultWidth         = 80
	DefaultHeight        = 24
	DefaultFrameInterval = 16 * time.Millisecond
	DefaultTheme         = "classic"

	EnvPrefix = "TILEMAZE_"
)

var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Tiling        string        `yaml:"tiling" env:"TILING"`
	Speed         int           `yaml:"speed" env:"SPEED"`
	Scale         int           `yaml:"scale" env:"SCALE"`
	Rotation      int           `yaml:"rotation" env:"ROTATION"`
	Width         int           `yaml:"width" env:"WIDTH"`
	Height        int           `yaml:"height" env:"HEIGHT"`
	Walkers       int           `yaml:"walkers" env:"WALKERS"`
	Seed          int64         `yaml:"seed" env:"SEED"`
	FrameInterval time.Duration `yaml:"frame_interval" env:"FRAME_INTERVAL"`
	Theme         string        `yaml:"theme" env:"THEME"`
	LogFile       string        `yaml:"log_file,omitempty" env:"LOG_FILE"`
}

func DefaultConfig() *Config {
	return &Config{
		Tiling:        maze.Square.Name,
		Speed:         playback.DefaultSpeed,
		Scale:         playback.DefaultScale,
		Rotation:      playback.DefaultRotation,
		Width:         DefaultWidth,
		Height:        DefaultHeight,
		Walkers:       maze.DefaultWalkers,
		FrameInterval: DefaultFrameInterval,
		Theme:         DefaultTheme,
	}
}

func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := cfg.Merge(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Merge overlays the YAML file at path onto c. Keys missing from the file
// keep their current values.
func (c *Config) Merge(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config: %s: %w", path, err)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overlays TILEMAZE_* variables from the process environment.
func (c *Config) ApplyEnv() error {
	return c.applyEnv(nil)
}

func (c *Config) applyEnv(environ map[string]string) error {
	opts := env.Options{Prefix: EnvPrefix, Environment: environ}
	if err := env.ParseWithOptions(c, opts); err != nil {
		return fmt.Errorf("config: parse env: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Speed < playback.MinSpeed || c.Speed > playback.MaxSpeed {
		errs = append(errs, fmt.Errorf("%w: speed %d outside [%d,%d]", ErrInvalid, c.Speed, playback.MinSpeed, playback.MaxSpeed))
	}
	if c.Scale < 1 {
		errs = append(errs, fmt.Errorf("%w: scale %d must be positive", ErrInvalid, c.Scale))
	}
	if c.Width < 4 || c.Height < 2 {
		errs = append(errs, fmt.Errorf("%w: size %dx%d too small", ErrInvalid, c.Width, c.Height))
	}
	if c.Walkers < 0 {
		errs = append(errs, fmt.Errorf("%w: walkers %d is negative", ErrInvalid, c.Walkers))
	}
	if c.FrameInterval <= 0 {
		errs = append(errs, fmt.Errorf("%w: frame_interval %s must be positive", ErrInvalid, c.FrameInterval))
	}
	if c.Tiling != "" {
		if _, ok := maze.LookupTiling(c.Tiling); !ok {
			errs = append(errs, fmt.Errorf("%w: unknown tiling %q", ErrInvalid, c.Tiling))
		}
	}
	return errors.Join(errs...)
}

// PlaybackOptions returns the controller settings.
func (c *Config) PlaybackOptions() playback.Options {
	return playback.Options{
		Speed:    c.Speed,
		Scale:    c.Scale,
		Rotation: c.Rotation,
	}
}

// EngineConfig returns the reference engine settings.
func (c *Config) EngineConfig() maze.Config {
	return maze.Config{Walkers: c.Walkers, Seed: c.Seed}
}
