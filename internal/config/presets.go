package config

import (
	"fmt"
	"sort"
)

func preset(edit func(c *Config)) *Config {
	c := DefaultConfig()
	edit(c)
	return c
}

var Presets = map[string]*Config{
	"slow": preset(func(c *Config) {
		c.Speed = 20
	}),
	"fast": preset(func(c *Config) {
		c.Speed = 90
	}),
	"hex": preset(func(c *Config) {
		c.Tiling, c.Scale = "Hexagon", 10
	}),
	"triangles": preset(func(c *Config) {
		c.Tiling, c.Scale = "Triangular", 14
	}),
	"octagons": preset(func(c *Config) {
		c.Tiling, c.Scale, c.Rotation = "Truncated Square", 18, 45
	}),
	"tiny": preset(func(c *Config) {
		c.Scale, c.Walkers, c.Speed = 6, 3, 75
	}),
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

// Underlay returns the named preset with every field of c that differs from
// DefaultConfig laid on top, so explicit settings survive the preset.
func (c *Config) Underlay(name string) (*Config, error) {
	p := GetPreset(name)
	if p == nil {
		return nil, fmt.Errorf("config: unknown preset %q", name)
	}
	def := DefaultConfig()
	keep(&p.Tiling, c.Tiling, def.Tiling)
	keep(&p.Speed, c.Speed, def.Speed)
	keep(&p.Scale, c.Scale, def.Scale)
	keep(&p.Rotation, c.Rotation, def.Rotation)
	keep(&p.Width, c.Width, def.Width)
	keep(&p.Height, c.Height, def.Height)
	keep(&p.Walkers, c.Walkers, def.Walkers)
	keep(&p.Seed, c.Seed, def.Seed)
	keep(&p.FrameInterval, c.FrameInterval, def.FrameInterval)
	keep(&p.Theme, c.Theme, def.Theme)
	keep(&p.LogFile, c.LogFile, def.LogFile)
	return p, nil
}

func keep[T comparable](dst *T, v, def T) {
	if v != def {
		*dst = v
	}
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
