// Package config loads the boot-time level and physics configuration:
// the frozen geometry (ground, platforms, walls) and the physics tuning
// constants, served verbatim by GET /api/config and used to build the
// World's Geometry and the physics.Config.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"platformer-server/internal/physics"
	"platformer-server/internal/world"
)

// PhysicsConfig mirrors the "physics" object of GET /api/config
// (spec.md §6).
type PhysicsConfig struct {
	GroundY      float64 `yaml:"ground_y" json:"ground_y"`
	PlayerWidth  float64 `yaml:"player_width" json:"player_width"`
	PlayerHeight float64 `yaml:"player_height" json:"player_height"`
	GroundColor  string  `yaml:"ground_color" json:"ground_color"`
}

// TuningConfig carries the constants spec.md §9 leaves as an open
// question, pinned per SPEC_FULL.md §12. All fields are optional in the
// YAML file; a zero TickHz falls back to DefaultTickHz and the other
// zero values fall back to the physics package defaults.
type TuningConfig struct {
	TickHz    int     `yaml:"tick_hz"`
	VXMax     float64 `yaml:"vx_max"`
	VYMin     float64 `yaml:"vy_min"`
	VYMax     float64 `yaml:"vy_max"`
	VJump     float64 `yaml:"v_jump"`
	VWallJump float64 `yaml:"v_walljump"`
	AMove     float64 `yaml:"a_move"`
	AFriction float64 `yaml:"a_friction"`
	Gravity   float64 `yaml:"gravity"`
}

// Config is the full boot-time configuration document.
type Config struct {
	Physics   PhysicsConfig    `yaml:"physics" json:"physics"`
	Platforms []world.Platform `yaml:"platforms" json:"platforms"`
	Walls     []world.Wall     `yaml:"walls" json:"walls"`
	Tuning    TuningConfig     `yaml:"tuning" json:"-"`
}

// Load reads and parses a YAML configuration file from path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Geometry builds the frozen world.Geometry this configuration
// describes.
func (c *Config) Geometry() world.Geometry {
	return world.Geometry{
		GroundY:      c.Physics.GroundY,
		PlayerWidth:  c.Physics.PlayerWidth,
		PlayerHeight: c.Physics.PlayerHeight,
		GroundColor:  c.Physics.GroundColor,
		Platforms:    c.Platforms,
		Walls:        c.Walls,
	}
}

// PhysicsEngineConfig builds a physics.Config from the tuning section,
// falling back to physics package defaults for any zero-valued field.
func (c *Config) PhysicsEngineConfig() physics.Config {
	d := physics.DefaultConfig()
	t := c.Tuning

	apply := func(v, fallback float64) float64 {
		if v == 0 {
			return fallback
		}
		return v
	}

	return physics.Config{
		VXMax:     apply(t.VXMax, d.VXMax),
		VYMin:     apply(t.VYMin, d.VYMin),
		VYMax:     apply(t.VYMax, d.VYMax),
		VJump:     apply(t.VJump, d.VJump),
		VWallJump: apply(t.VWallJump, d.VWallJump),
		AMove:     apply(t.AMove, d.AMove),
		AFriction: apply(t.AFriction, d.AFriction),
		Gravity:   apply(t.Gravity, d.Gravity),
	}
}

// TickRate returns the configured simulation cadence, defaulting to
// DefaultTickHz when unset.
func (c *Config) TickRate() time.Duration {
	hz := c.Tuning.TickHz
	if hz == 0 {
		hz = DefaultTickHz
	}
	return time.Second / time.Duration(hz)
}

// DeltaTime returns the fixed per-tick duration in seconds, matching
// TickRate.
func (c *Config) DeltaTime() float64 {
	hz := c.Tuning.TickHz
	if hz == 0 {
		hz = DefaultTickHz
	}
	return 1.0 / float64(hz)
}
