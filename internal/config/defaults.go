package config

import "platformer-server/internal/world"

// DefaultTickHz is the simulation cadence pinned in SPEC_FULL.md §12.
const DefaultTickHz = 60

// Default returns the built-in level used when no config file is
// supplied: a ground plane, one reachable platform, and one wall —
// enough geometry to reach each of the three ground-contact states out
// of the box. With a single platform there is no platform-to-platform
// hand-off.
func Default() *Config {
	return &Config{
		Physics: PhysicsConfig{
			GroundY:      -10,
			PlayerWidth:  0.8,
			PlayerHeight: 1.8,
			GroundColor:  "#3A3A3A",
		},
		Platforms: []world.Platform{
			{ID: "platform-1", XStart: -3, XEnd: 3, YTop: 2, Height: 0.5, Color: "#3366CC"},
		},
		Walls: []world.Wall{
			{ID: "wall-1", X: 10, YBottom: -10, YTop: 5, Width: 0.5, Color: "#996633"},
		},
		Tuning: TuningConfig{TickHz: DefaultTickHz},
	}
}
