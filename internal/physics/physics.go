// Package physics implements the pure platformer simulation step: given
// a World Model and a map of per-player intents, it produces the next
// World Model. It performs no I/O and holds no locks — the Simulation
// Task is responsible for supplying a private working copy and
// committing the result.
package physics

import (
	"math"

	"github.com/google/uuid"
	"platformer-server/internal/world"
)

// Tuning constants, pinned per SPEC_FULL.md §12 (spec.md leaves these as
// an open question). Units are meters and seconds; +y is up.
const (
	DefaultVXMax     = 8.0
	DefaultVYMin     = -40.0
	DefaultVYMax     = 18.0
	DefaultVJump     = 12.0
	DefaultVWallJump = 6.0
	DefaultAMove     = 20.0
	DefaultAFriction = 30.0
	DefaultGravity   = 30.0
)

const epsilon = 1e-6

// Config bundles the tuning constants a Step call uses.
type Config struct {
	VXMax     float64
	VYMin     float64
	VYMax     float64
	VJump     float64
	VWallJump float64
	AMove     float64
	AFriction float64
	Gravity   float64
}

// DefaultConfig returns the tuning pinned in SPEC_FULL.md §12.
func DefaultConfig() Config {
	return Config{
		VXMax:     DefaultVXMax,
		VYMin:     DefaultVYMin,
		VYMax:     DefaultVYMax,
		VJump:     DefaultVJump,
		VWallJump: DefaultVWallJump,
		AMove:     DefaultAMove,
		AFriction: DefaultAFriction,
		Gravity:   DefaultGravity,
	}
}

// Step advances a cloned World Model by one tick of duration dt (in
// seconds), given the latest intent per player. It returns a new
// *world.State; the input state is left untouched (Step clones
// internally).
//
// Determinism: players are evaluated in sorted-id order, so given equal
// inputs Step always produces bit-identical floating point output.
func Step(s *world.State, intents map[uuid.UUID]world.Intent, dt float64, cfg Config) *world.State {
	next := s.Clone()
	next.Tick = s.Tick + 1

	for _, p := range next.SortedPlayers() {
		intent := intents[p.ID]
		yPrev := p.Y
		stepPlayer(p, next.Geometry, intent, yPrev, dt, cfg)
	}

	return next
}

func stepPlayer(p *world.Player, geo world.Geometry, intent world.Intent, yPrev, dt float64, cfg Config) {
	applyHorizontalIntent(p, intent, dt, cfg)
	applyJump(p, intent, cfg)
	applyGravity(p, cfg, dt)

	p.X += p.VX * dt
	p.Y += p.VY * dt

	resolveCollisions(p, geo, yPrev, cfg)
	clampVelocity(p, cfg)
}

// applyHorizontalIntent implements spec.md §4.1 step 1: MoveLeft/Right
// set a target acceleration, Stop applies friction, and sliding against
// the direction of travel clamps that direction's acceleration to zero.
func applyHorizontalIntent(p *world.Player, intent world.Intent, dt float64, cfg Config) {
	slidingToward := func(side world.Side) bool {
		return p.Contact.Kind == world.Sliding && p.Contact.WallSide == side
	}

	switch intent {
	case world.MoveLeft:
		// A wall to the player's left blocks further leftward push.
		if !slidingToward(world.SideLeft) {
			p.VX -= cfg.AMove * dt
		}
		p.FacingRight = false
	case world.MoveRight:
		// A wall to the player's right blocks further rightward push.
		if !slidingToward(world.SideRight) {
			p.VX += cfg.AMove * dt
		}
		p.FacingRight = true
	case world.Stop:
		friction := cfg.AFriction * dt
		if p.VX > 0 {
			p.VX = math.Max(0, p.VX-friction)
		} else if p.VX < 0 {
			p.VX = math.Min(0, p.VX+friction)
		}
	}
}

// applyJump implements spec.md §4.1 step 2: permitted only when Grounded
// or Sliding; wall-jump also applies a horizontal impulse away from the
// wall.
func applyJump(p *world.Player, intent world.Intent, cfg Config) {
	if intent != world.Jump {
		return
	}

	switch p.Contact.Kind {
	case world.Grounded:
		p.VY = cfg.VJump
		p.Contact = world.NewFlying()
	case world.Sliding:
		p.VY = cfg.VJump
		if p.Contact.WallSide == world.SideRight {
			// Wall to the player's right — jump away to the left.
			p.VX = -cfg.VWallJump
		} else {
			// Wall to the player's left — jump away to the right.
			p.VX = cfg.VWallJump
		}
		p.Contact = world.NewFlying()
	}
}

// applyGravity implements spec.md §4.1 step 3: gravity applies unless
// Grounded, clamped at terminal fall speed.
func applyGravity(p *world.Player, cfg Config, dt float64) {
	if p.Contact.Kind == world.Grounded {
		return
	}
	p.VY = math.Max(p.VY-cfg.Gravity*dt, cfg.VYMin)
}

// resolveCollisions implements spec.md §4.1 step 5, in order: ground,
// platform top-landing (greatest y_top tie-break), wall contact, then
// leaving a platform's span transitions Grounded back to Flying.
func resolveCollisions(p *world.Player, geo world.Geometry, yPrev float64, cfg Config) {
	if p.Contact.Kind == world.Grounded && p.Contact.PlatformID != "" {
		if plat, ok := geo.PlatformByID(p.Contact.PlatformID); ok {
			if p.X < plat.XStart || p.X > plat.XEnd {
				p.Contact = world.NewFlying()
			}
		}
	}

	if p.Y < geo.GroundY {
		p.Y = geo.GroundY
		p.VY = 0
		p.Contact = world.NewGroundedOnGround()
		return
	}

	if landed, plat := findLandingPlatform(geo, p.X, p.Y, yPrev, p.VY); landed {
		p.Y = plat.YTop
		p.VY = 0
		p.Contact = world.NewGroundedOnPlatform(plat.ID)
		return
	}

	resolveWallContact(p, geo)

	if p.Contact.Kind == world.Grounded && p.Contact.PlatformID != "" {
		if plat, ok := geo.PlatformByID(p.Contact.PlatformID); ok {
			if p.X < plat.XStart || p.X > plat.XEnd {
				p.Contact = world.NewFlying()
			}
		}
	}
}

// findLandingPlatform implements the platform top-landing rule: a player
// lands on platform p iff yPrev >= p.YTop, current y <= p.YTop, x is
// within the platform's span, and vy <= 0. Ties across overlapping
// platforms go to the one with the greatest y_top not exceeding yPrev.
func findLandingPlatform(geo world.Geometry, x, y, yPrev, vy float64) (bool, world.Platform) {
	if vy > 0 {
		return false, world.Platform{}
	}

	var (
		found   bool
		best    world.Platform
		bestTop = math.Inf(-1)
	)
	for _, plat := range geo.Platforms {
		if !plat.Contains(x) {
			continue
		}
		if yPrev+epsilon < plat.YTop || y > plat.YTop+epsilon {
			continue
		}
		if plat.YTop > bestTop {
			bestTop = plat.YTop
			best = plat
			found = true
		}
	}
	return found, best
}

// resolveWallContact snaps the player to a wall face it has crossed into
// this tick while within the wall's vertical span, zeroing vx and
// transitioning to Sliding while airborne.
func resolveWallContact(p *world.Player, geo world.Geometry) {
	grounded := p.Contact.Kind == world.Grounded

	for _, wall := range geo.Walls {
		if !wall.Spans(p.Y) {
			continue
		}
		halfWidth := wall.Width / 2
		leftFace := wall.X - halfWidth
		rightFace := wall.X + halfWidth

		if p.X >= leftFace && p.X <= wall.X {
			// Approaching from the left, touching the wall's left face:
			// the wall is to the player's right.
			p.X = leftFace
			p.VX = 0
			if !grounded {
				p.Contact = world.NewSliding(wall.ID, world.SideRight)
			}
			return
		}
		if p.X <= rightFace && p.X >= wall.X {
			// Approaching from the right, touching the wall's right
			// face: the wall is to the player's left.
			p.X = rightFace
			p.VX = 0
			if !grounded {
				p.Contact = world.NewSliding(wall.ID, world.SideLeft)
			}
			return
		}
	}

	if p.Contact.Kind == world.Sliding {
		// No longer touching any wall span this tick.
		p.Contact = world.NewFlying()
	}
}

// clampVelocity implements spec.md §4.1 step 6, applied last.
func clampVelocity(p *world.Player, cfg Config) {
	if p.VX > cfg.VXMax {
		p.VX = cfg.VXMax
	} else if p.VX < -cfg.VXMax {
		p.VX = -cfg.VXMax
	}
	if p.VY < cfg.VYMin {
		p.VY = cfg.VYMin
	} else if p.VY > cfg.VYMax {
		p.VY = cfg.VYMax
	}
	if p.Contact.Kind == world.Grounded {
		p.VY = 0
	}
}
