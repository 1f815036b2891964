package world

import "github.com/google/uuid"

// Intent is a player's most recently declared movement command for the
// next tick. The zero value is Stop.
type Intent int

const (
	// Stop applies friction and no directional acceleration.
	Stop Intent = iota
	// MoveLeft accelerates the player to the left.
	MoveLeft
	// MoveRight accelerates the player to the right.
	MoveRight
	// Jump requests a jump or wall-jump this tick.
	Jump
)

// Player is a single connected player's authoritative state. All world
// coordinates are meters; +y is up.
type Player struct {
	// ID is the opaque 128-bit identifier assigned by the client on init.
	ID uuid.UUID

	// Name is the display name, set on the first Init; a later Init for
	// the same id leaves it unchanged.
	Name string

	// Color is the stable display color derived deterministically from
	// ID. See internal/colorkey.
	Color string

	X, Y   float64
	VX, VY float64

	FacingRight bool

	Contact Contact
}

// NewPlayer returns a newly spawned player at the given spawn position,
// Flying unless gravity immediately resolves it to Grounded on the first
// tick (see physics.Step).
func NewPlayer(id uuid.UUID, name, color string, spawnX, spawnY float64) *Player {
	return &Player{
		ID:          id,
		Name:        name,
		Color:       color,
		X:           spawnX,
		Y:           spawnY,
		FacingRight: true,
		Contact:     NewFlying(),
	}
}

// Clone returns a deep copy of the player, safe to hand to a goroutine
// that does not hold the World lock.
func (p *Player) Clone() *Player {
	cp := *p
	return &cp
}
