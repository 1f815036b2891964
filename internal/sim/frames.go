package sim

import "platformer-server/internal/world"

// StateFrame is the full per-tick snapshot published to the state
// broadcast bus. The HTTP/SSE edge is responsible for turning this into
// the wire-format datastar-patch-signals payload (spec.md §6).
type StateFrame struct {
	Tick    uint64
	Players []world.Player
}

// ChatFrame wraps a single accepted chat message for the chat broadcast
// bus. Kept as a distinct type (rather than reusing world.ChatMessage
// directly) so the bus's type parameter names what travels over it.
type ChatFrame struct {
	Message world.ChatMessage
}
