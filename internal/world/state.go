package world

import (
	"sort"

	"github.com/google/uuid"
)

// State is the pure World Model: players, the frozen level geometry, the
// bounded chat history, and the tick counter. It has no locking and no
// I/O — all mutation here is plain data manipulation, safe to call from
// the Simulation Task's single goroutine on a private working copy.
type State struct {
	Players  map[uuid.UUID]*Player
	Geometry Geometry
	Tick     uint64

	chat    *chatRing
	chatSeq uint64
}

// NewState returns an empty World Model over the given frozen geometry.
func NewState(geo Geometry) *State {
	return &State{
		Players:  make(map[uuid.UUID]*Player),
		Geometry: geo,
		chat:     newChatRing(),
	}
}

// Clone returns a deep copy safe for a single goroutine to mutate while
// other goroutines continue reading the original via World's guard.
// Geometry is immutable for the process lifetime and is shared, not
// copied.
func (s *State) Clone() *State {
	next := &State{
		Players:  make(map[uuid.UUID]*Player, len(s.Players)),
		Geometry: s.Geometry,
		Tick:     s.Tick,
		chat:     &chatRing{messages: append([]ChatMessage(nil), s.chat.messages...)},
		chatSeq:  s.chatSeq,
	}
	for id, p := range s.Players {
		next.Players[id] = p.Clone()
	}
	return next
}

// SortedPlayers returns the players ordered by their string id. Physics
// iterates players in this order so that floating-point results are
// reproducible across runs regardless of map iteration order.
func (s *State) SortedPlayers() []*Player {
	out := make([]*Player, 0, len(s.Players))
	for _, p := range s.Players {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}

// Join creates a player at the given spawn position if id is not already
// present. Idempotent: if the player already exists, this does nothing —
// position, velocity, and contact state are left untouched.
func (s *State) Join(id uuid.UUID, name, color string, spawnX, spawnY float64) {
	if _, exists := s.Players[id]; exists {
		return
	}
	s.Players[id] = NewPlayer(id, name, color, spawnX, spawnY)
}

// AppendChat validates and records a chat message from a known player,
// assigning it the next strictly increasing sequence number. Returns
// false without mutating state if the player is not in the World (the
// caller should discard silently) — text validation is expected to have
// already happened upstream (see the HTTP edge's chat handler).
func (s *State) AppendChat(id uuid.UUID, text string) (ChatMessage, bool) {
	player, ok := s.Players[id]
	if !ok {
		return ChatMessage{}, false
	}
	s.chatSeq++
	msg := ChatMessage{
		PlayerID:    id,
		PlayerName:  player.Name,
		PlayerColor: player.Color,
		Text:        text,
		Seq:         s.chatSeq,
	}
	s.chat.append(msg)
	return msg, true
}

// ChatHistory returns a copy of the retained chat messages, oldest first.
func (s *State) ChatHistory() []ChatMessage {
	return s.chat.snapshot()
}
