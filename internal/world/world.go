// Package world defines the authoritative game world: the pure State
// data model plus the reader/writer guard that lets the Simulation Task
// be the sole mutator while HTTP handlers and the SSE edge take
// snapshots without blocking it.
package world

import "sync"

// World guards a State behind a reader/writer lock. Exactly one
// goroutine — the Simulation Task — is expected to call Commit; any
// number of goroutines may call Snapshot concurrently.
//
// The write lock is only ever held for the pointer swap in Commit, never
// across physics computation: callers clone a Snapshot, mutate the clone
// at their leisure without holding any lock, then Commit the result.
type World struct {
	mu    sync.RWMutex
	state *State
}

// NewWorld creates a World over the given frozen level geometry with no
// players and an empty chat history.
func NewWorld(geo Geometry) *World {
	return &World{state: NewState(geo)}
}

// Snapshot returns a private deep copy of the current State. The caller
// may read or mutate the returned State freely; it is never shared with
// other goroutines until passed back to Commit.
func (w *World) Snapshot() *State {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.state.Clone()
}

// Commit replaces the World's State with next. Only the Simulation Task
// should call this, once per tick, after folding joins/chats and running
// physics on a Snapshot obtained at the start of the tick.
func (w *World) Commit(next *State) {
	w.mu.Lock()
	w.state = next
	w.mu.Unlock()
}

// PlayerCount returns the number of players in the current State. Used
// for logging; takes the read lock.
func (w *World) PlayerCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.state.Players)
}
