// Package intake decouples HTTP request handlers from the Simulation
// Task with a bounded, multi-producer/single-consumer queue. Handlers
// enqueue tagged events and return immediately; the Simulation Task
// drains the queue once per tick.
package intake

import (
	"errors"

	"github.com/google/uuid"
	"platformer-server/internal/world"
)

// DefaultCapacity is the queue's fixed capacity (spec.md §4.3).
const DefaultCapacity = 4096

// ErrQueueFull is returned by Enqueue when the queue is at capacity.
// Callers (HTTP handlers) should surface this as a 503 so the client
// can retry.
var ErrQueueFull = errors.New("intake: queue full")

// EventKind tags the three event variants a client interaction produces.
type EventKind int

const (
	// EventJoin requests a player enter the World (idempotent).
	EventJoin EventKind = iota
	// EventMove overwrites a player's pending intent for the next tick.
	EventMove
	// EventChat submits a validated chat message.
	EventChat
)

// Event is one intake queue entry. Only the fields relevant to Kind are
// populated.
type Event struct {
	Kind     EventKind
	PlayerID uuid.UUID

	// Join fields.
	Name  string
	Color string

	// Move fields.
	Intent world.Intent

	// Chat fields.
	Text string
}

// Queue is the bounded, thread-safe command intake. Multiple HTTP
// handler goroutines call Enqueue concurrently; a single Simulation
// Task goroutine calls Drain once per tick.
type Queue struct {
	events chan Event
}

// NewQueue returns a Queue with the given capacity. Use DefaultCapacity
// unless a test needs a smaller queue to exercise the full condition.
func NewQueue(capacity int) *Queue {
	return &Queue{events: make(chan Event, capacity)}
}

// Enqueue submits an event without blocking. It returns ErrQueueFull if
// the queue is at capacity.
func (q *Queue) Enqueue(ev Event) error {
	select {
	case q.events <- ev:
		return nil
	default:
		return ErrQueueFull
	}
}

// Drain removes and returns all events currently queued, without
// blocking. It is intended to be called once per tick by the
// Simulation Task.
func (q *Queue) Drain() []Event {
	var out []Event
	for {
		select {
		case ev := <-q.events:
			out = append(out, ev)
		default:
			return out
		}
	}
}

// Len reports the number of events currently buffered. Used for
// diagnostics/logging only.
func (q *Queue) Len() int {
	return len(q.events)
}
