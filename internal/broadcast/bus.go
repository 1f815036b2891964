// Package broadcast implements the fan-out bus that carries state
// signal frames and chat element frames from the Simulation Task to
// every connected /events subscriber. Publishing never blocks the
// publisher: a subscriber that falls behind has its oldest buffered
// message dropped and is flagged lagged, but is never disconnected by
// the bus itself.
package broadcast

import (
	"sync"
	"sync/atomic"
)

// subscriberCapacity is the per-subscriber bounded lag (spec.md §4.4).
const subscriberCapacity = 16

// Subscription is a single subscriber's view of a Bus. Receive from C to
// read published messages; check Lagged after a receive to see whether
// this subscriber fell behind and missed messages (the recommended
// response is for the caller to re-synthesize a full snapshot on the
// next send, as the SSE edge does for the state bus).
type Subscription[T any] struct {
	C chan T

	lagged atomic.Bool
}

// Lagged reports whether this subscriber has dropped at least one
// message since the previous call to Lagged, and clears the flag.
func (s *Subscription[T]) Lagged() bool {
	return s.lagged.Swap(false)
}

// Bus is a multi-producer/multi-consumer fan-out channel for a single
// message type T. The zero value is not usable; construct with New.
type Bus[T any] struct {
	mu          sync.Mutex
	subscribers map[*Subscription[T]]struct{}
}

// New returns an empty Bus.
func New[T any]() *Bus[T] {
	return &Bus[T]{subscribers: make(map[*Subscription[T]]struct{})}
}

// Subscribe registers a new subscriber and returns its Subscription
// along with an unsubscribe function. The caller must call unsubscribe
// exactly once, typically via defer, when it stops reading (e.g. on
// client disconnect).
func (b *Bus[T]) Subscribe() (*Subscription[T], func()) {
	sub := &Subscription[T]{C: make(chan T, subscriberCapacity)}

	b.mu.Lock()
	b.subscribers[sub] = struct{}{}
	b.mu.Unlock()

	unsubscribe := func() {
		b.mu.Lock()
		delete(b.subscribers, sub)
		b.mu.Unlock()
	}
	return sub, unsubscribe
}

// Publish fans msg out to every current subscriber without blocking. A
// subscriber whose channel is full has its oldest buffered message
// dropped to make room, and is marked lagged.
func (b *Bus[T]) Publish(msg T) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for sub := range b.subscribers {
		select {
		case sub.C <- msg:
		default:
			// Slow subscriber: drop the oldest buffered message, then
			// retry this send. The bus never blocks the publisher and
			// never drops the subscriber itself.
			select {
			case <-sub.C:
			default:
			}
			select {
			case sub.C <- msg:
			default:
			}
			sub.lagged.Store(true)
		}
	}
}

// SubscriberCount returns the current number of subscribers. Used for
// diagnostics/logging only.
func (b *Bus[T]) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subscribers)
}
