package intake

import (
	"testing"

	"github.com/google/uuid"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEnqueueDrain_PreservesOrder verifies events drain in the order
// they were enqueued by a single producer.
func TestEnqueueDrain_PreservesOrder(t *testing.T) {
	q := NewQueue(10)
	id := uuid.New()

	require.NoError(t, q.Enqueue(Event{Kind: EventJoin, PlayerID: id, Name: "Runner"}))
	require.NoError(t, q.Enqueue(Event{Kind: EventMove, PlayerID: id}))
	require.NoError(t, q.Enqueue(Event{Kind: EventChat, PlayerID: id, Text: "hi"}))

	events := q.Drain()
	require.Len(t, events, 3)
	assert.Equal(t, EventJoin, events[0].Kind)
	assert.Equal(t, EventMove, events[1].Kind)
	assert.Equal(t, EventChat, events[2].Kind)
}

// TestEnqueue_ReturnsErrQueueFullAtCapacity verifies the queue rejects
// new events (rather than blocking) once full.
func TestEnqueue_ReturnsErrQueueFullAtCapacity(t *testing.T) {
	q := NewQueue(2)
	id := uuid.New()

	require.NoError(t, q.Enqueue(Event{Kind: EventMove, PlayerID: id}))
	require.NoError(t, q.Enqueue(Event{Kind: EventMove, PlayerID: id}))

	err := q.Enqueue(Event{Kind: EventMove, PlayerID: id})
	assert.ErrorIs(t, err, ErrQueueFull)
}

// TestDrain_EmptyQueueReturnsNoEvents verifies Drain doesn't block when
// nothing is queued.
func TestDrain_EmptyQueueReturnsNoEvents(t *testing.T) {
	q := NewQueue(10)
	assert.Empty(t, q.Drain())
}

// TestDrain_ThenEnqueueAgain verifies the queue can be reused across
// multiple tick cycles once drained.
func TestDrain_ThenEnqueueAgain(t *testing.T) {
	q := NewQueue(2)
	id := uuid.New()

	require.NoError(t, q.Enqueue(Event{Kind: EventMove, PlayerID: id}))
	q.Drain()

	require.NoError(t, q.Enqueue(Event{Kind: EventMove, PlayerID: id}))
	require.NoError(t, q.Enqueue(Event{Kind: EventMove, PlayerID: id}))
	assert.Len(t, q.Drain(), 2)
}
