package sim

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"platformer-server/internal/broadcast"
	"platformer-server/internal/config"
	"platformer-server/internal/intake"
	"platformer-server/internal/logging"
	"platformer-server/internal/world"
)

func newHarness(t *testing.T, evictionTicks uint64) (*Task, *world.World, *intake.Queue, *broadcast.Bus[StateFrame], *broadcast.Bus[ChatFrame]) {
	t.Helper()
	cfg := config.Default()
	w := world.NewWorld(cfg.Geometry())
	q := intake.NewQueue(intake.DefaultCapacity)
	stateBus := broadcast.New[StateFrame]()
	chatBus := broadcast.New[ChatFrame]()

	task := New(w, q, stateBus, chatBus, Config{
		DeltaTime:         cfg.DeltaTime(),
		TickRate:          time.Millisecond, // fast cadence for tests
		Physics:           cfg.PhysicsEngineConfig(),
		IdleEvictionTicks: evictionTicks,
	}, logging.Nop())

	return task, w, q, stateBus, chatBus
}

// TestTick_JoinAddsPlayerAndPublishesStateFrame verifies a Join event
// results in the player appearing in the World and in the next
// published state frame.
func TestTick_JoinAddsPlayerAndPublishesStateFrame(t *testing.T) {
	task, w, q, stateBus, _ := newHarness(t, 0)
	sub, unsub := stateBus.Subscribe()
	defer unsub()

	id := uuid.New()
	require.NoError(t, q.Enqueue(intake.Event{Kind: intake.EventJoin, PlayerID: id, Name: "Runner", Color: "#AABBCC"}))

	task.tick()

	assert.Equal(t, 1, w.PlayerCount())

	select {
	case frame := <-sub.C:
		require.Len(t, frame.Players, 1)
		assert.Equal(t, id, frame.Players[0].ID)
	case <-time.After(time.Second):
		t.Fatal("did not receive state frame")
	}
}

// TestTick_ChatPublishesChatFrameWithSeq verifies an accepted chat
// message is published on the chat bus with an assigned sequence
// number.
func TestTick_ChatPublishesChatFrameWithSeq(t *testing.T) {
	task, _, q, _, chatBus := newHarness(t, 0)
	sub, unsub := chatBus.Subscribe()
	defer unsub()

	id := uuid.New()
	require.NoError(t, q.Enqueue(intake.Event{Kind: intake.EventJoin, PlayerID: id, Name: "Runner", Color: "#AABBCC"}))
	task.tick()

	require.NoError(t, q.Enqueue(intake.Event{Kind: intake.EventChat, PlayerID: id, Text: "hello world"}))
	task.tick()

	select {
	case frame := <-sub.C:
		assert.Equal(t, "hello world", frame.Message.Text)
		assert.Equal(t, uint64(1), frame.Message.Seq)
	case <-time.After(time.Second):
		t.Fatal("did not receive chat frame")
	}
}

// TestTick_ChatForUnknownPlayerIsDropped verifies a Chat event whose
// player never joined is silently discarded (spec.md §7).
func TestTick_ChatForUnknownPlayerIsDropped(t *testing.T) {
	task, _, q, _, chatBus := newHarness(t, 0)
	sub, unsub := chatBus.Subscribe()
	defer unsub()

	require.NoError(t, q.Enqueue(intake.Event{Kind: intake.EventChat, PlayerID: uuid.New(), Text: "ghost"}))
	task.tick()

	select {
	case <-sub.C:
		t.Fatal("received a chat frame for an unknown player")
	case <-time.After(50 * time.Millisecond):
	}
}

// TestRun_StopsOnContextCancel verifies Run returns promptly when its
// context is cancelled, rather than blocking forever.
func TestRun_StopsOnContextCancel(t *testing.T) {
	task, _, _, _, _ := newHarness(t, 0)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		task.Run(ctx)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after context cancellation")
	}
}

// TestEvictIdlePlayers_RemovesPlayerPastThreshold verifies the opt-in
// idle eviction policy removes a player who produced no events for more
// than IdleEvictionTicks ticks, and leaves them alone before that.
func TestEvictIdlePlayers_RemovesPlayerPastThreshold(t *testing.T) {
	task, w, q, _, _ := newHarness(t, 3)

	id := uuid.New()
	require.NoError(t, q.Enqueue(intake.Event{Kind: intake.EventJoin, PlayerID: id, Name: "Runner", Color: "#AABBCC"}))
	task.tick()
	require.Equal(t, 1, w.PlayerCount())

	for i := 0; i < 3; i++ {
		task.tick()
		assert.Equal(t, 1, w.PlayerCount(), "player evicted too early at tick %d", i)
	}

	task.tick()
	assert.Equal(t, 0, w.PlayerCount(), "idle player was not evicted past the threshold")
}
