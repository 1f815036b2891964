package world

import (
	"testing"

	"github.com/google/uuid"
)

func testGeometry() Geometry {
	return Geometry{
		GroundY:      -10,
		PlayerWidth:  0.8,
		PlayerHeight: 1.8,
		GroundColor:  "#444444",
		Platforms: []Platform{
			{ID: "p1", XStart: -3, XEnd: 3, YTop: 2, Height: 0.5, Color: "#3366FF"},
		},
	}
}

// TestNewWorld_CreatesEmptyState verifies that NewWorld initializes an
// empty player map ready for use.
func TestNewWorld_CreatesEmptyState(t *testing.T) {
	w := NewWorld(testGeometry())
	if w == nil {
		t.Fatal("NewWorld() returned nil")
	}
	if count := w.PlayerCount(); count != 0 {
		t.Errorf("PlayerCount() = %d, want 0", count)
	}
}

// TestJoin_AddsPlayerAndIsIdempotent tests that Join adds a new player
// and that a second Join for the same id leaves the world unchanged.
func TestJoin_AddsPlayerAndIsIdempotent(t *testing.T) {
	w := NewWorld(testGeometry())
	id := uuid.New()

	snap := w.Snapshot()
	snap.Join(id, "Runner", "#ABCDEF", 0, 0)
	w.Commit(snap)

	if count := w.PlayerCount(); count != 1 {
		t.Fatalf("PlayerCount() after first join = %d, want 1", count)
	}

	before := w.Snapshot()
	before.Players[id].X = 42 // simulate physics having moved the player

	snap2 := before.Clone()
	snap2.Join(id, "Runner", "#ABCDEF", 0, 0)
	w.Commit(snap2)

	after := w.Snapshot()
	if got := after.Players[id].X; got != 42 {
		t.Errorf("second Join() reset X to %v, want unchanged 42", got)
	}
	if count := w.PlayerCount(); count != 1 {
		t.Errorf("PlayerCount() after second join = %d, want 1 (no duplicate)", count)
	}
}

// TestAppendChat_UnknownPlayerDiscarded tests that chat from an id with
// no prior Join is silently dropped.
func TestAppendChat_UnknownPlayerDiscarded(t *testing.T) {
	w := NewWorld(testGeometry())
	snap := w.Snapshot()

	_, ok := snap.AppendChat(uuid.New(), "hello")
	if ok {
		t.Error("AppendChat() for unknown player returned ok=true, want false")
	}
	if len(snap.ChatHistory()) != 0 {
		t.Errorf("ChatHistory() length = %d, want 0", len(snap.ChatHistory()))
	}
}

// TestAppendChat_SeqStrictlyMonotonic tests that sequential chat
// messages receive strictly increasing sequence numbers.
func TestAppendChat_SeqStrictlyMonotonic(t *testing.T) {
	w := NewWorld(testGeometry())
	id := uuid.New()
	snap := w.Snapshot()
	snap.Join(id, "Runner", "#ABCDEF", 0, 0)

	var lastSeq uint64
	for i := 0; i < 5; i++ {
		msg, ok := snap.AppendChat(id, "hello")
		if !ok {
			t.Fatalf("AppendChat() returned ok=false on message %d", i)
		}
		if msg.Seq <= lastSeq {
			t.Errorf("message %d seq = %d, want > %d", i, msg.Seq, lastSeq)
		}
		lastSeq = msg.Seq
	}
}

// TestChatHistory_EvictsOldestOnOverflow tests that the ring buffer
// retains only the most recent ChatHistoryLimit messages.
func TestChatHistory_EvictsOldestOnOverflow(t *testing.T) {
	w := NewWorld(testGeometry())
	id := uuid.New()
	snap := w.Snapshot()
	snap.Join(id, "Runner", "#ABCDEF", 0, 0)

	const total = ChatHistoryLimit + 50
	for i := 0; i < total; i++ {
		if _, ok := snap.AppendChat(id, "msg"); !ok {
			t.Fatalf("AppendChat() failed on message %d", i)
		}
	}

	history := snap.ChatHistory()
	if len(history) != ChatHistoryLimit {
		t.Fatalf("ChatHistory() length = %d, want %d", len(history), ChatHistoryLimit)
	}
	if got, want := history[len(history)-1].Seq, uint64(total); got != want {
		t.Errorf("last retained seq = %d, want %d", got, want)
	}
}

// TestClone_IsIndependentOfOriginal tests that mutating a clone does not
// affect the original snapshot.
func TestClone_IsIndependentOfOriginal(t *testing.T) {
	w := NewWorld(testGeometry())
	id := uuid.New()
	snap := w.Snapshot()
	snap.Join(id, "Runner", "#ABCDEF", 0, 0)
	w.Commit(snap)

	original := w.Snapshot()
	clone := original.Clone()
	clone.Players[id].X = 100

	if original.Players[id].X == 100 {
		t.Error("mutating clone affected the original snapshot")
	}
}
