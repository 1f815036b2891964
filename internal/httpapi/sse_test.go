package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"platformer-server/internal/sim"
)

// TestHandleEvents_EmitsInitialSnapshotThenChatHistory verifies the
// /events handler snapshots the World before streaming and replays
// chat history ahead of tailing live frames (spec.md §4.5).
func TestHandleEvents_EmitsInitialSnapshotThenChatHistory(t *testing.T) {
	s, w, _ := newTestServer(t)

	snap := w.Snapshot()
	id := uuid.New()
	snap.Join(id, "Runner", "#ABCDEF", 0, 0)
	_, ok := snap.AppendChat(id, "hi there")
	require.True(t, ok)
	w.Commit(snap)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	req := httptest.NewRequest(http.MethodGet, "/events", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		s.Router([]string{"*"}).ServeHTTP(rec, req)
		close(done)
	}()
	<-done

	body := rec.Body.String()
	assert.Contains(t, body, "event: datastar-patch-signals")
	assert.Contains(t, body, "event: datastar-patch-elements")
	assert.Contains(t, body, "hi there")
}

// TestHandleEvents_TailsLiveStateFrame verifies a frame published on
// the state bus after the client subscribes is streamed to it.
func TestHandleEvents_TailsLiveStateFrame(t *testing.T) {
	s, _, _ := newTestServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/events", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		s.Router([]string{"*"}).ServeHTTP(rec, req)
		close(done)
	}()

	// Give the handler time to subscribe past the initial snapshot frame.
	time.Sleep(20 * time.Millisecond)
	s.stateBus.Publish(sim.StateFrame{Tick: 42})
	time.Sleep(20 * time.Millisecond)

	cancel()
	<-done

	occurrences := strings.Count(rec.Body.String(), "event: datastar-patch-signals")
	assert.GreaterOrEqual(t, occurrences, 2, "expected an initial snapshot frame plus at least one live frame")
}
