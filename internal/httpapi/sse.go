package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"platformer-server/internal/world"
)

// heartbeatInterval is the minimum cadence of the SSE comment line that
// defeats intermediary idle timeouts (spec.md §4.5).
const heartbeatInterval = 30 * time.Second

// handleEvents implements GET /events: snapshot-then-stream, tailing
// both broadcast buses for the lifetime of the connection (spec.md
// §4.5). Mirrors the teacher's per-client write loop, adapted from a
// dedicated goroutine over a WebSocket to a single SSE response body.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, "streaming not supported", ErrMalformedRequest)
		return
	}

	snapshot := s.world.Snapshot()

	stateSub, unsubState := s.stateBus.Subscribe()
	defer unsubState()
	chatSub, unsubChat := s.chatBus.Subscribe()
	defer unsubChat()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	writeSignalsFrame(w, playerValues(snapshot.SortedPlayers()))
	for _, msg := range snapshot.ChatHistory() {
		writeElementsFrame(w, msg)
	}
	flusher.Flush()

	ctx := r.Context()
	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case frame, open := <-stateSub.C:
			if !open {
				return
			}
			if stateSub.Lagged() {
				// Resync: emit a fresh full snapshot rather than a
				// possibly-stale frame pulled from behind the drop.
				writeSignalsFrame(w, playerValues(s.world.Snapshot().SortedPlayers()))
			} else {
				writeSignalsFrame(w, frame.Players)
			}
			flusher.Flush()

		case chatFrame, open := <-chatSub.C:
			if !open {
				return
			}
			chatSub.Lagged() // chat frames carry their own seq; clear only.
			writeElementsFrame(w, chatFrame.Message)
			flusher.Flush()

		case <-heartbeat.C:
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		}
	}
}

func writeSignalsFrame(w http.ResponseWriter, players []world.Player) {
	body, err := json.Marshal(toSignalsPayload(players))
	if err != nil {
		return
	}
	fmt.Fprintf(w, "event: datastar-patch-signals\ndata: signals %s\n\n", body)
}

func writeElementsFrame(w http.ResponseWriter, msg world.ChatMessage) {
	fragment := renderChatFragment(msg)
	fmt.Fprintf(w, "event: datastar-patch-elements\ndata: elements #chat-messages append %s\n\n", fragment)
}

func playerValues(players []*world.Player) []world.Player {
	out := make([]world.Player, len(players))
	for i, p := range players {
		out[i] = *p
	}
	return out
}
