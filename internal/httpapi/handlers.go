package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"platformer-server/internal/intake"
	"platformer-server/internal/sim"
	"platformer-server/internal/world"
)

// DefaultPlayerName is assigned when Init omits a name (SPEC_FULL.md §12).
const DefaultPlayerName = "Player"

type initRequest struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
}

// handleInit implements POST /api/player/init: creates the player if
// absent, otherwise a no-op (spec.md §4.3, §6).
func (s *Server) handleInit(w http.ResponseWriter, r *http.Request) {
	var req initRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "malformed json body", fmt.Errorf("%w: %v", ErrMalformedRequest, err))
		return
	}

	id, err := uuid.Parse(req.PlayerID)
	if err != nil {
		writeError(w, "invalid player_id", fmt.Errorf("%w: %v", ErrMalformedRequest, err))
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = DefaultPlayerName
	}

	ev := intake.Event{
		Kind:     intake.EventJoin,
		PlayerID: id,
		Name:     name,
		Color:    sim.DefaultColorFor(id),
	}
	if err := s.intake.Enqueue(ev); err != nil {
		writeError(w, "server busy", fmt.Errorf("%w: %v", ErrQueueFull, err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"player_id": id.String()})
}

var commandIntents = map[string]world.Intent{
	"MoveLeft":  world.MoveLeft,
	"MoveRight": world.MoveRight,
	"Jump":      world.Jump,
	"Stop":      world.Stop,
}

type commandRequest struct {
	PlayerID string `json:"player_id"`
	Command  struct {
		Type string `json:"type"`
	} `json:"command"`
}

// handleCommand implements POST /api/player/command: overwrites the
// player's pending intent for the next tick (spec.md §4.3, §6).
func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	var req commandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "malformed json body", fmt.Errorf("%w: %v", ErrMalformedRequest, err))
		return
	}

	id, err := uuid.Parse(req.PlayerID)
	if err != nil {
		writeError(w, "invalid player_id", fmt.Errorf("%w: %v", ErrMalformedRequest, err))
		return
	}

	intent, ok := commandIntents[req.Command.Type]
	if !ok {
		writeError(w, "unknown command type", fmt.Errorf("%w: %q", ErrValidation, req.Command.Type))
		return
	}

	ev := intake.Event{Kind: intake.EventMove, PlayerID: id, Intent: intent}
	if err := s.intake.Enqueue(ev); err != nil {
		writeError(w, "server busy", fmt.Errorf("%w: %v", ErrQueueFull, err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "accepted"})
}

type chatRequest struct {
	PlayerID string `json:"player_id"`
	Text     string `json:"text"`
}

// handleChat implements POST /api/chat: validates the message body,
// then enqueues it for the Simulation Task to append and assign a seq
// (spec.md §4.3, §7).
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "malformed json body", fmt.Errorf("%w: %v", ErrMalformedRequest, err))
		return
	}

	id, err := uuid.Parse(req.PlayerID)
	if err != nil {
		writeError(w, "invalid player_id", fmt.Errorf("%w: %v", ErrMalformedRequest, err))
		return
	}

	text := strings.TrimSpace(req.Text)
	if text == "" || len(text) > world.ChatMessageMaxBytes {
		writeError(w, "chat text must be 1-256 bytes after trim", fmt.Errorf("%w: length %d", ErrValidation, len(text)))
		return
	}

	ev := intake.Event{Kind: intake.EventChat, PlayerID: id, Text: text}
	if err := s.intake.Enqueue(ev); err != nil {
		writeError(w, "server busy", fmt.Errorf("%w: %v", ErrQueueFull, err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "accepted"})
}

// handleConfig implements GET /api/config: the frozen level geometry
// established at startup, served verbatim (spec.md §6).
func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.cfg)
}

// handleHealth implements GET /health: never touches the World, never
// blocks (spec.md §6).
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
