package httpapi

import (
	"fmt"
	"html"

	"platformer-server/internal/world"
)

// wireGroundState is the `ground_state` JSON shape from spec.md §6:
// exactly one of Flying, Grounded{platform_id}, Sliding{side,platform_id}.
type wireGroundState struct {
	Type       string  `json:"type"`
	PlatformID *string `json:"platform_id,omitempty"`
	Side       *string `json:"side,omitempty"`
}

func toWireGroundState(c world.Contact) wireGroundState {
	switch c.Kind {
	case world.Grounded:
		return wireGroundState{Type: "Grounded", PlatformID: platformIDPointer(c)}
	case world.Sliding:
		side := c.WallSide.String()
		return wireGroundState{Type: "Sliding", Side: &side, PlatformID: wallIDPointer(c)}
	default:
		return wireGroundState{Type: "Flying"}
	}
}

func platformIDPointer(c world.Contact) *string {
	if c.PlatformID == "" {
		return nil
	}
	id := c.PlatformID
	return &id
}

func wallIDPointer(c world.Contact) *string {
	if c.WallID == "" {
		return nil
	}
	id := c.WallID
	return &id
}

// wirePlayer is the JSON shape of a single player entry in the
// `datastar-patch-signals` payload: exactly the field set spec.md §6
// enumerates. Color is deliberately omitted — it is client-derivable
// from the id via the same colorkey algorithm (spec.md §6), and §8's
// encode/decode round-trip property is defined over this exact field
// set.
type wirePlayer struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	X           float64         `json:"x"`
	Y           float64         `json:"y"`
	VelocityX   float64         `json:"velocity_x"`
	VelocityY   float64         `json:"velocity_y"`
	FacingRight bool            `json:"facing_right"`
	GroundState wireGroundState `json:"ground_state"`
}

func toWirePlayer(p world.Player) wirePlayer {
	return wirePlayer{
		ID:          p.ID.String(),
		Name:        p.Name,
		X:           p.X,
		Y:           p.Y,
		VelocityX:   p.VX,
		VelocityY:   p.VY,
		FacingRight: p.FacingRight,
		GroundState: toWireGroundState(p.Contact),
	}
}

// signalsPayload is the body of a `datastar-patch-signals` SSE event:
// `signals {"gameState": [...]}`.
type signalsPayload struct {
	GameState []wirePlayer `json:"gameState"`
}

func toSignalsPayload(players []world.Player) signalsPayload {
	out := make([]wirePlayer, len(players))
	for i, p := range players {
		out[i] = toWirePlayer(p)
	}
	return signalsPayload{GameState: out}
}

// renderChatFragment renders the HTML fragment appended to #chat-messages
// for one chat message, per spec.md §6. Name and text are HTML-escaped,
// mirroring the teacher's sanitizePlayerName use of html.EscapeString.
func renderChatFragment(msg world.ChatMessage) string {
	return fmt.Sprintf(
		`<div><span style="color:%s;">%s:</span> %s</div>`,
		html.EscapeString(msg.PlayerColor),
		html.EscapeString(msg.PlayerName),
		html.EscapeString(msg.Text),
	)
}
