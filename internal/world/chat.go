package world

import "github.com/google/uuid"

// ChatMessageMaxBytes is the maximum length, in UTF-8 bytes, of a
// trimmed chat message body.
const ChatMessageMaxBytes = 256

// ChatHistoryLimit is the number of most-recent chat messages retained
// in the World's ring buffer. Older messages are evicted on overflow.
const ChatHistoryLimit = 100

// ChatMessage is one accepted chat submission, assigned a strictly
// monotonic Seq by the Simulation Task.
type ChatMessage struct {
	PlayerID    uuid.UUID
	PlayerName  string
	PlayerColor string
	Text        string
	Seq         uint64
}

// chatRing is a fixed-capacity ring buffer of ChatMessage, oldest
// evicted first on overflow. Not safe for concurrent use; callers
// serialize access via World's lock.
type chatRing struct {
	messages []ChatMessage
}

func newChatRing() *chatRing {
	return &chatRing{messages: make([]ChatMessage, 0, ChatHistoryLimit)}
}

func (r *chatRing) append(msg ChatMessage) {
	r.messages = append(r.messages, msg)
	if len(r.messages) > ChatHistoryLimit {
		r.messages = r.messages[len(r.messages)-ChatHistoryLimit:]
	}
}

// snapshot returns a copy of the currently retained messages, oldest
// first.
func (r *chatRing) snapshot() []ChatMessage {
	out := make([]ChatMessage, len(r.messages))
	copy(out, r.messages)
	return out
}
