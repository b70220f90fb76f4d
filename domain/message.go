// Messages are immutable once built and opaque to the routing layer.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Message is a single chat event addressed to a room. The relay does not
// own its persistence; the message lifecycle ends once fan-out completes.
type Message struct {
	ID      uuid.UUID
	Room    RoomID
	Sender  UserID
	Content string
	SentAt  time.Time
}

func NewMessage(room RoomID, sender UserID, content string) Message {
	return Message{
		ID:      uuid.New(),
		Room:    room,
		Sender:  sender,
		Content: content,
		SentAt:  time.Now().UTC(),
	}
}
