package domain

import "time"

// EventType is the client-facing event vocabulary carried over the socket.
type EventType string

const (
	// Client -> server
	EventJoinRoom    EventType = "join_room"
	EventSendMessage EventType = "send_message"

	// Server -> client
	EventMessageReceived EventType = "message_received"
	EventJoined          EventType = "joined"
	EventError           EventType = "error"
)

// Event is the JSON wire envelope exchanged with clients.
type Event struct {
	Type    EventType `json:"type"`
	Room    RoomID    `json:"room,omitempty"`
	Sender  UserID    `json:"sender,omitempty"`
	Content string    `json:"content,omitempty"`
	SentAt  time.Time `json:"sent_at,omitzero"`
	Error   string    `json:"error,omitempty"`
}

// NewMessageReceived is the envelope delivered to every peer during fan-out.
func NewMessageReceived(msg Message) Event {
	return Event{
		Type:    EventMessageReceived,
		Room:    msg.Room,
		Sender:  msg.Sender,
		Content: msg.Content,
		SentAt:  msg.SentAt,
	}
}

// NewErrorEvent reports a failure to the offending client only.
func NewErrorEvent(err error) Event {
	return Event{Type: EventError, Error: err.Error()}
}
