package relay

import (
	"encoding/json"
	"log/slog"

	"chat-relay/contract"
	"chat-relay/domain"
)

// Router resolves a room's live broadcast group and fans the message out to
// every member connection whose identity differs from the sender's. Fan-out
// is sequential over a snapshot, so for a single room messages reach each
// recipient in the order Route was invoked.
type Router struct {
	log        *slog.Logger
	registry   contract.IRegistry
	membership contract.IMembershipIndex
}

func NewRouter(log *slog.Logger, registry contract.IRegistry,
	membership contract.IMembershipIndex) *Router {
	return &Router{log: log, registry: registry, membership: membership}
}

// Route delivers the message to the room's live group. Delivery is
// fire-and-forget per connection: a recipient that fails mid-fan-out is
// evicted (implicit disconnect) and the broadcast continues with the rest.
// The sender identity never receives its own message, on any of its devices.
func (r *Router) Route(msg domain.Message) {
	payload, err := json.Marshal(domain.NewMessageReceived(msg))
	if err != nil {
		r.log.Error("Failed to encode outbound event", "room", msg.Room, "error", err)
		return
	}

	group := r.membership.LiveGroupFor(msg.Room)
	for _, conn := range group {
		id, ok := conn.Identity()
		if !ok || id == msg.Sender {
			continue
		}
		if err := conn.Peer.Send(payload); err != nil {
			r.log.Warn("Delivery failed, evicting connection",
				"conn", conn.ID, "user", id, "room", msg.Room, "error", err)
			r.evict(conn)
		}
	}
}

// evict tears down a connection that failed delivery, exactly as if its
// transport had closed.
func (r *Router) evict(conn *domain.Connection) {
	conn.MarkClosed()
	r.registry.Deregister(conn)
	r.membership.LeaveAll(conn)
	_ = conn.Peer.Close()
}
