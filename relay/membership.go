package relay

import (
	"context"
	stderrors "errors"
	"log/slog"
	"sync"
	"time"

	"chat-relay/contract"
	"chat-relay/domain"
	"chat-relay/errors"
)

// MembershipIndex tracks the live broadcast group of each room: connections
// that explicitly joined and are still open. Durable membership is the
// external store's business; the index only consults it on join and never
// writes to it.
type MembershipIndex struct {
	mu     sync.RWMutex
	groups map[domain.RoomID]connSet
	joined map[*domain.Connection]map[domain.RoomID]struct{}

	store       contract.IMembershipStore
	lookupLimit time.Duration
	log         *slog.Logger
}

func NewMembershipIndex(log *slog.Logger, store contract.IMembershipStore,
	lookupLimit time.Duration) *MembershipIndex {
	return &MembershipIndex{
		groups:      make(map[domain.RoomID]connSet),
		joined:      make(map[*domain.Connection]map[domain.RoomID]struct{}),
		store:       store,
		lookupLimit: lookupLimit,
		log:         log,
	}
}

// Join adds the connection to the room's live broadcast group, provided the
// store confirms the identity is a durable member. The lookup is bounded by
// lookupLimit; a timeout surfaces as ErrRoomUnavailable and changes nothing.
// Joining a room twice is idempotent.
func (m *MembershipIndex) Join(ctx context.Context, conn *domain.Connection, room domain.RoomID) error {
	id, ok := conn.Identity()
	if !ok {
		return errors.ErrUnexpectedEvent
	}

	lookupCtx, cancel := context.WithTimeout(ctx, m.lookupLimit)
	defer cancel()

	member, err := m.store.IsMember(lookupCtx, id, room)
	if err != nil {
		if stderrors.Is(err, context.DeadlineExceeded) {
			m.log.Warn("Membership lookup timed out", "room", room, "user", id)
			return errors.ErrRoomUnavailable
		}
		m.log.Error("Membership lookup failed", "room", room, "user", id, "error", err)
		return errors.ErrRoomUnavailable
	}
	if !member {
		return errors.ErrNotAMember
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.groups[room]; !ok {
		m.groups[room] = make(connSet)
	}
	m.groups[room][conn] = struct{}{}

	if _, ok := m.joined[conn]; !ok {
		m.joined[conn] = make(map[domain.RoomID]struct{})
	}
	m.joined[conn][room] = struct{}{}
	return nil
}

// LeaveAll removes the connection from every live group it had joined.
// Called once at disconnect; calling it again is a no-op. Durable membership
// is untouched.
func (m *MembershipIndex) LeaveAll(conn *domain.Connection) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rooms, ok := m.joined[conn]
	if !ok {
		return
	}
	delete(m.joined, conn)

	for room := range rooms {
		if group, ok := m.groups[room]; ok {
			delete(group, conn)
			if len(group) == 0 {
				delete(m.groups, room)
			}
		}
	}
}

// LiveGroupFor returns a snapshot of the connections currently joined to the
// room. Closed-but-not-yet-removed connections are filtered out.
func (m *MembershipIndex) LiveGroupFor(room domain.RoomID) []*domain.Connection {
	m.mu.RLock()
	defer m.mu.RUnlock()

	group, ok := m.groups[room]
	if !ok {
		return nil
	}
	out := make([]*domain.Connection, 0, len(group))
	for conn := range group {
		if conn.IsClosed() {
			continue
		}
		out = append(out, conn)
	}
	return out
}

// GroupCount returns the number of rooms with a non-empty live group.
// Used by the debug server.
func (m *MembershipIndex) GroupCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.groups)
}
