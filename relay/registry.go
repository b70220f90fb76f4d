// Package relay is the in-memory authority for presence, room broadcast
// groups and message fan-out. All state is owned by explicit objects passed
// by reference to the connection handlers; there is no ambient state.
package relay

import (
	"sync"

	"chat-relay/domain"
)

type connSet map[*domain.Connection]struct{}

// Registry tracks, per durable identity, the set of currently-live
// connections. A user may hold several at once (multiple devices).
// Safe for concurrent use; every call observes an atomic snapshot.
type Registry struct {
	mu     sync.RWMutex
	conns  map[domain.UserID]connSet
	owners map[*domain.Connection]domain.UserID
}

func NewRegistry() *Registry {
	return &Registry{
		conns:  make(map[domain.UserID]connSet),
		owners: make(map[*domain.Connection]domain.UserID),
	}
}

// Register adds the connection under the identity. Idempotent.
func (r *Registry) Register(id domain.UserID, conn *domain.Connection) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.conns[id]; !ok {
		r.conns[id] = make(connSet)
	}
	r.conns[id][conn] = struct{}{}
	r.owners[conn] = id
}

// Deregister removes the connection from whichever identity holds it.
// No-op when absent. Empty identity sets are dropped to avoid leaking
// entries for users that never reconnect.
func (r *Registry) Deregister(conn *domain.Connection) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.owners[conn]
	if !ok {
		return
	}
	delete(r.owners, conn)

	if set, ok := r.conns[id]; ok {
		delete(set, conn)
		if len(set) == 0 {
			delete(r.conns, id)
		}
	}
}

// LiveConnectionsFor returns a snapshot of the identity's live connections,
// possibly empty.
func (r *Registry) LiveConnectionsFor(id domain.UserID) []*domain.Connection {
	r.mu.RLock()
	defer r.mu.RUnlock()

	set, ok := r.conns[id]
	if !ok {
		return nil
	}
	out := make([]*domain.Connection, 0, len(set))
	for conn := range set {
		out = append(out, conn)
	}
	return out
}

// Size returns the total number of live connections. Used by the debug server.
func (r *Registry) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.owners)
}
