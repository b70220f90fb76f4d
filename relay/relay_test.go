package relay

import (
	"context"
	"sync"

	"chat-relay/domain"
)

// fakePeer records deliveries and can be told to fail.
type fakePeer struct {
	mu       sync.Mutex
	sent     [][]byte
	failSend error
	closed   bool
}

func (p *fakePeer) Send(payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failSend != nil {
		return p.failSend
	}
	p.sent = append(p.sent, payload)
	return nil
}

func (p *fakePeer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

func (p *fakePeer) deliveries() [][]byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([][]byte, len(p.sent))
	copy(out, p.sent)
	return out
}

// memberStore answers membership lookups from a static map.
type memberStore struct {
	members map[domain.RoomID][]domain.UserID
	err     error
	delay   func(ctx context.Context) error
}

func (s *memberStore) IsMember(ctx context.Context, id domain.UserID, room domain.RoomID) (bool, error) {
	if s.delay != nil {
		if err := s.delay(ctx); err != nil {
			return false, err
		}
	}
	if s.err != nil {
		return false, s.err
	}
	for _, member := range s.members[room] {
		if member == id {
			return true, nil
		}
	}
	return false, nil
}

// authedConn builds a connection already authenticated as the given user.
func authedConn(id domain.UserID, peer domain.Peer) *domain.Connection {
	conn := domain.NewConnection(peer)
	_ = conn.Accept()
	_ = conn.Authenticate(id)
	return conn
}
