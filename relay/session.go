package relay

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"chat-relay/contract"
	"chat-relay/domain"
	"chat-relay/errors"
)

// Session drives the lifecycle of one connection:
// connect -> authenticate -> join rooms -> active -> closed.
// It owns the connection exclusively; the registry and the membership index
// only ever hold references, and both are cleaned up exactly once on Close.
type Session struct {
	log        *slog.Logger
	conn       *domain.Connection
	tokens     contract.ITokenService
	registry   contract.IRegistry
	membership contract.IMembershipIndex
	dispatcher contract.IDispatcher

	closeOnce sync.Once
}

func NewSession(log *slog.Logger, conn *domain.Connection,
	tokens contract.ITokenService, registry contract.IRegistry,
	membership contract.IMembershipIndex, dispatcher contract.IDispatcher) *Session {
	return &Session{
		log:        log,
		conn:       conn,
		tokens:     tokens,
		registry:   registry,
		membership: membership,
		dispatcher: dispatcher,
	}
}

func (s *Session) Connection() *domain.Connection {
	return s.conn
}

// Accept acknowledges the transport-level accept.
func (s *Session) Accept() error {
	return s.conn.Accept()
}

// Authenticate verifies the presented credential and registers the
// connection under the embedded identity. A verification failure is terminal:
// the session is closed and the error propagated for client-visible
// rejection.
func (s *Session) Authenticate(token string) error {
	if s.conn.State() != domain.Unauthenticated {
		return errors.ErrUnexpectedEvent
	}

	id, err := s.tokens.Verify(token)
	if err != nil {
		s.log.Info("Authentication rejected", "conn", s.conn.ID, "error", err)
		// The rejection is reported to the peer before teardown so the
		// client learns why the socket died.
		if payload, marshalErr := json.Marshal(domain.NewErrorEvent(err)); marshalErr == nil {
			_ = s.conn.Peer.Send(payload)
		}
		s.Close()
		return err
	}

	if err := s.conn.Authenticate(id); err != nil {
		return err
	}
	s.registry.Register(id, s.conn)
	s.log.Debug("Connection authenticated", "conn", s.conn.ID, "user", id)
	return nil
}

// JoinRoom records a join intent for an authenticated connection. The first
// successful join makes the session Active.
func (s *Session) JoinRoom(ctx context.Context, room domain.RoomID) error {
	switch s.conn.State() {
	case domain.Authenticated, domain.Active:
	default:
		return errors.ErrUnexpectedEvent
	}

	if err := s.membership.Join(ctx, s.conn, room); err != nil {
		return err
	}
	return s.conn.Activate()
}

// Send hands an inbound message to the dispatcher. Only legal while Active.
func (s *Session) Send(ctx context.Context, room domain.RoomID, content string) error {
	if s.conn.State() != domain.Active {
		return errors.ErrUnexpectedEvent
	}

	id, ok := s.conn.Identity()
	if !ok {
		return errors.ErrUnexpectedEvent
	}
	return s.dispatcher.Dispatch(ctx, domain.NewMessage(room, id, content))
}

// Close tears the session down: terminal state, deregistration, and removal
// from every live broadcast group. Idempotent regardless of the state it
// closed from.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.conn.MarkClosed()
		s.registry.Deregister(s.conn)
		s.membership.LeaveAll(s.conn)
		_ = s.conn.Peer.Close()
		s.log.Debug("Session closed", "conn", s.conn.ID)
	})
}
