package relay

import (
	"context"
	"sync"
	"testing"
	"time"

	"chat-relay/domain"
	"chat-relay/errors"

	"github.com/stretchr/testify/require"
)

type recordingDispatcher struct {
	mu       sync.Mutex
	messages []domain.Message
}

func (d *recordingDispatcher) Dispatch(_ context.Context, msg domain.Message) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.messages = append(d.messages, msg)
	return nil
}

type staticTokens struct {
	identities map[string]domain.UserID
}

func (s staticTokens) Issue(id domain.UserID) (string, error) { return string(id), nil }

func (s staticTokens) Verify(token string) (domain.UserID, error) {
	id, ok := s.identities[token]
	if !ok {
		return "", errors.ErrTokenInvalid
	}
	return id, nil
}

func newSessionFixture(t *testing.T, members map[domain.RoomID][]domain.UserID) (*Session, *Registry, *MembershipIndex, *recordingDispatcher, *fakePeer) {
	t.Helper()
	registry := NewRegistry()
	index := NewMembershipIndex(testLogger(), &memberStore{members: members}, time.Second)
	dispatcher := &recordingDispatcher{}
	tokens := staticTokens{identities: map[string]domain.UserID{"alice-token": "alice"}}
	peer := &fakePeer{}
	conn := domain.NewConnection(peer)
	session := NewSession(testLogger(), conn, tokens, registry, index, dispatcher)
	return session, registry, index, dispatcher, peer
}

func TestSession_Full_Lifecycle(t *testing.T) {
	req := require.New(t)
	session, registry, _, dispatcher, _ := newSessionFixture(t,
		map[domain.RoomID][]domain.UserID{"r1": {"alice"}})

	// Connecting -> Unauthenticated on transport accept
	req.NoError(session.Accept())
	req.Equal(domain.Unauthenticated, session.Connection().State())

	// Unauthenticated -> Authenticated on token verification
	req.NoError(session.Authenticate("alice-token"))
	req.Equal(domain.Authenticated, session.Connection().State())
	req.Len(registry.LiveConnectionsFor("alice"), 1)

	// Authenticated -> Active on first join
	req.NoError(session.JoinRoom(context.Background(), "r1"))
	req.Equal(domain.Active, session.Connection().State())

	// Active connections can send
	req.NoError(session.Send(context.Background(), "r1", "hello"))
	req.Len(dispatcher.messages, 1)
	req.Equal(domain.UserID("alice"), dispatcher.messages[0].Sender)

	// Closed is terminal and cleans everything up
	session.Close()
	req.Equal(domain.Closed, session.Connection().State())
	req.Empty(registry.LiveConnectionsFor("alice"))
}

func TestSession_Authenticate_Bad_Token_Is_Terminal(t *testing.T) {
	req := require.New(t)
	session, registry, _, _, peer := newSessionFixture(t, nil)
	req.NoError(session.Accept())

	err := session.Authenticate("forged-token")

	req.ErrorIs(err, errors.ErrTokenInvalid)
	req.Equal(domain.Closed, session.Connection().State())
	req.True(peer.closed)
	req.Empty(registry.LiveConnectionsFor("alice"))

	// The rejection reached the peer before teardown
	req.Len(peer.deliveries(), 1)
	req.Contains(string(peer.deliveries()[0]), "error")
}

func TestSession_Join_While_Unauthenticated_Is_Rejected(t *testing.T) {
	req := require.New(t)
	session, _, index, _, _ := newSessionFixture(t,
		map[domain.RoomID][]domain.UserID{"r1": {"alice"}})
	req.NoError(session.Accept())

	err := session.JoinRoom(context.Background(), "r1")

	// Rejected without state change
	req.ErrorIs(err, errors.ErrUnexpectedEvent)
	req.Equal(domain.Unauthenticated, session.Connection().State())
	req.Empty(index.LiveGroupFor("r1"))
}

func TestSession_Send_Before_Join_Is_Rejected(t *testing.T) {
	req := require.New(t)
	session, _, _, dispatcher, _ := newSessionFixture(t, nil)
	req.NoError(session.Accept())
	req.NoError(session.Authenticate("alice-token"))

	err := session.Send(context.Background(), "r1", "too early")

	req.ErrorIs(err, errors.ErrUnexpectedEvent)
	req.Empty(dispatcher.messages)
}

func TestSession_Authenticate_Twice_Is_Rejected(t *testing.T) {
	req := require.New(t)
	session, _, _, _, _ := newSessionFixture(t, nil)
	req.NoError(session.Accept())
	req.NoError(session.Authenticate("alice-token"))

	err := session.Authenticate("alice-token")

	req.ErrorIs(err, errors.ErrUnexpectedEvent)
	req.Equal(domain.Authenticated, session.Connection().State())
}

func TestSession_Close_Is_Idempotent_From_Any_State(t *testing.T) {
	req := require.New(t)
	session, registry, index, _, _ := newSessionFixture(t,
		map[domain.RoomID][]domain.UserID{"r1": {"alice"}})
	req.NoError(session.Accept())
	req.NoError(session.Authenticate("alice-token"))
	req.NoError(session.JoinRoom(context.Background(), "r1"))

	session.Close()
	session.Close()

	req.Equal(domain.Closed, session.Connection().State())
	req.Empty(registry.LiveConnectionsFor("alice"))
	req.Empty(index.LiveGroupFor("r1"))
}
