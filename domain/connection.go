package domain

import (
	"sync"

	"chat-relay/errors"

	"github.com/google/uuid"
)

// ConnID is the process-local identifier of a live transport session.
type ConnID string

// State is the lifecycle state of a Connection.
//
// Legal transitions:
//
//	Connecting -> Unauthenticated   transport accepted
//	Unauthenticated -> Authenticated   token verified
//	Authenticated -> Active            first room joined
//	any -> Closed                      transport close or auth rejection
type State int

const (
	Connecting State = iota
	Unauthenticated
	Authenticated
	Active
	Closed
)

func (s State) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Unauthenticated:
		return "unauthenticated"
	case Authenticated:
		return "authenticated"
	case Active:
		return "active"
	case Closed:
		return "closed"
	}
	return "unknown"
}

// Peer is the transport half of a connection: an outbound delivery primitive
// plus teardown. Send must not block indefinitely; a full buffer or a closed
// transport returns an error instead.
type Peer interface {
	Send(payload []byte) error
	Close() error
}

// Connection is a live transport session. It is owned by the lifecycle
// manager for its whole duration; the registry and the router only hold
// references. The identity is attached once, after a successful token
// verification, and never changes afterwards.
type Connection struct {
	ID   ConnID
	Peer Peer

	mu       sync.Mutex
	state    State
	identity UserID
}

func NewConnection(peer Peer) *Connection {
	return &Connection{
		ID:    ConnID(uuid.NewString()),
		Peer:  peer,
		state: Connecting,
	}
}

func (c *Connection) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Identity returns the authenticated identity, if one has been attached.
func (c *Connection) Identity() (UserID, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == Connecting || c.state == Unauthenticated {
		return "", false
	}
	return c.identity, true
}

// Accept moves the connection from Connecting to Unauthenticated.
func (c *Connection) Accept() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Connecting {
		return errors.ErrUnexpectedEvent
	}
	c.state = Unauthenticated
	return nil
}

// Authenticate attaches the identity and moves to Authenticated.
// The identity is fixed once set.
func (c *Connection) Authenticate(id UserID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Unauthenticated {
		return errors.ErrUnexpectedEvent
	}
	c.identity = id
	c.state = Authenticated
	return nil
}

// Activate marks the first successful room join. Further joins while Active
// are legal and leave the state untouched.
func (c *Connection) Activate() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.state {
	case Authenticated:
		c.state = Active
		return nil
	case Active:
		return nil
	default:
		return errors.ErrUnexpectedEvent
	}
}

// MarkClosed is terminal and legal from every state.
func (c *Connection) MarkClosed() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = Closed
}

func (c *Connection) IsClosed() bool {
	return c.State() == Closed
}
