//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"chat-relay/domain"
	"context"
	"reflect"
)

// ITokenService issues and verifies the opaque session credential that
// binds a connection to a durable identity.
type ITokenService interface {
	Issue(id domain.UserID) (string, error)
	Verify(token string) (domain.UserID, error)
}

// IRegistry tracks the live connections of each identity. A user may hold
// zero or more simultaneous connections (multi-device).
type IRegistry interface {
	Register(id domain.UserID, conn *domain.Connection)
	Deregister(conn *domain.Connection)
	LiveConnectionsFor(id domain.UserID) []*domain.Connection
}

// IMembershipIndex tracks, per room, the live broadcast group: connections
// that explicitly joined and are still open. Durable membership lives in
// the external store and is only consulted on join.
type IMembershipIndex interface {
	Join(ctx context.Context, conn *domain.Connection, room domain.RoomID) error
	LeaveAll(conn *domain.Connection)
	LiveGroupFor(room domain.RoomID) []*domain.Connection
}

// IRouter fans a message out to the room's live group, never to the sender.
type IRouter interface {
	Route(msg domain.Message)
}

// IMembershipStore is the durable membership collaborator consulted on join.
type IMembershipStore interface {
	IsMember(ctx context.Context, id domain.UserID, room domain.RoomID) (bool, error)
}

// IDispatcher accepts an inbound message for moderation, persistence and
// fan-out. Implemented by the chat service, consumed by the session.
type IDispatcher interface {
	Dispatch(ctx context.Context, msg domain.Message) error
}

// Worker doesn't protect itself; the supervisor does.
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker,
// for logging and supervision purposes.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}
