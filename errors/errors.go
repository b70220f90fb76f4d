package errors

import "fmt"

var (
	// Token failures are terminal for the presenting connection.
	ErrTokenInvalid    = fmt.Errorf("session token invalid")
	ErrTokenExpired    = fmt.Errorf("session token expired")
	ErrTokenGeneration = fmt.Errorf("token generation failed")

	// Membership failures leave the connection open; only the join is refused.
	ErrNotAMember      = fmt.Errorf("not a member of the room")
	ErrRoomUnavailable = fmt.Errorf("membership store unavailable")
	ErrRoomNotFound    = fmt.Errorf("room not found")
	ErrRoomExists      = fmt.Errorf("room already exists")

	// Soft failure for a single recipient during fan-out. The broadcast
	// continues and the failed connection is torn down.
	ErrDeliveryFailed = fmt.Errorf("message delivery failed")

	// An event arrived in a state where it is not legal. Reported to the
	// offending client, no state change.
	ErrUnexpectedEvent = fmt.Errorf("unexpected event for connection state")

	ErrConnectionClosed = fmt.Errorf("connection closed")

	ErrUserAlreadyExists  = fmt.Errorf("user already exists")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrInvalidPassword    = fmt.Errorf("password does not meet complexity rules")

	ErrWorkerPanic = fmt.Errorf("worker panic")
)
