// Package domain contains core concepts of the relay.
// No runtime, network, or UI logic should be added here.
package domain

// UserID is the durable identity assigned by the user store.
// Immutable once created.
type UserID string

// RoomID identifies a durable room created by the external store.
// The relay never creates or deletes rooms; it only reads membership.
type RoomID string
