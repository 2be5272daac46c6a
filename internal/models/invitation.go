package models

import "time"

// Invitation is a pending offer for ReceiverID to join GroupID.
//
// There is no status field: accepting, rejecting, overwriting or expiring an
// invitation deletes it. At most one invitation exists per (ReceiverID, GroupID).
type Invitation struct {
	// ID is the unique identifier for the invitation (UUID format).
	ID string

	// SenderID is the host or public-group member who sent the invite.
	SenderID string

	ReceiverID string
	GroupID    string

	CreatedAt time.Time
}
