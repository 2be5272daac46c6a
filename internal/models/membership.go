package models

import "time"

// Membership records that a user is seated in a group.
// There is at most one Membership per (UserID, GroupID).
type Membership struct {
	UserID   string
	GroupID  string
	JoinedAt time.Time
}
