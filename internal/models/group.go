package models

import (
	"time"

	"github.com/mmynk/studyhall/internal/schedule"
)

// Visibility controls who, besides the host, may invite to a group.
type Visibility string

const (
	// VisibilityPublic lets any member invite.
	VisibilityPublic Visibility = "public"
	// VisibilityPrivate lets only the host invite.
	VisibilityPrivate Visibility = "private"
)

// Valid reports whether v is a known visibility.
func (v Visibility) Valid() bool {
	return v == VisibilityPublic || v == VisibilityPrivate
}

// MinCapacity is the smallest capacity a group may declare (host plus one).
const MinCapacity = 2

// Group represents a time-boxed, capacity-bounded study session.
//
// CurrentSize is only changed by membership operations, always in the same
// transaction as the Membership row it accounts for.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// HostID is the owner. Immutable; the host is always seated.
	HostID string

	// Title is the display name of the session (e.g., "Linear Algebra, ch. 4").
	Title string

	// Start and End bound the session. Start is strictly before End.
	Start time.Time
	End   time.Time

	// Capacity is the maximum number of seated users, host included.
	Capacity int

	// CurrentSize mirrors the number of Membership rows for the group.
	CurrentSize int

	// IsClosed is set by the host (or moderation) to end the group early.
	IsClosed bool

	Visibility Visibility

	// CreatedAt is when the host created the group.
	CreatedAt time.Time
}

// Window returns the session's time window.
func (g *Group) Window() schedule.Interval {
	return schedule.Interval{Start: g.Start, End: g.End}
}

// IsFull reports whether no seat is left.
func (g *Group) IsFull() bool {
	return g.CurrentSize >= g.Capacity
}

// HasStarted reports whether the session start is at or before now.
func (g *Group) HasStarted(now time.Time) bool {
	return !g.Start.After(now)
}

// IsHost reports whether userID owns the group.
func (g *Group) IsHost(userID string) bool {
	return g.HostID == userID
}
