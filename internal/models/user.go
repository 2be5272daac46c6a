package models

import "time"

// UserStatus is the moderation/verification state of a user.
type UserStatus string

const (
	UserStatusActive   UserStatus = "ACTIVE"
	UserStatusInactive UserStatus = "INACTIVE"
	UserStatusBanned   UserStatus = "BANNED"
)

// Valid reports whether s is a known status.
func (s UserStatus) Valid() bool {
	switch s {
	case UserStatusActive, UserStatusInactive, UserStatusBanned:
		return true
	}
	return false
}

// User represents a registered account.
//
// Users are created at registration and their status is changed by
// moderation or email verification. The admission core never deletes them.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// DisplayName is the name shown to other users.
	DisplayName string

	// Status gates whether the user may act at all.
	// Only ACTIVE users can create, join, invite or accept.
	Status UserStatus

	// CreatedAt is when the account was created.
	CreatedAt time.Time
}

// IsActive reports whether the user may take part in admissions.
func (u *User) IsActive() bool {
	return u != nil && u.Status == UserStatusActive
}
