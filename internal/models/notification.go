package models

import "time"

// NotificationType identifies what a notification is about.
type NotificationType string

const (
	NotificationInvited        NotificationType = "INVITED"
	NotificationInviteAccepted NotificationType = "INVITE_ACCEPTED"
	NotificationInviteRejected NotificationType = "INVITE_REJECTED"
	NotificationMemberJoined   NotificationType = "MEMBER_JOINED"
	NotificationMemberLeft     NotificationType = "MEMBER_LEFT"
	NotificationJoinedGroup    NotificationType = "JOINED_GROUP"
	NotificationLeftGroup      NotificationType = "LEFT_GROUP"
	NotificationGroupClosed    NotificationType = "GROUP_CLOSED"
)

// Notification tells a user that something happened.
//
// Notifications are side effects, not authoritative state: they may be
// dropped when delivery fails and are deleted when the invitation or
// membership they describe goes away.
type Notification struct {
	// ID is the unique identifier for the notification (UUID format).
	ID string

	// UserID is the recipient.
	UserID string

	Type    NotificationType
	Message string

	// GroupID and InvitationID are optional references; empty when unset.
	GroupID      string
	InvitationID string

	Read      bool
	CreatedAt time.Time
}
