// Package api defines the StudyGroupService wire messages. They travel as
// JSON over Connect; see package studyhallconnect for the bindings.
package api

import "time"

// OutcomeConflict is reported instead of an error when an admission hits a
// time overlap that the caller must confirm or decline.
const OutcomeConflict = "CONFLICT"

type Group struct {
	ID          string    `json:"id"`
	HostID      string    `json:"host_id"`
	Title       string    `json:"title"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Capacity    int       `json:"capacity"`
	CurrentSize int       `json:"current_size"`
	IsClosed    bool      `json:"is_closed"`
	Visibility  string    `json:"visibility"`
	CreatedAt   time.Time `json:"created_at"`
}

type Invitation struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	GroupID    string    `json:"group_id"`
	CreatedAt  time.Time `json:"created_at"`
}

type Notification struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	Message      string    `json:"message"`
	GroupID      string    `json:"group_id,omitempty"`
	InvitationID string    `json:"invitation_id,omitempty"`
	Read         bool      `json:"read"`
	CreatedAt    time.Time `json:"created_at"`
}

// ConflictingGroup is a group whose window overlaps the requested one.
type ConflictingGroup struct {
	GroupID string    `json:"group_id"`
	Title   string    `json:"title"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	Hosted  bool      `json:"hosted"`
}

// Conflict carries what a client needs to prompt for confirmation.
// Resolvable is false when confirming would not help; Reason says why.
type Conflict struct {
	Groups     []ConflictingGroup `json:"groups"`
	Resolvable bool               `json:"resolvable"`
	Reason     string             `json:"reason,omitempty"`
}

// AdmissionResponse is returned by every operation that may change who is
// seated where.
type AdmissionResponse struct {
	Outcome     string      `json:"outcome"`
	Group       *Group      `json:"group,omitempty"`
	LeftGroupID string      `json:"left_group_id,omitempty"`
	Invitation  *Invitation `json:"invitation,omitempty"`
	Overwrote   bool        `json:"overwrote,omitempty"`
	Conflict    *Conflict   `json:"conflict,omitempty"`
}

type CreateGroupRequest struct {
	Title      string    `json:"title"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Capacity   int       `json:"capacity"`
	Visibility string    `json:"visibility,omitempty"`
}

type CreateGroupResponse struct {
	Group *Group `json:"group"`
}

type GetGroupRequest struct {
	GroupID string `json:"group_id"`
}

type GetGroupResponse struct {
	Group *Group `json:"group"`
}

type ListMyGroupsRequest struct{}

type ListMyGroupsResponse struct {
	Groups []*Group `json:"groups"`
}

type CloseGroupRequest struct {
	GroupID string `json:"group_id"`
}

type JoinGroupRequest struct {
	GroupID   string `json:"group_id"`
	Confirmed bool   `json:"confirmed,omitempty"`
}

type LeaveGroupRequest struct {
	GroupID string `json:"group_id"`
}

type ResolveConflictRequest struct {
	OldGroupID   string `json:"old_group_id"`
	NewGroupID   string `json:"new_group_id"`
	InvitationID string `json:"invitation_id,omitempty"`
	Confirmed    bool   `json:"confirmed"`
}

type SendInvitationRequest struct {
	ReceiverID string `json:"receiver_id"`
	GroupID    string `json:"group_id"`
}

type AcceptInvitationRequest struct {
	InvitationID string `json:"invitation_id"`
	Confirmed    bool   `json:"confirmed,omitempty"`
}

type RejectInvitationRequest struct {
	InvitationID string `json:"invitation_id"`
}

type ListInvitationsRequest struct{}

type ListInvitationsResponse struct {
	Invitations []*Invitation `json:"invitations"`
}

type ListNotificationsRequest struct {
	Limit int `json:"limit,omitempty"`
}

type ListNotificationsResponse struct {
	Notifications []*Notification `json:"notifications"`
}

type MarkNotificationReadRequest struct {
	NotificationID string `json:"notification_id"`
}

type MarkNotificationReadResponse struct{}

// SweepInvitationsRequest sweeps one group, or every group with pending
// invitations when GroupID is empty.
type SweepInvitationsRequest struct {
	GroupID string `json:"group_id,omitempty"`
}

type SweepInvitationsResponse struct {
	Expired int `json:"expired"`
}
