// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/mmynk/studyhall/internal/models"
)

// ErrNotFound is returned by single-row lookups when no row matches.
var ErrNotFound = errors.New("record not found")

// Queries is the set of reads and writes the admission core needs.
// The same methods run against the database directly or inside a
// transaction handed out by Store.WithTx.
type Queries interface {
	// Users

	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, userID string) (*models.User, error)
	SetUserStatus(ctx context.Context, userID string, status models.UserStatus) error

	// Groups

	// CreateGroup inserts the group row as given, including CurrentSize.
	CreateGroup(ctx context.Context, group *models.Group) error
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)
	// ListSeatedGroups returns every group the user is seated in (hosted
	// groups included) that is not closed and ends after now.
	ListSeatedGroups(ctx context.Context, userID string, now time.Time) ([]*models.Group, error)
	// IncrementGroupSize adds one seat only while CurrentSize < Capacity.
	// It reports false when the group was already full.
	IncrementGroupSize(ctx context.Context, groupID string) (bool, error)
	// DecrementGroupSize removes one seat, never going below zero.
	DecrementGroupSize(ctx context.Context, groupID string) error
	SetGroupClosed(ctx context.Context, groupID string) error
	// DeleteGroup removes the group and, by cascade, its memberships,
	// invitations and notifications.
	DeleteGroup(ctx context.Context, groupID string) error

	// Memberships

	IsMember(ctx context.Context, userID, groupID string) (bool, error)
	InsertMembership(ctx context.Context, m *models.Membership) error
	// DeleteMembership reports whether a row was removed.
	DeleteMembership(ctx context.Context, userID, groupID string) (bool, error)
	ListMemberIDs(ctx context.Context, groupID string) ([]string, error)
	CountMembers(ctx context.Context, groupID string) (int, error)

	// Invitations

	CreateInvitation(ctx context.Context, inv *models.Invitation) error
	GetInvitation(ctx context.Context, invitationID string) (*models.Invitation, error)
	FindInvitation(ctx context.Context, receiverID, groupID string) (*models.Invitation, error)
	// DeleteInvitation removes the invitation and every notification that
	// references it. It reports whether the invitation existed.
	DeleteInvitation(ctx context.Context, invitationID string) (bool, error)
	// DeleteGroupInvitations removes every invitation of the group and their
	// notifications, returning how many invitations were removed.
	DeleteGroupInvitations(ctx context.Context, groupID string) (int, error)
	ListInvitationsForReceiver(ctx context.Context, receiverID string) ([]*models.Invitation, error)
	// ListGroupsWithInvitations returns the IDs of groups with at least one
	// pending invitation.
	ListGroupsWithInvitations(ctx context.Context) ([]string, error)

	// Notifications

	PutNotification(ctx context.Context, n *models.Notification) error
	ListNotifications(ctx context.Context, userID string, limit int) ([]*models.Notification, error)
	MarkNotificationRead(ctx context.Context, userID, notificationID string) error
	// DeleteUserGroupNotifications clears the user's notifications about a group.
	DeleteUserGroupNotifications(ctx context.Context, userID, groupID string) error
}

// Store is a Queries bound to the database plus transaction control.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the admission core.
type Store interface {
	Queries

	// WithTx runs fn inside one transaction. fn's error rolls the
	// transaction back and is returned as is; begin and commit failures are
	// reported as apperr KindTransaction.
	WithTx(ctx context.Context, fn func(q Queries) error) error

	// Close releases any resources held by the store.
	Close() error
}
