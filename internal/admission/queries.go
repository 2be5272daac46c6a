package admission

import (
	"context"

	"github.com/mmynk/studyhall/internal/apperr"
	"github.com/mmynk/studyhall/internal/models"
)

// GetGroup returns a group by ID.
func (e *Engine) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	if err := requireIDs("group_id", groupID); err != nil {
		return nil, err
	}
	return e.getGroup(ctx, e.store, groupID)
}

// ListMyGroups returns the open, unfinished groups the user is seated in.
func (e *Engine) ListMyGroups(ctx context.Context, userID string) ([]*models.Group, error) {
	return e.store.ListSeatedGroups(ctx, userID, e.now())
}

// ListInvitations returns the user's pending invitations.
func (e *Engine) ListInvitations(ctx context.Context, userID string) ([]*models.Invitation, error) {
	return e.store.ListInvitationsForReceiver(ctx, userID)
}

// ListNotifications returns the user's most recent notifications.
func (e *Engine) ListNotifications(ctx context.Context, userID string, limit int) ([]*models.Notification, error) {
	return e.store.ListNotifications(ctx, userID, limit)
}

// MarkNotificationRead acknowledges one notification.
func (e *Engine) MarkNotificationRead(ctx context.Context, userID, notificationID string) error {
	if err := requireIDs("notification_id", notificationID); err != nil {
		return err
	}
	return notFound(e.store.MarkNotificationRead(ctx, userID, notificationID), "notification", notificationID)
}

// CurrentUser resolves the acting user. A missing user is Unauthenticated;
// an inactive or banned one is Unauthorized.
func (e *Engine) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	if userID == "" {
		return nil, apperr.Unauthenticated("no user in request")
	}
	user, err := e.store.GetUser(ctx, userID)
	if err != nil {
		if apperr.KindOf(notFound(err, "user", userID)) == apperr.KindNotFound {
			return nil, apperr.Unauthenticated("unknown user")
		}
		return nil, err
	}
	if !user.IsActive() {
		return nil, apperr.Unauthorized("user %s is %s", user.ID, user.Status)
	}
	return user, nil
}
