package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/studyhall/internal/models"
)

const defaultNotificationLimit = 50

// PutNotification persists a notification. ID and CreatedAt are filled in when unset.
func (q *queries) PutNotification(ctx context.Context, n *models.Notification) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO notifications (id, user_id, type, message, group_id, invitation_id, is_read, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		n.ID, n.UserID, string(n.Type), n.Message, nullable(n.GroupID), nullable(n.InvitationID),
		boolToInt(n.Read), toMillis(n.CreatedAt),
	)
	if err != nil {
		return wrapErr("failed to insert notification", err)
	}
	return nil
}

// ListNotifications returns the user's notifications, newest first.
func (q *queries) ListNotifications(ctx context.Context, userID string, limit int) ([]*models.Notification, error) {
	if limit <= 0 {
		limit = defaultNotificationLimit
	}
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, user_id, type, message, group_id, invitation_id, is_read, created_at
		 FROM notifications WHERE user_id = ? ORDER BY created_at DESC, id LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, wrapErr("failed to list notifications", err)
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		n := &models.Notification{}
		var typ string
		var groupID, invitationID sql.NullString
		var read int
		var createdAt int64
		if err := rows.Scan(&n.ID, &n.UserID, &typ, &n.Message, &groupID, &invitationID, &read, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		n.Type = models.NotificationType(typ)
		n.GroupID = groupID.String
		n.InvitationID = invitationID.String
		n.Read = read != 0
		n.CreatedAt = fromMillis(createdAt)
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notifications: %w", err)
	}
	return notifications, nil
}

// MarkNotificationRead acknowledges one of the user's notifications.
func (q *queries) MarkNotificationRead(ctx context.Context, userID, notificationID string) error {
	res, err := q.db.ExecContext(ctx,
		"UPDATE notifications SET is_read = 1 WHERE id = ? AND user_id = ?",
		notificationID, userID,
	)
	if err != nil {
		return wrapErr("failed to mark notification read", err)
	}
	return mustAffect(res, "notification", notificationID)
}

// DeleteUserGroupNotifications clears what the user was told about a group.
func (q *queries) DeleteUserGroupNotifications(ctx context.Context, userID, groupID string) error {
	if _, err := q.db.ExecContext(ctx,
		"DELETE FROM notifications WHERE user_id = ? AND group_id = ?",
		userID, groupID,
	); err != nil {
		return wrapErr("failed to delete notifications", err)
	}
	return nil
}
