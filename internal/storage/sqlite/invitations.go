package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/studyhall/internal/apperr"
	"github.com/mmynk/studyhall/internal/models"
	"github.com/mmynk/studyhall/internal/storage"
)

const invitationColumns = "id, sender_id, receiver_id, group_id, created_at"

func scanInvitation(row rowScanner) (*models.Invitation, error) {
	inv := &models.Invitation{}
	var createdAt int64
	if err := row.Scan(&inv.ID, &inv.SenderID, &inv.ReceiverID, &inv.GroupID, &createdAt); err != nil {
		return nil, err
	}
	inv.CreatedAt = fromMillis(createdAt)
	return inv, nil
}

// CreateInvitation persists a pending invitation. A second invitation for the
// same receiver and group is reported as apperr.ErrAlreadySent.
func (q *queries) CreateInvitation(ctx context.Context, inv *models.Invitation) error {
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	if inv.CreatedAt.IsZero() {
		inv.CreatedAt = time.Now().UTC()
	}
	_, err := q.db.ExecContext(ctx,
		"INSERT INTO invitations ("+invitationColumns+") VALUES (?, ?, ?, ?, ?)",
		inv.ID, inv.SenderID, inv.ReceiverID, inv.GroupID, toMillis(inv.CreatedAt),
	)
	if isUniqueViolation(err) {
		return apperr.AlreadyExists(apperr.ReasonAlreadySent, "invitation already sent")
	}
	if err != nil {
		return wrapErr("failed to insert invitation", err)
	}
	return nil
}

// GetInvitation retrieves an invitation by ID.
func (q *queries) GetInvitation(ctx context.Context, invitationID string) (*models.Invitation, error) {
	inv, err := scanInvitation(q.db.QueryRowContext(ctx,
		"SELECT "+invitationColumns+" FROM invitations WHERE id = ?", invitationID,
	))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("invitation %s: %w", invitationID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, wrapErr("failed to get invitation", err)
	}
	return inv, nil
}

// FindInvitation retrieves the pending invitation for a receiver and group.
func (q *queries) FindInvitation(ctx context.Context, receiverID, groupID string) (*models.Invitation, error) {
	inv, err := scanInvitation(q.db.QueryRowContext(ctx,
		"SELECT "+invitationColumns+" FROM invitations WHERE receiver_id = ? AND group_id = ?",
		receiverID, groupID,
	))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("invitation for %s in %s: %w", receiverID, groupID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, wrapErr("failed to find invitation", err)
	}
	return inv, nil
}

// DeleteInvitation removes an invitation and its notifications.
func (q *queries) DeleteInvitation(ctx context.Context, invitationID string) (bool, error) {
	if _, err := q.db.ExecContext(ctx,
		"DELETE FROM notifications WHERE invitation_id = ?", invitationID,
	); err != nil {
		return false, wrapErr("failed to delete invitation notifications", err)
	}
	res, err := q.db.ExecContext(ctx, "DELETE FROM invitations WHERE id = ?", invitationID)
	if err != nil {
		return false, wrapErr("failed to delete invitation", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n > 0, nil
}

// DeleteGroupInvitations removes every invitation of a group and their notifications.
func (q *queries) DeleteGroupInvitations(ctx context.Context, groupID string) (int, error) {
	if _, err := q.db.ExecContext(ctx,
		"DELETE FROM notifications WHERE invitation_id IN (SELECT id FROM invitations WHERE group_id = ?)",
		groupID,
	); err != nil {
		return 0, wrapErr("failed to delete invitation notifications", err)
	}
	res, err := q.db.ExecContext(ctx, "DELETE FROM invitations WHERE group_id = ?", groupID)
	if err != nil {
		return 0, wrapErr("failed to delete group invitations", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return int(n), nil
}

// ListInvitationsForReceiver returns a user's pending invitations, newest first.
func (q *queries) ListInvitationsForReceiver(ctx context.Context, receiverID string) ([]*models.Invitation, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT "+invitationColumns+" FROM invitations WHERE receiver_id = ? ORDER BY created_at DESC",
		receiverID,
	)
	if err != nil {
		return nil, wrapErr("failed to list invitations", err)
	}
	defer rows.Close()

	var invitations []*models.Invitation
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invitation: %w", err)
		}
		invitations = append(invitations, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate invitations: %w", err)
	}
	return invitations, nil
}

// ListGroupsWithInvitations returns the IDs of groups that have pending invitations.
func (q *queries) ListGroupsWithInvitations(ctx context.Context) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, "SELECT DISTINCT group_id FROM invitations ORDER BY group_id")
	if err != nil {
		return nil, wrapErr("failed to list invited groups", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan group id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate group ids: %w", err)
	}
	return ids, nil
}
