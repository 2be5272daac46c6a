package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/mmynk/studyhall/internal/apperr"
	"github.com/mmynk/studyhall/internal/models"
)

// IsMember reports whether the user is seated in the group.
func (q *queries) IsMember(ctx context.Context, userID, groupID string) (bool, error) {
	var n int
	err := q.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM memberships WHERE user_id = ? AND group_id = ?",
		userID, groupID,
	).Scan(&n)
	if err != nil {
		return false, wrapErr("failed to check membership", err)
	}
	return n > 0, nil
}

// InsertMembership seats a user. A duplicate row is reported as
// apperr.ErrAlreadyMember.
func (q *queries) InsertMembership(ctx context.Context, m *models.Membership) error {
	if m.JoinedAt.IsZero() {
		m.JoinedAt = time.Now().UTC()
	}
	_, err := q.db.ExecContext(ctx,
		"INSERT INTO memberships (user_id, group_id, joined_at) VALUES (?, ?, ?)",
		m.UserID, m.GroupID, toMillis(m.JoinedAt),
	)
	if isUniqueViolation(err) {
		return apperr.AlreadyExists(apperr.ReasonAlreadyMember, "user is already a member")
	}
	if err != nil {
		return wrapErr("failed to insert membership", err)
	}
	return nil
}

// DeleteMembership unseats a user.
func (q *queries) DeleteMembership(ctx context.Context, userID, groupID string) (bool, error) {
	res, err := q.db.ExecContext(ctx,
		"DELETE FROM memberships WHERE user_id = ? AND group_id = ?",
		userID, groupID,
	)
	if err != nil {
		return false, wrapErr("failed to delete membership", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n > 0, nil
}

// ListMemberIDs returns the IDs of users seated in the group, ordered by join time.
func (q *queries) ListMemberIDs(ctx context.Context, groupID string) ([]string, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT user_id FROM memberships WHERE group_id = ? ORDER BY joined_at, user_id",
		groupID,
	)
	if err != nil {
		return nil, wrapErr("failed to list members", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}
	return ids, nil
}

// CountMembers returns the number of Membership rows for the group.
func (q *queries) CountMembers(ctx context.Context, groupID string) (int, error) {
	var n int
	if err := q.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM memberships WHERE group_id = ?", groupID,
	).Scan(&n); err != nil {
		return 0, wrapErr("failed to count members", err)
	}
	return n, nil
}
