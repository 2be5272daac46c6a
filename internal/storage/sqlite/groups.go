package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/studyhall/internal/models"
	"github.com/mmynk/studyhall/internal/storage"
)

const groupColumns = "id, host_id, title, start_at, end_at, capacity, current_size, is_closed, visibility, created_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGroup(row rowScanner) (*models.Group, error) {
	g := &models.Group{}
	var start, end, createdAt int64
	var closed int
	var visibility string
	if err := row.Scan(&g.ID, &g.HostID, &g.Title, &start, &end, &g.Capacity, &g.CurrentSize, &closed, &visibility, &createdAt); err != nil {
		return nil, err
	}
	g.Start = fromMillis(start)
	g.End = fromMillis(end)
	g.IsClosed = closed != 0
	g.Visibility = models.Visibility(visibility)
	g.CreatedAt = fromMillis(createdAt)
	return g, nil
}

// CreateGroup persists a new group. ID and CreatedAt are filled in when unset.
func (q *queries) CreateGroup(ctx context.Context, group *models.Group) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt.IsZero() {
		group.CreatedAt = time.Now().UTC()
	}

	_, err := q.db.ExecContext(ctx,
		"INSERT INTO study_groups ("+groupColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		group.ID, group.HostID, group.Title, toMillis(group.Start), toMillis(group.End),
		group.Capacity, group.CurrentSize, boolToInt(group.IsClosed), string(group.Visibility),
		toMillis(group.CreatedAt),
	)
	if err != nil {
		return wrapErr("failed to insert group", err)
	}
	return nil
}

// GetGroup retrieves a group by ID.
func (q *queries) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	g, err := scanGroup(q.db.QueryRowContext(ctx,
		"SELECT "+groupColumns+" FROM study_groups WHERE id = ?", groupID,
	))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, wrapErr("failed to get group", err)
	}
	return g, nil
}

// ListSeatedGroups returns the open, unfinished groups the user is seated in,
// ordered by start time.
func (q *queries) ListSeatedGroups(ctx context.Context, userID string, now time.Time) ([]*models.Group, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT g.id, g.host_id, g.title, g.start_at, g.end_at, g.capacity, g.current_size, g.is_closed, g.visibility, g.created_at
		 FROM study_groups g
		 JOIN memberships m ON m.group_id = g.id
		 WHERE m.user_id = ? AND g.is_closed = 0 AND g.end_at > ?
		 ORDER BY g.start_at`,
		userID, toMillis(now),
	)
	if err != nil {
		return nil, wrapErr("failed to list seated groups", err)
	}
	defer rows.Close()

	var groups []*models.Group
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}
	return groups, nil
}

// IncrementGroupSize takes one seat if one is free.
func (q *queries) IncrementGroupSize(ctx context.Context, groupID string) (bool, error) {
	res, err := q.db.ExecContext(ctx,
		"UPDATE study_groups SET current_size = current_size + 1 WHERE id = ? AND current_size < capacity",
		groupID,
	)
	if err != nil {
		return false, wrapErr("failed to increment group size", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n == 1, nil
}

// DecrementGroupSize frees one seat, flooring at zero.
func (q *queries) DecrementGroupSize(ctx context.Context, groupID string) error {
	_, err := q.db.ExecContext(ctx,
		"UPDATE study_groups SET current_size = MAX(current_size - 1, 0) WHERE id = ?",
		groupID,
	)
	if err != nil {
		return wrapErr("failed to decrement group size", err)
	}
	return nil
}

// SetGroupClosed marks a group closed. Closing twice is a no-op.
func (q *queries) SetGroupClosed(ctx context.Context, groupID string) error {
	res, err := q.db.ExecContext(ctx, "UPDATE study_groups SET is_closed = 1 WHERE id = ?", groupID)
	if err != nil {
		return wrapErr("failed to close group", err)
	}
	return mustAffect(res, "group", groupID)
}

// DeleteGroup removes a group; memberships, invitations and notifications
// go with it through ON DELETE CASCADE.
func (q *queries) DeleteGroup(ctx context.Context, groupID string) error {
	res, err := q.db.ExecContext(ctx, "DELETE FROM study_groups WHERE id = ?", groupID)
	if err != nil {
		return wrapErr("failed to delete group", err)
	}
	return mustAffect(res, "group", groupID)
}
