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

// CreateUser inserts a new user into the database.
// ID, Status and CreatedAt are filled in when unset.
func (q *queries) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.Status == "" {
		user.Status = models.UserStatusActive
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	_, err := q.db.ExecContext(ctx,
		"INSERT INTO users (id, display_name, status, created_at) VALUES (?, ?, ?, ?)",
		user.ID, user.DisplayName, string(user.Status), toMillis(user.CreatedAt),
	)
	if err != nil {
		return wrapErr("failed to create user", err)
	}
	return nil
}

// GetUser retrieves a user by ID.
func (q *queries) GetUser(ctx context.Context, userID string) (*models.User, error) {
	user := &models.User{}
	var status string
	var createdAt int64
	err := q.db.QueryRowContext(ctx,
		"SELECT id, display_name, status, created_at FROM users WHERE id = ?",
		userID,
	).Scan(&user.ID, &user.DisplayName, &status, &createdAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user %s: %w", userID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, wrapErr("failed to get user", err)
	}
	user.Status = models.UserStatus(status)
	user.CreatedAt = fromMillis(createdAt)
	return user, nil
}

// SetUserStatus changes a user's moderation status.
func (q *queries) SetUserStatus(ctx context.Context, userID string, status models.UserStatus) error {
	res, err := q.db.ExecContext(ctx, "UPDATE users SET status = ? WHERE id = ?", string(status), userID)
	if err != nil {
		return wrapErr("failed to set user status", err)
	}
	return mustAffect(res, "user", userID)
}
