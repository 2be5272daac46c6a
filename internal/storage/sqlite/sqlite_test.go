package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/studyhall/internal/apperr"
	"github.com/mmynk/studyhall/internal/models"
	"github.com/mmynk/studyhall/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err, "failed to create store")
	t.Cleanup(func() { store.Close() })
	return store
}

func createUser(t *testing.T, store *SQLiteStore, name string) *models.User {
	t.Helper()
	u := &models.User{DisplayName: name}
	require.NoError(t, store.CreateUser(context.Background(), u))
	return u
}

func createGroup(t *testing.T, store *SQLiteStore, hostID string, capacity int) *models.Group {
	t.Helper()
	start := time.Now().UTC().Add(time.Hour).Truncate(time.Millisecond)
	g := &models.Group{
		HostID:      hostID,
		Title:       "Calculus review",
		Start:       start,
		End:         start.Add(time.Hour),
		Capacity:    capacity,
		CurrentSize: 1,
		Visibility:  models.VisibilityPublic,
	}
	ctx := context.Background()
	require.NoError(t, store.CreateGroup(ctx, g))
	require.NoError(t, store.InsertMembership(ctx, &models.Membership{UserID: hostID, GroupID: g.ID}))
	return g
}

func TestSQLiteStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateUser fills defaults", func(t *testing.T) {
		u := createUser(t, store, "Alice")
		assert.NotEmpty(t, u.ID)
		assert.Equal(t, models.UserStatusActive, u.Status)

		got, err := store.GetUser(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, "Alice", got.DisplayName)
	})

	t.Run("GetUser returns ErrNotFound", func(t *testing.T) {
		_, err := store.GetUser(ctx, "nonexistent-id")
		assert.True(t, errors.Is(err, storage.ErrNotFound))
	})

	t.Run("GetGroup round trips", func(t *testing.T) {
		host := createUser(t, store, "Host")
		g := createGroup(t, store, host.ID, 4)

		got, err := store.GetGroup(ctx, g.ID)
		require.NoError(t, err)
		assert.Equal(t, g.HostID, got.HostID)
		assert.True(t, g.Start.Equal(got.Start))
		assert.True(t, g.End.Equal(got.End))
		assert.Equal(t, 4, got.Capacity)
		assert.Equal(t, 1, got.CurrentSize)
		assert.Equal(t, models.VisibilityPublic, got.Visibility)
		assert.False(t, got.IsClosed)
	})

	t.Run("IncrementGroupSize stops at capacity", func(t *testing.T) {
		host := createUser(t, store, "Host")
		g := createGroup(t, store, host.ID, 2)

		ok, err := store.IncrementGroupSize(ctx, g.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = store.IncrementGroupSize(ctx, g.ID)
		require.NoError(t, err)
		assert.False(t, ok, "a full group must not grow")

		got, err := store.GetGroup(ctx, g.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, got.CurrentSize)
	})

	t.Run("DecrementGroupSize floors at zero", func(t *testing.T) {
		host := createUser(t, store, "Host")
		g := createGroup(t, store, host.ID, 3)

		require.NoError(t, store.DecrementGroupSize(ctx, g.ID))
		require.NoError(t, store.DecrementGroupSize(ctx, g.ID))

		got, err := store.GetGroup(ctx, g.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, got.CurrentSize)
	})

	t.Run("InsertMembership twice is AlreadyMember", func(t *testing.T) {
		host := createUser(t, store, "Host")
		g := createGroup(t, store, host.ID, 3)

		err := store.InsertMembership(ctx, &models.Membership{UserID: host.ID, GroupID: g.ID})
		assert.True(t, errors.Is(err, apperr.ErrAlreadyMember))
	})

	t.Run("ListSeatedGroups skips closed and finished groups", func(t *testing.T) {
		user := createUser(t, store, "Seated")
		open := createGroup(t, store, user.ID, 3)
		closed := createGroup(t, store, user.ID, 3)
		require.NoError(t, store.SetGroupClosed(ctx, closed.ID))

		groups, err := store.ListSeatedGroups(ctx, user.ID, time.Now())
		require.NoError(t, err)
		require.Len(t, groups, 1)
		assert.Equal(t, open.ID, groups[0].ID)

		groups, err = store.ListSeatedGroups(ctx, user.ID, open.End.Add(time.Minute))
		require.NoError(t, err)
		assert.Empty(t, groups)
	})

	t.Run("Invitation uniqueness and cascading notification delete", func(t *testing.T) {
		host := createUser(t, store, "Host")
		guest := createUser(t, store, "Guest")
		g := createGroup(t, store, host.ID, 3)

		inv := &models.Invitation{SenderID: host.ID, ReceiverID: guest.ID, GroupID: g.ID}
		require.NoError(t, store.CreateInvitation(ctx, inv))
		require.NoError(t, store.PutNotification(ctx, &models.Notification{
			UserID: guest.ID, Type: models.NotificationInvited, Message: "invited",
			GroupID: g.ID, InvitationID: inv.ID,
		}))

		err := store.CreateInvitation(ctx, &models.Invitation{SenderID: host.ID, ReceiverID: guest.ID, GroupID: g.ID})
		assert.True(t, errors.Is(err, apperr.ErrAlreadySent))

		found, err := store.FindInvitation(ctx, guest.ID, g.ID)
		require.NoError(t, err)
		assert.Equal(t, inv.ID, found.ID)

		deleted, err := store.DeleteInvitation(ctx, inv.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		notifications, err := store.ListNotifications(ctx, guest.ID, 0)
		require.NoError(t, err)
		assert.Empty(t, notifications)

		deleted, err = store.DeleteInvitation(ctx, inv.ID)
		require.NoError(t, err)
		assert.False(t, deleted)
	})

	t.Run("writes to missing rows return ErrNotFound", func(t *testing.T) {
		host := createUser(t, store, "Host")
		g := createGroup(t, store, host.ID, 3)
		require.NoError(t, store.DeleteGroup(ctx, g.ID))

		assert.True(t, errors.Is(store.SetGroupClosed(ctx, g.ID), storage.ErrNotFound))
		assert.True(t, errors.Is(store.DeleteGroup(ctx, g.ID), storage.ErrNotFound))
		assert.True(t, errors.Is(store.SetUserStatus(ctx, "ghost", models.UserStatusBanned), storage.ErrNotFound))
		assert.True(t, errors.Is(store.MarkNotificationRead(ctx, host.ID, "missing"), storage.ErrNotFound))
	})

	t.Run("DeleteGroup cascades", func(t *testing.T) {
		host := createUser(t, store, "Host")
		guest := createUser(t, store, "Guest")
		g := createGroup(t, store, host.ID, 3)
		require.NoError(t, store.CreateInvitation(ctx, &models.Invitation{SenderID: host.ID, ReceiverID: guest.ID, GroupID: g.ID}))

		require.NoError(t, store.DeleteGroup(ctx, g.ID))

		_, err := store.GetGroup(ctx, g.ID)
		assert.True(t, errors.Is(err, storage.ErrNotFound))
		invitations, err := store.ListInvitationsForReceiver(ctx, guest.ID)
		require.NoError(t, err)
		assert.Empty(t, invitations)
		n, err := store.CountMembers(ctx, g.ID)
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}

func TestWithTxRollsBack(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	host := createUser(t, store, "Host")
	g := createGroup(t, store, host.ID, 5)
	guest := createUser(t, store, "Guest")

	boom := errors.New("boom")
	err := store.WithTx(ctx, func(q storage.Queries) error {
		if err := q.InsertMembership(ctx, &models.Membership{UserID: guest.ID, GroupID: g.ID}); err != nil {
			return err
		}
		if _, err := q.IncrementGroupSize(ctx, g.ID); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	member, err := store.IsMember(ctx, guest.ID, g.ID)
	require.NoError(t, err)
	assert.False(t, member)

	got, err := store.GetGroup(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.CurrentSize)
}

func TestMigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	first, err := New(path)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := New(path)
	require.NoError(t, err)
	require.NoError(t, second.Close())
}

func TestUpSection(t *testing.T) {
	content := "-- +migrate Up\nCREATE TABLE a (id TEXT);\n-- +migrate Down\nDROP TABLE a;\n"
	assert.Equal(t, "\nCREATE TABLE a (id TEXT);\n", upSection(content))
	assert.Equal(t, "SELECT 1;", upSection("SELECT 1;"))
}
