package admission

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/studyhall/internal/events"
	"github.com/mmynk/studyhall/internal/models"
	"github.com/mmynk/studyhall/internal/storage/sqlite"
)

// base is the engine's "now" in tests. Groups are scheduled later that day.
var base = time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)

func at(hour, min int) time.Time {
	return time.Date(2026, 3, 14, hour, min, 0, 0, time.UTC)
}

type harness struct {
	t      *testing.T
	ctx    context.Context
	store  *sqlite.SQLiteStore
	engine *Engine
	now    time.Time
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err, "failed to create store")
	t.Cleanup(func() { store.Close() })

	h := &harness{t: t, ctx: context.Background(), store: store, now: base}
	opts = append([]Option{WithClock(func() time.Time { return h.now })}, opts...)
	h.engine = New(store, opts...)
	return h
}

func (h *harness) user(name string) string {
	h.t.Helper()
	u := &models.User{DisplayName: name}
	require.NoError(h.t, h.store.CreateUser(h.ctx, u))
	return u.ID
}

func (h *harness) group(hostID, title string, start, end time.Time, capacity int, visibility models.Visibility) *models.Group {
	h.t.Helper()
	res, err := h.engine.CreateGroup(h.ctx, hostID, GroupSpec{
		Title:      title,
		Start:      start,
		End:        end,
		Capacity:   capacity,
		Visibility: visibility,
	})
	require.NoError(h.t, err, "failed to create group %s", title)
	return res.Group
}

func (h *harness) join(userID, groupID string) *Result {
	h.t.Helper()
	res, err := h.engine.Join(h.ctx, userID, groupID, false)
	require.NoError(h.t, err)
	return res
}

func (h *harness) reload(groupID string) *models.Group {
	h.t.Helper()
	g, err := h.store.GetGroup(h.ctx, groupID)
	require.NoError(h.t, err)
	return g
}

func (h *harness) isMember(userID, groupID string) bool {
	h.t.Helper()
	ok, err := h.store.IsMember(h.ctx, userID, groupID)
	require.NoError(h.t, err)
	return ok
}

// checkInvariants asserts the seat counter matches the membership rows and
// stays within [0, capacity], and that the host is seated.
func (h *harness) checkInvariants(groupID string) {
	h.t.Helper()
	g := h.reload(groupID)
	n, err := h.store.CountMembers(h.ctx, groupID)
	require.NoError(h.t, err)
	assert.Equal(h.t, n, g.CurrentSize, "currentSize must equal membership count")
	assert.GreaterOrEqual(h.t, g.CurrentSize, 0)
	assert.LessOrEqual(h.t, g.CurrentSize, g.Capacity)
	assert.True(h.t, h.isMember(g.HostID, groupID), "host must stay seated")
}

func notifyTargets(evs []events.Event, typ models.NotificationType) []string {
	var ids []string
	for _, ev := range events.Filter(evs, events.KindNotify) {
		if ev.Type == typ {
			ids = append(ids, ev.UserID)
		}
	}
	return ids
}

func sweepTargets(evs []events.Event) []string {
	var ids []string
	for _, ev := range events.Filter(evs, events.KindSweep) {
		ids = append(ids, ev.GroupID)
	}
	return ids
}

func TestCheckAdmissible(t *testing.T) {
	open := &models.Group{Start: at(10, 0), End: at(11, 0), Capacity: 3, CurrentSize: 1}

	tests := []struct {
		name   string
		group  *models.Group
		now    time.Time
		ok     bool
		reason string
	}{
		{"open group", open, base, true, ""},
		{"missing group", nil, base, false, "NOT_FOUND"},
		{"closed", &models.Group{Start: at(10, 0), End: at(11, 0), Capacity: 3, CurrentSize: 1, IsClosed: true}, base, false, "CLOSED"},
		{"full", &models.Group{Start: at(10, 0), End: at(11, 0), Capacity: 2, CurrentSize: 2}, base, false, "FULL"},
		{"starts now", open, at(10, 0), false, "EXPIRED"},
		{"live session", open, at(10, 30), false, "EXPIRED"},
		{"finished", open, at(12, 0), false, "EXPIRED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, reason := CheckAdmissible(tt.group, tt.now)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.reason, string(reason))
		})
	}
}
