package admission

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/studyhall/internal/apperr"
	"github.com/mmynk/studyhall/internal/models"
)

type overlapFixture struct {
	hostA, hostB, user string
	a, b               *models.Group
}

// overlapping seats user in A and creates an overlapping B of capacity.
func overlapping(h *harness, capacity int) overlapFixture {
	f := overlapFixture{hostA: h.user("HostA"), hostB: h.user("HostB"), user: h.user("U")}
	f.a = h.group(f.hostA, "A", at(10, 0), at(11, 0), 5, models.VisibilityPublic)
	f.b = h.group(f.hostB, "B", at(10, 30), at(11, 30), capacity, models.VisibilityPublic)
	h.join(f.user, f.a.ID)
	return f
}

func TestResolveDeclined(t *testing.T) {
	h := newHarness(t)
	f := overlapping(h, 5)

	res, err := h.engine.Resolve(h.ctx, ResolveRequest{UserID: f.user, OldGroupID: f.a.ID, NewGroupID: f.b.ID})
	require.NoError(t, err)
	assert.Equal(t, OutcomeDeclined, res.Outcome)
	assert.Empty(t, res.Events)
	assert.True(t, h.isMember(f.user, f.a.ID))
	assert.False(t, h.isMember(f.user, f.b.ID))
}

func TestResolveDeclinedRejectsInvitation(t *testing.T) {
	h := newHarness(t)
	f := overlapping(h, 5)
	inv := h.invite(f.hostB, f.user, f.b.ID)

	res, err := h.engine.Resolve(h.ctx, ResolveRequest{
		UserID: f.user, OldGroupID: f.a.ID, NewGroupID: f.b.ID, InvitationID: inv.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, OutcomeDeclined, res.Outcome)
	assert.Equal(t, []string{f.hostB}, notifyTargets(res.Events, models.NotificationInviteRejected))
	assert.Empty(t, h.pending(f.user))
	assert.True(t, h.isMember(f.user, f.a.ID))
}

func TestResolveConfirmed(t *testing.T) {
	h := newHarness(t)
	f := overlapping(h, 5)

	res, err := h.engine.Resolve(h.ctx, ResolveRequest{
		UserID: f.user, OldGroupID: f.a.ID, NewGroupID: f.b.ID, Confirmed: true,
	})
	require.NoError(t, err)
	assert.Equal(t, OutcomeSwitched, res.Outcome)
	assert.False(t, h.isMember(f.user, f.a.ID))
	assert.True(t, h.isMember(f.user, f.b.ID))
	assert.Equal(t, 1, h.reload(f.a.ID).CurrentSize)
	assert.Equal(t, 2, h.reload(f.b.ID).CurrentSize)
	assert.Empty(t, notifyTargets(res.Events, models.NotificationInviteAccepted))
	h.checkInvariants(f.a.ID)
	h.checkInvariants(f.b.ID)
}

// The new group fills between the conflict prompt and the confirmation:
// the switch fails and the user keeps the old seat.
func TestResolveNewGroupFilledMeanwhile(t *testing.T) {
	h := newHarness(t)
	f := overlapping(h, 2)

	_, err := h.engine.Join(h.ctx, f.user, f.b.ID, false)
	require.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	h.join(h.user("Faster"), f.b.ID)

	_, err = h.engine.Resolve(h.ctx, ResolveRequest{
		UserID: f.user, OldGroupID: f.a.ID, NewGroupID: f.b.ID, Confirmed: true,
	})
	assert.True(t, errors.Is(err, apperr.ErrFull))
	assert.True(t, h.isMember(f.user, f.a.ID), "old seat is kept when the switch fails")
	assert.False(t, h.isMember(f.user, f.b.ID))
	assert.Equal(t, 2, h.reload(f.a.ID).CurrentSize)
	h.checkInvariants(f.a.ID)
	h.checkInvariants(f.b.ID)
}

func TestResolveInvalidRequests(t *testing.T) {
	h := newHarness(t)
	f := overlapping(h, 5)

	_, err := h.engine.Resolve(h.ctx, ResolveRequest{UserID: f.user, OldGroupID: f.a.ID, NewGroupID: f.a.ID, Confirmed: true})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = h.engine.Resolve(h.ctx, ResolveRequest{UserID: f.hostA, OldGroupID: f.a.ID, NewGroupID: f.b.ID, Confirmed: true})
	assert.True(t, errors.Is(err, apperr.ErrHostCannotLeave))
	h.checkInvariants(f.a.ID)

	_, err = h.engine.Resolve(h.ctx, ResolveRequest{UserID: f.user, NewGroupID: f.b.ID, Confirmed: true})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestResolveRequiresOldSeat(t *testing.T) {
	h := newHarness(t)
	f := overlapping(h, 5)
	c := h.group(h.user("HostC"), "C", at(10, 15), at(10, 45), 5, models.VisibilityPublic)

	_, err := h.engine.Resolve(h.ctx, ResolveRequest{
		UserID: f.user, OldGroupID: c.ID, NewGroupID: f.b.ID, Confirmed: true,
	})
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.True(t, h.isMember(f.user, f.a.ID))
	assert.False(t, h.isMember(f.user, f.b.ID), "no seat in B while still seated in A")
	h.checkInvariants(f.a.ID)
	h.checkInvariants(f.b.ID)
	h.checkInvariants(c.ID)
}

func TestResolveRequiresOverlap(t *testing.T) {
	h := newHarness(t)
	f := overlapping(h, 5)
	later := h.group(f.hostB, "Later", at(14, 0), at(15, 0), 5, models.VisibilityPublic)

	_, err := h.engine.Resolve(h.ctx, ResolveRequest{
		UserID: f.user, OldGroupID: f.a.ID, NewGroupID: later.ID, Confirmed: true,
	})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.True(t, h.isMember(f.user, f.a.ID))
	assert.False(t, h.isMember(f.user, later.ID))
	assert.Equal(t, 2, h.reload(f.a.ID).CurrentSize)
	h.checkInvariants(later.ID)
}

// A confirmed switch cannot bypass a second commitment that also overlaps
// the new group.
func TestResolveRefusesOtherOverlappingSeats(t *testing.T) {
	h := newHarness(t)
	f := overlapping(h, 5)
	hostD := h.user("HostD")
	d := h.group(hostD, "D", at(11, 0), at(12, 0), 5, models.VisibilityPublic)
	h.join(f.user, d.ID)

	_, err := h.engine.Resolve(h.ctx, ResolveRequest{
		UserID: f.user, OldGroupID: f.a.ID, NewGroupID: f.b.ID, Confirmed: true,
	})
	aerr, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindConflict, aerr.Kind)
	assert.Equal(t, apperr.ReasonMultipleConflict, aerr.Reason)
	assert.False(t, aerr.Resolvable)
	assert.Len(t, aerr.Conflicts, 2)

	assert.True(t, h.isMember(f.user, f.a.ID))
	assert.True(t, h.isMember(f.user, d.ID))
	assert.False(t, h.isMember(f.user, f.b.ID))
	for _, id := range []string{f.a.ID, f.b.ID, d.ID} {
		h.checkInvariants(id)
	}
}
