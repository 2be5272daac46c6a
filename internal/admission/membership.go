package admission

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mmynk/studyhall/internal/apperr"
	"github.com/mmynk/studyhall/internal/events"
	"github.com/mmynk/studyhall/internal/models"
	"github.com/mmynk/studyhall/internal/schedule"
	"github.com/mmynk/studyhall/internal/storage"
)

// GroupSpec describes a group to create.
type GroupSpec struct {
	Title      string
	Start      time.Time
	End        time.Time
	Capacity   int
	Visibility models.Visibility
}

// CreateGroup creates a group hosted by hostID. The host is seated in the
// same transaction, so a new group starts with CurrentSize 1.
func (e *Engine) CreateGroup(ctx context.Context, hostID string, spec GroupSpec) (res *Result, err error) {
	defer func() { e.observe("create", err) }()

	if err := requireIDs("host_id", hostID); err != nil {
		return nil, err
	}
	title := strings.TrimSpace(spec.Title)
	if title == "" {
		return nil, apperr.Validation("title is required")
	}
	window := schedule.Interval{Start: spec.Start.UTC(), End: spec.End.UTC()}
	if !window.Valid() {
		return nil, apperr.Validation("start must be before end")
	}
	if spec.Capacity < models.MinCapacity {
		return nil, apperr.Validation("capacity must be at least %d", models.MinCapacity)
	}
	visibility := spec.Visibility
	if visibility == "" {
		visibility = models.VisibilityPublic
	}
	if !visibility.Valid() {
		return nil, apperr.Validation("unknown visibility %q", visibility)
	}
	now := e.now()
	if !window.Start.After(now) {
		return nil, apperr.Validation("start must be in the future")
	}

	conflicts, err := findConflicts(ctx, e.store, hostID, window, "", now)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		cerr := apperr.Conflict(conflicts)
		cerr.Resolvable = false
		return nil, cerr
	}

	group := &models.Group{
		HostID:      hostID,
		Title:       title,
		Start:       window.Start,
		End:         window.End,
		Capacity:    spec.Capacity,
		CurrentSize: 1,
		Visibility:  visibility,
		CreatedAt:   now,
	}
	err = e.inTx(ctx, func(q storage.Queries) error {
		group.ID = ""
		if err := q.CreateGroup(ctx, group); err != nil {
			return err
		}
		return q.InsertMembership(ctx, &models.Membership{UserID: hostID, GroupID: group.ID, JoinedAt: now})
	})
	if err != nil {
		return nil, err
	}

	slog.Debug("Group created", "group_id", group.ID, "host_id", hostID)
	return &Result{Outcome: OutcomeCreated, Group: group}, nil
}

// CloseGroup ends a group early. Only the host may close it. Pending
// invitations are swept after commit; closing twice is a no-op.
func (e *Engine) CloseGroup(ctx context.Context, hostID, groupID string) (res *Result, err error) {
	defer func() { e.observe("close", err) }()

	if err := requireIDs("host_id", hostID, "group_id", groupID); err != nil {
		return nil, err
	}

	var group *models.Group
	var members []string
	err = e.inTx(ctx, func(q storage.Queries) error {
		g, err := e.getGroup(ctx, q, groupID)
		if err != nil {
			return err
		}
		if !g.IsHost(hostID) {
			return apperr.Unauthorized("only the host can close group %s", groupID)
		}
		group = g
		if g.IsClosed {
			return nil
		}
		if err := q.SetGroupClosed(ctx, groupID); err != nil {
			return err
		}
		group.IsClosed = true
		members, err = q.ListMemberIDs(ctx, groupID)
		return err
	})
	if err != nil {
		return nil, err
	}

	evs := events.NotifyAll(members, hostID, models.NotificationGroupClosed,
		fmt.Sprintf("%q was closed by the host", group.Title), groupID)
	evs = append(evs, events.Sweep(groupID))
	return &Result{Outcome: OutcomeClosed, Group: group, Events: evs}, nil
}

// Join seats userID in groupID.
//
// Overlaps with the user's other commitments are reported as a Conflict
// error unless confirmed is true, in which case the single conflicting group
// is swapped for the new one through Resolve.
func (e *Engine) Join(ctx context.Context, userID, groupID string, confirmed bool) (res *Result, err error) {
	defer func() { e.observe("join", err) }()

	if err := requireIDs("user_id", userID, "group_id", groupID); err != nil {
		return nil, err
	}
	now := e.now()

	// Advisory checks, for feedback. They are repeated in the transaction.
	group, err := e.getGroup(ctx, e.store, groupID)
	if err != nil {
		return nil, err
	}
	member, err := e.store.IsMember(ctx, userID, groupID)
	if err != nil {
		return nil, err
	}
	if member {
		return nil, apperr.AlreadyExists(apperr.ReasonAlreadyMember, "already a member of this group")
	}
	if err := admissionError(group, now); err != nil {
		return nil, err
	}

	conflicts, err := findConflicts(ctx, e.store, userID, group.Window(), groupID, now)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		cerr := apperr.Conflict(conflicts)
		if !confirmed || !cerr.Resolvable {
			return nil, cerr
		}
		return e.resolve(ctx, ResolveRequest{
			UserID:     userID,
			OldGroupID: conflicts[0].GroupID,
			NewGroupID: groupID,
			Confirmed:  true,
		})
	}

	var members []string
	err = e.inTx(ctx, func(q storage.Queries) error {
		var err error
		group, members, err = e.seat(ctx, q, userID, groupID, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	evs := events.NotifyAll(members, userID, models.NotificationMemberJoined,
		fmt.Sprintf("A new member joined %q", group.Title), groupID)
	evs = append(evs, events.Sweep(groupID))
	return &Result{Outcome: OutcomeJoined, Group: group, Events: evs}, nil
}

// seat is the transactional half of a join: re-check membership and then
// the gate, insert the row and take the seat. It returns the group as
// committed and the IDs of everyone now seated.
func (e *Engine) seat(ctx context.Context, q storage.Queries, userID, groupID string, now time.Time) (*models.Group, []string, error) {
	g, err := e.getGroup(ctx, q, groupID)
	if err != nil {
		return nil, nil, err
	}
	member, err := q.IsMember(ctx, userID, groupID)
	if err != nil {
		return nil, nil, err
	}
	if member {
		return nil, nil, apperr.AlreadyExists(apperr.ReasonAlreadyMember, "already a member of this group")
	}
	if err := admissionError(g, now); err != nil {
		return nil, nil, err
	}
	if err := q.InsertMembership(ctx, &models.Membership{UserID: userID, GroupID: groupID, JoinedAt: now}); err != nil {
		return nil, nil, err
	}
	ok, err := q.IncrementGroupSize(ctx, groupID)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, apperr.State(apperr.ReasonFull, "group is full")
	}
	g.CurrentSize++

	members, err := q.ListMemberIDs(ctx, groupID)
	if err != nil {
		return nil, nil, err
	}
	return g, members, nil
}

// Leave unseats userID from groupID. Hosts cannot leave their own group;
// they close it instead.
func (e *Engine) Leave(ctx context.Context, userID, groupID string) (res *Result, err error) {
	defer func() { e.observe("leave", err) }()

	if err := requireIDs("user_id", userID, "group_id", groupID); err != nil {
		return nil, err
	}

	var group *models.Group
	var remaining []string
	err = e.inTx(ctx, func(q storage.Queries) error {
		g, err := e.getGroup(ctx, q, groupID)
		if err != nil {
			return err
		}
		if g.IsHost(userID) {
			return apperr.State(apperr.ReasonHostCannotLeave, "the host cannot leave; close the group instead")
		}
		if err := e.unseat(ctx, q, userID, g); err != nil {
			return err
		}
		group = g
		remaining, err = q.ListMemberIDs(ctx, groupID)
		return err
	})
	if err != nil {
		return nil, err
	}

	evs := events.NotifyAll(remaining, userID, models.NotificationMemberLeft,
		fmt.Sprintf("A member left %q", group.Title), groupID)
	evs = append(evs, events.Notify(userID, models.NotificationLeftGroup,
		fmt.Sprintf("You left %q", group.Title), groupID))
	return &Result{Outcome: OutcomeLeft, Group: group, Events: evs}, nil
}

// unseat deletes the membership, frees the seat and clears the user's stale
// notifications about the group. g.CurrentSize is updated to match.
func (e *Engine) unseat(ctx context.Context, q storage.Queries, userID string, g *models.Group) error {
	removed, err := q.DeleteMembership(ctx, userID, g.ID)
	if err != nil {
		return err
	}
	if !removed {
		return apperr.NotFound("membership", userID+"/"+g.ID)
	}
	if err := q.DecrementGroupSize(ctx, g.ID); err != nil {
		return err
	}
	if g.CurrentSize > 0 {
		g.CurrentSize--
	}
	return q.DeleteUserGroupNotifications(ctx, userID, g.ID)
}
