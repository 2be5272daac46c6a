package admission

import (
	"context"
	"fmt"
	"time"

	"github.com/mmynk/studyhall/internal/apperr"
	"github.com/mmynk/studyhall/internal/events"
	"github.com/mmynk/studyhall/internal/models"
	"github.com/mmynk/studyhall/internal/schedule"
	"github.com/mmynk/studyhall/internal/storage"
)

// ResolveRequest asks to move a user from OldGroupID to NewGroupID.
type ResolveRequest struct {
	UserID     string
	OldGroupID string
	NewGroupID string

	// InvitationID is set when the switch comes from accepting an
	// invitation to NewGroupID. The invitation is consumed by the switch,
	// or rejected when the user declines.
	InvitationID string

	// Confirmed is the user's answer to the conflict prompt.
	Confirmed bool
}

// ViaInvite reports whether the switch was triggered by an invitation.
func (r ResolveRequest) ViaInvite() bool {
	return r.InvitationID != ""
}

// Resolve settles a detected time conflict.
//
// When the user declines, nothing is seated or unseated; an invitation that
// led here is rejected. When the user confirms, the old membership is
// dropped and the new one taken in a single transaction, so the user ends
// up seated in exactly one of the two groups.
func (e *Engine) Resolve(ctx context.Context, req ResolveRequest) (res *Result, err error) {
	defer func() { e.observe("resolve", err) }()
	return e.resolve(ctx, req)
}

func (e *Engine) resolve(ctx context.Context, req ResolveRequest) (*Result, error) {
	if err := requireIDs("user_id", req.UserID, "old_group_id", req.OldGroupID, "new_group_id", req.NewGroupID); err != nil {
		return nil, err
	}
	if req.OldGroupID == req.NewGroupID {
		return nil, apperr.Validation("old and new group must differ")
	}

	if !req.Confirmed {
		if req.ViaInvite() {
			res, err := e.reject(ctx, req.UserID, req.InvitationID)
			if err != nil {
				return nil, err
			}
			res.Outcome = OutcomeDeclined
			return res, nil
		}
		return &Result{Outcome: OutcomeDeclined}, nil
	}

	now := e.now()
	var (
		oldGroup, newGroup     *models.Group
		oldMembers, newMembers []string
		inv                    *models.Invitation
	)
	err := e.inTx(ctx, func(q storage.Queries) error {
		var err error
		oldGroup, err = e.getGroup(ctx, q, req.OldGroupID)
		if err != nil {
			return err
		}
		if oldGroup.IsHost(req.UserID) {
			return apperr.State(apperr.ReasonHostCannotLeave, "cannot switch away from a group you host")
		}
		if err := e.checkSwitch(ctx, q, req, oldGroup, now); err != nil {
			return err
		}

		if req.ViaInvite() {
			inv, err = q.GetInvitation(ctx, req.InvitationID)
			if err != nil {
				return notFound(err, "invitation", req.InvitationID)
			}
			if inv.ReceiverID != req.UserID || inv.GroupID != req.NewGroupID {
				return apperr.Unauthorized("invitation %s does not belong to this switch", req.InvitationID)
			}
			if _, err := q.DeleteInvitation(ctx, inv.ID); err != nil {
				return err
			}
		}

		if err := e.unseat(ctx, q, req.UserID, oldGroup); err != nil {
			return err
		}

		// seat re-runs the gate: the new group may have filled or closed
		// since the conflict was reported. Any failure rolls back
		// the unseat above.
		newGroup, newMembers, err = e.seat(ctx, q, req.UserID, req.NewGroupID, now)
		if err != nil {
			return err
		}
		oldMembers, err = q.ListMemberIDs(ctx, req.OldGroupID)
		return err
	})
	if err != nil {
		return nil, err
	}

	evs := []events.Event{events.Notify(req.UserID, models.NotificationLeftGroup,
		fmt.Sprintf("You left %q to join %q", oldGroup.Title, newGroup.Title), oldGroup.ID)}
	evs = append(evs, events.NotifyAll(oldMembers, req.UserID, models.NotificationMemberLeft,
		fmt.Sprintf("A member left %q", oldGroup.Title), oldGroup.ID)...)
	evs = append(evs, events.Notify(req.UserID, models.NotificationJoinedGroup,
		fmt.Sprintf("You joined %q", newGroup.Title), newGroup.ID))
	evs = append(evs, events.NotifyAll(newMembers, req.UserID, models.NotificationMemberJoined,
		fmt.Sprintf("A new member joined %q", newGroup.Title), newGroup.ID)...)
	if inv != nil && inv.SenderID != req.UserID {
		evs = append(evs, events.Notify(inv.SenderID, models.NotificationInviteAccepted,
			fmt.Sprintf("Your invitation to %q was accepted", newGroup.Title), newGroup.ID))
	}
	evs = append(evs, events.Sweep(newGroup.ID))

	return &Result{
		Outcome:     OutcomeSwitched,
		Group:       newGroup,
		LeftGroupID: oldGroup.ID,
		Events:      evs,
	}, nil
}

// checkSwitch verifies, against committed state, that the switch settles a
// real conflict: the user holds the old seat, the two windows overlap and
// the old group is the only commitment standing in the way of the new one.
func (e *Engine) checkSwitch(ctx context.Context, q storage.Queries, req ResolveRequest, oldGroup *models.Group, now time.Time) error {
	member, err := q.IsMember(ctx, req.UserID, oldGroup.ID)
	if err != nil {
		return err
	}
	if !member {
		return apperr.NotFound("membership", req.UserID+"/"+oldGroup.ID)
	}

	target, err := e.getGroup(ctx, q, req.NewGroupID)
	if err != nil {
		return err
	}
	if !schedule.Overlaps(oldGroup.Window(), target.Window()) {
		return apperr.Validation("groups %s and %s do not overlap", oldGroup.ID, target.ID)
	}

	conflicts, err := findConflicts(ctx, q, req.UserID, target.Window(), target.ID, now)
	if err != nil {
		return err
	}
	for _, c := range conflicts {
		if c.GroupID == oldGroup.ID {
			continue
		}
		cerr := apperr.Conflict(conflicts)
		cerr.Resolvable = false
		if cerr.Reason == apperr.ReasonNone {
			cerr.Reason = apperr.ReasonMultipleConflict
		}
		return cerr
	}
	return nil
}
