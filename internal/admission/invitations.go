package admission

import (
	"context"
	"errors"
	"fmt"

	"github.com/mmynk/studyhall/internal/apperr"
	"github.com/mmynk/studyhall/internal/events"
	"github.com/mmynk/studyhall/internal/models"
	"github.com/mmynk/studyhall/internal/storage"
)

// SendInvitation invites receiverID to groupID on behalf of senderID.
//
// The host may always invite; other members may invite only to public
// groups. A pending invitation for the same receiver is replaced when the
// host re-invites and refused (ALREADY_SENT) for anyone else.
func (e *Engine) SendInvitation(ctx context.Context, senderID, receiverID, groupID string) (res *Result, err error) {
	defer func() { e.observe("invite", err) }()

	if err := requireIDs("sender_id", senderID, "receiver_id", receiverID, "group_id", groupID); err != nil {
		return nil, err
	}
	if senderID == receiverID {
		return nil, apperr.Validation("cannot invite yourself")
	}
	now := e.now()

	var (
		group     *models.Group
		inv       *models.Invitation
		overwrote bool
	)
	err = e.inTx(ctx, func(q storage.Queries) error {
		overwrote = false
		g, err := e.getGroup(ctx, q, groupID)
		if err != nil {
			return err
		}
		group = g

		isHost := g.IsHost(senderID)
		if !isHost {
			member, err := q.IsMember(ctx, senderID, groupID)
			if err != nil {
				return err
			}
			if !member || g.Visibility != models.VisibilityPublic {
				return apperr.Unauthorized("not allowed to invite to group %s", groupID)
			}
		}

		receiver, err := q.GetUser(ctx, receiverID)
		if err != nil {
			return notFound(err, "user", receiverID)
		}
		if !receiver.IsActive() {
			return apperr.State(apperr.ReasonReceiverInactive, "receiver cannot be invited")
		}
		member, err := q.IsMember(ctx, receiverID, groupID)
		if err != nil {
			return err
		}
		if member {
			return apperr.AlreadyExists(apperr.ReasonAlreadyMember, "receiver is already a member")
		}
		if err := admissionError(g, now); err != nil {
			return err
		}

		existing, err := q.FindInvitation(ctx, receiverID, groupID)
		switch {
		case err == nil:
			if !isHost {
				return apperr.AlreadyExists(apperr.ReasonAlreadySent, "an invitation is already pending")
			}
			if _, err := q.DeleteInvitation(ctx, existing.ID); err != nil {
				return err
			}
			overwrote = true
		case !errors.Is(err, storage.ErrNotFound):
			return err
		}

		inv = &models.Invitation{SenderID: senderID, ReceiverID: receiverID, GroupID: groupID, CreatedAt: now}
		if err := q.CreateInvitation(ctx, inv); err != nil {
			return err
		}
		return q.PutNotification(ctx, &models.Notification{
			UserID:       receiverID,
			Type:         models.NotificationInvited,
			Message:      fmt.Sprintf("You are invited to %q", g.Title),
			GroupID:      groupID,
			InvitationID: inv.ID,
			CreatedAt:    now,
		})
	})
	if err != nil {
		return nil, err
	}

	return &Result{Outcome: OutcomeInvited, Group: group, Invitation: inv, Overwrote: overwrote}, nil
}

// AcceptInvitation seats receiverID in the invitation's group and consumes
// the invitation.
//
// An overlap with the receiver's commitments is a Conflict unless confirmed
// is true (or the engine auto-confirms invitation conflicts), in which case
// the conflicting group is swapped out through Resolve.
func (e *Engine) AcceptInvitation(ctx context.Context, receiverID, invitationID string, confirmed bool) (res *Result, err error) {
	defer func() { e.observe("accept", err) }()

	if err := requireIDs("receiver_id", receiverID, "invitation_id", invitationID); err != nil {
		return nil, err
	}
	confirmed = confirmed || e.autoConfirmInvites
	now := e.now()

	inv, err := e.store.GetInvitation(ctx, invitationID)
	if err != nil {
		return nil, notFound(err, "invitation", invitationID)
	}
	if inv.ReceiverID != receiverID {
		return nil, apperr.Unauthorized("invitation %s is addressed to someone else", invitationID)
	}
	group, err := e.getGroup(ctx, e.store, inv.GroupID)
	if err != nil {
		return nil, err
	}

	member, err := e.store.IsMember(ctx, receiverID, group.ID)
	if err != nil {
		return nil, err
	}
	if member {
		// Nothing to join; the invitation is moot.
		if err := e.inTx(ctx, func(q storage.Queries) error {
			_, err := q.DeleteInvitation(ctx, inv.ID)
			return err
		}); err != nil {
			return nil, err
		}
		return nil, apperr.AlreadyExists(apperr.ReasonAlreadyMember, "already a member of this group")
	}
	if err := admissionError(group, now); err != nil {
		return nil, err
	}

	conflicts, err := findConflicts(ctx, e.store, receiverID, group.Window(), group.ID, now)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		cerr := apperr.Conflict(conflicts)
		if !confirmed || !cerr.Resolvable {
			return nil, cerr
		}
		return e.resolve(ctx, ResolveRequest{
			UserID:       receiverID,
			OldGroupID:   conflicts[0].GroupID,
			NewGroupID:   group.ID,
			InvitationID: inv.ID,
			Confirmed:    true,
		})
	}

	var members []string
	err = e.inTx(ctx, func(q storage.Queries) error {
		deleted, err := q.DeleteInvitation(ctx, inv.ID)
		if err != nil {
			return err
		}
		if !deleted {
			return apperr.NotFound("invitation", inv.ID)
		}
		group, members, err = e.seat(ctx, q, receiverID, inv.GroupID, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	evs := events.NotifyAll(members, receiverID, models.NotificationMemberJoined,
		fmt.Sprintf("A new member joined %q", group.Title), group.ID)
	if inv.SenderID != receiverID {
		evs = append(evs, events.Notify(inv.SenderID, models.NotificationInviteAccepted,
			fmt.Sprintf("Your invitation to %q was accepted", group.Title), group.ID))
	}
	evs = append(evs, events.Sweep(group.ID))
	return &Result{Outcome: OutcomeJoined, Group: group, Events: evs}, nil
}

// RejectInvitation declines an invitation. No membership changes; the
// sender is told.
func (e *Engine) RejectInvitation(ctx context.Context, receiverID, invitationID string) (res *Result, err error) {
	defer func() { e.observe("reject", err) }()

	if err := requireIDs("receiver_id", receiverID, "invitation_id", invitationID); err != nil {
		return nil, err
	}
	return e.reject(ctx, receiverID, invitationID)
}

func (e *Engine) reject(ctx context.Context, receiverID, invitationID string) (*Result, error) {
	var inv *models.Invitation
	var group *models.Group
	err := e.inTx(ctx, func(q storage.Queries) error {
		var err error
		inv, err = q.GetInvitation(ctx, invitationID)
		if err != nil {
			return notFound(err, "invitation", invitationID)
		}
		if inv.ReceiverID != receiverID {
			return apperr.Unauthorized("invitation %s is addressed to someone else", invitationID)
		}
		group, err = e.getGroup(ctx, q, inv.GroupID)
		if err != nil {
			return err
		}
		_, err = q.DeleteInvitation(ctx, inv.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	evs := []events.Event{events.Notify(inv.SenderID, models.NotificationInviteRejected,
		fmt.Sprintf("Your invitation to %q was declined", group.Title), group.ID)}
	return &Result{Outcome: OutcomeRejected, Group: group, Events: evs}, nil
}
