package api

import (
	"github.com/mmynk/studyhall/internal/apperr"
	"github.com/mmynk/studyhall/internal/models"
)

func FromGroup(g *models.Group) *Group {
	if g == nil {
		return nil
	}
	return &Group{
		ID:          g.ID,
		HostID:      g.HostID,
		Title:       g.Title,
		Start:       g.Start,
		End:         g.End,
		Capacity:    g.Capacity,
		CurrentSize: g.CurrentSize,
		IsClosed:    g.IsClosed,
		Visibility:  string(g.Visibility),
		CreatedAt:   g.CreatedAt,
	}
}

func FromGroups(gs []*models.Group) []*Group {
	out := make([]*Group, len(gs))
	for i, g := range gs {
		out[i] = FromGroup(g)
	}
	return out
}

func FromInvitation(inv *models.Invitation) *Invitation {
	if inv == nil {
		return nil
	}
	return &Invitation{
		ID:         inv.ID,
		SenderID:   inv.SenderID,
		ReceiverID: inv.ReceiverID,
		GroupID:    inv.GroupID,
		CreatedAt:  inv.CreatedAt,
	}
}

func FromInvitations(invs []*models.Invitation) []*Invitation {
	out := make([]*Invitation, len(invs))
	for i, inv := range invs {
		out[i] = FromInvitation(inv)
	}
	return out
}

func FromNotifications(ns []*models.Notification) []*Notification {
	out := make([]*Notification, len(ns))
	for i, n := range ns {
		out[i] = &Notification{
			ID:           n.ID,
			Type:         string(n.Type),
			Message:      n.Message,
			GroupID:      n.GroupID,
			InvitationID: n.InvitationID,
			Read:         n.Read,
			CreatedAt:    n.CreatedAt,
		}
	}
	return out
}

// FromConflict converts a Conflict error. It returns nil for any other error.
func FromConflict(err error) *Conflict {
	e, ok := apperr.As(err)
	if !ok || e.Kind != apperr.KindConflict {
		return nil
	}
	c := &Conflict{
		Groups:     make([]ConflictingGroup, len(e.Conflicts)),
		Resolvable: e.Resolvable,
		Reason:     string(e.Reason),
	}
	for i, g := range e.Conflicts {
		c.Groups[i] = ConflictingGroup{GroupID: g.GroupID, Title: g.Title, Start: g.Start, End: g.End, Hosted: g.Hosted}
	}
	return c
}
