// Package events carries the side effects of committed admissions.
//
// Core operations never notify or sweep inline. They return a list of
// Events describing what should happen once their transaction has
// committed, and a Dispatcher runs that list on a best-effort basis.
package events

import "github.com/mmynk/studyhall/internal/models"

// Kind distinguishes notification events from sweep requests.
type Kind int

const (
	KindNotify Kind = iota + 1
	KindSweep
)

// Event is one post-commit side effect.
type Event struct {
	Kind Kind

	// Notify fields.
	UserID       string
	Type         models.NotificationType
	Message      string
	InvitationID string

	// GroupID is the group the notification refers to, or the group to sweep.
	GroupID string
}

// Notify builds a notification event.
func Notify(userID string, typ models.NotificationType, message, groupID string) Event {
	return Event{Kind: KindNotify, UserID: userID, Type: typ, Message: message, GroupID: groupID}
}

// NotifyAll builds one notification event per recipient, skipping except.
func NotifyAll(userIDs []string, except string, typ models.NotificationType, message, groupID string) []Event {
	out := make([]Event, 0, len(userIDs))
	for _, id := range userIDs {
		if id == except {
			continue
		}
		out = append(out, Notify(id, typ, message, groupID))
	}
	return out
}

// Sweep builds a request to expire stale invitations of a group.
func Sweep(groupID string) Event {
	return Event{Kind: KindSweep, GroupID: groupID}
}

// Filter returns the events of the given kind.
func Filter(evs []Event, kind Kind) []Event {
	var out []Event
	for _, ev := range evs {
		if ev.Kind == kind {
			out = append(out, ev)
		}
	}
	return out
}
