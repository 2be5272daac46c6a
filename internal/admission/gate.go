package admission

import (
	"time"

	"github.com/mmynk/studyhall/internal/apperr"
	"github.com/mmynk/studyhall/internal/models"
)

// CheckAdmissible reports whether a user may be seated in g at now.
//
// A group is not admissible when it is missing, closed, already started
// (including while the session is live) or full. The same check also decides
// whether the group's pending invitations have gone stale.
func CheckAdmissible(g *models.Group, now time.Time) (bool, apperr.Reason) {
	switch {
	case g == nil:
		return false, apperr.ReasonNotFound
	case g.IsClosed:
		return false, apperr.ReasonClosed
	case g.HasStarted(now):
		return false, apperr.ReasonExpired
	case g.IsFull():
		return false, apperr.ReasonFull
	}
	return true, apperr.ReasonNone
}

// admissionError is CheckAdmissible as an error, nil when admissible.
func admissionError(g *models.Group, now time.Time) error {
	ok, reason := CheckAdmissible(g, now)
	if ok {
		return nil
	}
	switch reason {
	case apperr.ReasonNotFound:
		return apperr.NotFound("group", "")
	case apperr.ReasonClosed:
		return apperr.State(reason, "group is closed")
	case apperr.ReasonExpired:
		return apperr.State(reason, "group has already started")
	default:
		return apperr.State(reason, "group is full")
	}
}
