package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/mmynk/studyhall/internal/apperr"
)

func TestObserveAdmission(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveAdmission("join", nil)
	m.ObserveAdmission("join", apperr.ErrFull)
	m.ObserveAdmission("join", apperr.Conflict(nil))
	m.ObserveAdmission("accept", apperr.Conflict(nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.admissions.WithLabelValues("join", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.admissions.WithLabelValues("join", "state")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.conflicts.WithLabelValues("join")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.conflicts.WithLabelValues("accept")))
}

func TestCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.InvitationsExpired(3)
	m.InvitationsExpired(0)
	m.NotificationDropped()

	assert.Equal(t, 3.0, testutil.ToFloat64(m.invitationsExpired))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.notificationsDropped))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveAdmission("join", errors.New("boom"))
		m.InvitationsExpired(1)
		m.NotificationDropped()
	})
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, "ok", Outcome(nil))
	assert.Equal(t, "not_found", Outcome(apperr.NotFound("group", "g1")))
	assert.Equal(t, "unknown", Outcome(errors.New("boom")))
}
