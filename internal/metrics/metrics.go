// Package metrics exposes Prometheus collectors for the admission core.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mmynk/studyhall/internal/apperr"
)

const namespace = "studyhall"

// Metrics holds the admission collectors. A nil *Metrics records nothing.
type Metrics struct {
	admissions           *prometheus.CounterVec
	conflicts            *prometheus.CounterVec
	invitationsExpired   prometheus.Counter
	notificationsDropped prometheus.Counter
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		admissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "admissions_total",
			Help:      "Admission operations by operation and outcome.",
		}, []string{"op", "outcome"}),
		conflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "conflicts_total",
			Help:      "Time-window conflicts detected, by operation.",
		}, []string{"op"}),
		invitationsExpired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invitations_expired_total",
			Help:      "Invitations deleted by the expiry sweeper.",
		}),
		notificationsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_dropped_total",
			Help:      "Best-effort notifications that failed to deliver.",
		}),
	}
	reg.MustRegister(m.admissions, m.conflicts, m.invitationsExpired, m.notificationsDropped)
	return m
}

// Outcome is the label value recorded for err.
func Outcome(err error) string {
	if err == nil {
		return "ok"
	}
	return apperr.KindOf(err).String()
}

// ObserveAdmission records the outcome of one operation.
func (m *Metrics) ObserveAdmission(op string, err error) {
	if m == nil {
		return
	}
	m.admissions.WithLabelValues(op, Outcome(err)).Inc()
	if apperr.KindOf(err) == apperr.KindConflict {
		m.conflicts.WithLabelValues(op).Inc()
	}
}

// InvitationsExpired records n swept invitations.
func (m *Metrics) InvitationsExpired(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.invitationsExpired.Add(float64(n))
}

// NotificationDropped records one failed notification.
func (m *Metrics) NotificationDropped() {
	if m == nil {
		return
	}
	m.notificationsDropped.Inc()
}
