// Package admission is the group admission and conflict resolution engine.
//
// It decides who may be seated in a study group and keeps the seat counter,
// the membership rows and the pending invitations consistent with each other.
// Every mutation re-checks the Capacity Gate inside the transaction that
// writes, and returns the side effects it wants (notifications, sweeps) as a
// list of events for the caller to dispatch after commit.
package admission

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/mmynk/studyhall/internal/apperr"
	"github.com/mmynk/studyhall/internal/events"
	"github.com/mmynk/studyhall/internal/metrics"
	"github.com/mmynk/studyhall/internal/models"
	"github.com/mmynk/studyhall/internal/storage"
)

// Outcome names what a successful mutation did.
type Outcome string

const (
	OutcomeCreated  Outcome = "CREATED"
	OutcomeClosed   Outcome = "CLOSED"
	OutcomeJoined   Outcome = "JOINED"
	OutcomeLeft     Outcome = "LEFT"
	OutcomeSwitched Outcome = "SWITCHED"
	OutcomeDeclined Outcome = "DECLINED"
	OutcomeInvited  Outcome = "INVITED"
	OutcomeRejected Outcome = "REJECTED"
)

// Result is returned by every successful mutation.
type Result struct {
	Outcome Outcome

	// Group is the group acted on, as committed.
	Group *models.Group

	// LeftGroupID is the group given up by a switch.
	LeftGroupID string

	// Invitation is set by Send. Overwrote is true when it replaced an
	// earlier invitation for the same receiver.
	Invitation *models.Invitation
	Overwrote  bool

	// Events are the post-commit side effects, in order.
	Events []events.Event
}

// Engine runs admission operations against a store.
type Engine struct {
	store   storage.Store
	clock   func() time.Time
	metrics *metrics.Metrics

	autoConfirmInvites bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the time source.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) {
		if clock != nil {
			e.clock = clock
		}
	}
}

// WithMetrics records operation outcomes into m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithInviteAutoConfirm makes AcceptInvitation treat every overlap as
// confirmed, switching groups without a second round trip.
func WithInviteAutoConfirm(enabled bool) Option {
	return func(e *Engine) {
		e.autoConfirmInvites = enabled
	}
}

// New creates an Engine over store.
func New(store storage.Store, opts ...Option) *Engine {
	e := &Engine{store: store, clock: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) now() time.Time {
	return e.clock().UTC()
}

// inTx runs fn in a transaction, retrying once on a transaction failure.
func (e *Engine) inTx(ctx context.Context, fn func(q storage.Queries) error) error {
	err := e.store.WithTx(ctx, fn)
	if apperr.KindOf(err) == apperr.KindTransaction {
		slog.Warn("Retrying transaction", "error", err)
		err = e.store.WithTx(ctx, fn)
	}
	return err
}

func (e *Engine) observe(op string, err error) {
	e.metrics.ObserveAdmission(op, err)
}

// notFound translates storage.ErrNotFound into an apperr NotFound error.
func notFound(err error, entity, id string) error {
	if errors.Is(err, storage.ErrNotFound) {
		return apperr.NotFound(entity, id)
	}
	return err
}

func (e *Engine) getGroup(ctx context.Context, q storage.Queries, groupID string) (*models.Group, error) {
	g, err := q.GetGroup(ctx, groupID)
	if err != nil {
		return nil, notFound(err, "group", groupID)
	}
	return g, nil
}

func requireIDs(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			return apperr.Validation("%s is required", pairs[i])
		}
	}
	return nil
}
