package events

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/mmynk/studyhall/internal/models"
)

// Notifier delivers one notification. Delivery is best effort.
type Notifier interface {
	Notify(ctx context.Context, n *models.Notification) error
}

// Sweeper expires the stale invitations of one group.
type Sweeper interface {
	SweepGroup(ctx context.Context, groupID string) (int, error)
}

// Observer is told about dropped notifications. It may be nil.
type Observer interface {
	NotificationDropped()
}

const defaultFanout = 8

// Dispatcher runs post-commit events. Failures are logged and never
// returned: by the time it runs, the admission has already committed.
type Dispatcher struct {
	notifier Notifier
	sweeper  Sweeper
	observer Observer
	fanout   int
}

// NewDispatcher creates a Dispatcher. sweeper may be set later with SetSweeper
// to break the construction cycle with the admission engine.
func NewDispatcher(notifier Notifier, sweeper Sweeper, observer Observer) *Dispatcher {
	return &Dispatcher{notifier: notifier, sweeper: sweeper, observer: observer, fanout: defaultFanout}
}

// SetSweeper wires the sweeper used for KindSweep events.
func (d *Dispatcher) SetSweeper(s Sweeper) {
	d.sweeper = s
}

// Dispatch delivers every notification concurrently, then runs the sweeps
// in order.
func (d *Dispatcher) Dispatch(ctx context.Context, evs []Event) {
	if len(evs) == 0 {
		return
	}

	var g errgroup.Group
	g.SetLimit(d.fanout)
	for _, ev := range Filter(evs, KindNotify) {
		g.Go(func() error {
			d.notify(ctx, ev)
			return nil
		})
	}
	g.Wait()

	for _, ev := range Filter(evs, KindSweep) {
		if d.sweeper == nil {
			slog.Warn("Sweep requested but no sweeper configured", "group_id", ev.GroupID)
			continue
		}
		expired, err := d.sweeper.SweepGroup(ctx, ev.GroupID)
		if err != nil {
			slog.Warn("Post-commit sweep failed", "group_id", ev.GroupID, "error", err)
			continue
		}
		if expired > 0 {
			slog.Info("Expired stale invitations", "group_id", ev.GroupID, "expired", expired)
		}
	}
}

func (d *Dispatcher) notify(ctx context.Context, ev Event) {
	if d.notifier == nil {
		return
	}
	err := d.notifier.Notify(ctx, &models.Notification{
		UserID:       ev.UserID,
		Type:         ev.Type,
		Message:      ev.Message,
		GroupID:      ev.GroupID,
		InvitationID: ev.InvitationID,
	})
	if err != nil {
		slog.Warn("Dropping notification",
			"user_id", ev.UserID,
			"type", ev.Type,
			"group_id", ev.GroupID,
			"error", err,
		)
		if d.observer != nil {
			d.observer.NotificationDropped()
		}
	}
}

// NotificationWriter persists notifications; storage.Queries satisfies it.
type NotificationWriter interface {
	PutNotification(ctx context.Context, n *models.Notification) error
}

// StoreNotifier writes notifications through a NotificationWriter.
type StoreNotifier struct {
	store NotificationWriter
}

// NewStoreNotifier creates a Notifier persisting into store.
func NewStoreNotifier(store NotificationWriter) *StoreNotifier {
	return &StoreNotifier{store: store}
}

// Notify persists n.
func (s *StoreNotifier) Notify(ctx context.Context, n *models.Notification) error {
	return s.store.PutNotification(ctx, n)
}
