package events

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mmynk/studyhall/internal/models"
)

type recordingNotifier struct {
	mu   sync.Mutex
	got  []*models.Notification
	fail map[string]bool
}

func (r *recordingNotifier) Notify(_ context.Context, n *models.Notification) error {
	if r.fail[n.UserID] {
		return errors.New("delivery failed")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, n)
	return nil
}

type recordingSweeper struct {
	groups []string
}

func (r *recordingSweeper) SweepGroup(_ context.Context, groupID string) (int, error) {
	r.groups = append(r.groups, groupID)
	return 0, nil
}

type countingObserver struct {
	mu      sync.Mutex
	dropped int
}

func (c *countingObserver) NotificationDropped() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dropped++
}

func TestNotifyAllSkipsActor(t *testing.T) {
	evs := NotifyAll([]string{"host", "joiner", "other"}, "joiner", models.NotificationMemberJoined, "joined", "g1")
	assert.Len(t, evs, 2)
	for _, ev := range evs {
		assert.NotEqual(t, "joiner", ev.UserID)
		assert.Equal(t, KindNotify, ev.Kind)
		assert.Equal(t, "g1", ev.GroupID)
	}
}

func TestDispatch(t *testing.T) {
	notifier := &recordingNotifier{fail: map[string]bool{"broken": true}}
	sweeper := &recordingSweeper{}
	observer := &countingObserver{}
	d := NewDispatcher(notifier, sweeper, observer)

	evs := []Event{
		Notify("a", models.NotificationMemberJoined, "joined", "g1"),
		Notify("broken", models.NotificationMemberJoined, "joined", "g1"),
		Sweep("g1"),
		Notify("b", models.NotificationMemberJoined, "joined", "g1"),
	}
	d.Dispatch(context.Background(), evs)

	assert.Len(t, notifier.got, 2, "failed deliveries are dropped, not retried")
	assert.Equal(t, 1, observer.dropped)
	assert.Equal(t, []string{"g1"}, sweeper.groups)
}

func TestDispatchWithoutSweeper(t *testing.T) {
	d := NewDispatcher(nil, nil, nil)
	assert.NotPanics(t, func() {
		d.Dispatch(context.Background(), []Event{Sweep("g1"), Notify("a", models.NotificationLeftGroup, "left", "g1")})
	})
}
