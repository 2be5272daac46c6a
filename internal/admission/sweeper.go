package admission

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/mmynk/studyhall/internal/apperr"
	"github.com/mmynk/studyhall/internal/storage"
)

// Sweep deletes the invitations (and their notifications) of groups that
// are closed, full or already started. With a groupID it checks that group
// only; with an empty groupID it checks every group that has pending
// invitations. Sweeping an already swept group expires nothing.
func (e *Engine) Sweep(ctx context.Context, groupID string) (int, error) {
	if groupID != "" {
		return e.SweepGroup(ctx, groupID)
	}
	return e.SweepAll(ctx)
}

// SweepGroup expires the stale invitations of one group.
func (e *Engine) SweepGroup(ctx context.Context, groupID string) (int, error) {
	now := e.now()
	expired := 0
	err := e.inTx(ctx, func(q storage.Queries) error {
		expired = 0
		g, err := e.getGroup(ctx, q, groupID)
		if err != nil {
			return err
		}
		if ok, _ := CheckAdmissible(g, now); ok {
			return nil
		}
		expired, err = q.DeleteGroupInvitations(ctx, groupID)
		return err
	})
	if err != nil {
		return 0, err
	}
	e.metrics.InvitationsExpired(expired)
	return expired, nil
}

// SweepAll expires stale invitations across all groups. A group deleted
// while the sweep runs is skipped.
func (e *Engine) SweepAll(ctx context.Context) (int, error) {
	groupIDs, err := e.store.ListGroupsWithInvitations(ctx)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, id := range groupIDs {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		n, err := e.SweepGroup(ctx, id)
		if errors.Is(err, apperr.ErrNotFound) {
			continue
		}
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// RunSweeper calls SweepAll every interval until ctx is done.
func (e *Engine) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	slog.Info("Invitation sweeper started", "interval", interval)
	for {
		select {
		case <-ctx.Done():
			slog.Info("Invitation sweeper stopped")
			return
		case <-ticker.C:
			expired, err := e.SweepAll(ctx)
			if err != nil && ctx.Err() == nil {
				slog.Error("Invitation sweep failed", "error", err)
				continue
			}
			if expired > 0 {
				slog.Info("Invitation sweep finished", "expired", expired)
			}
		}
	}
}
