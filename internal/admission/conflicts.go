package admission

import (
	"context"
	"time"

	"github.com/mmynk/studyhall/internal/apperr"
	"github.com/mmynk/studyhall/internal/models"
	"github.com/mmynk/studyhall/internal/schedule"
	"github.com/mmynk/studyhall/internal/storage"
)

// findConflicts returns the user's open commitments whose window overlaps
// target, excluding target itself. It only reads.
func findConflicts(ctx context.Context, q storage.Queries, userID string, target schedule.Interval, excludeGroupID string, now time.Time) ([]apperr.ConflictingGroup, error) {
	seated, err := q.ListSeatedGroups(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	candidates := make([]*models.Group, 0, len(seated))
	windows := make([]schedule.Interval, 0, len(seated))
	for _, g := range seated {
		if g.ID == excludeGroupID {
			continue
		}
		candidates = append(candidates, g)
		windows = append(windows, g.Window())
	}

	var conflicts []apperr.ConflictingGroup
	for _, i := range schedule.Conflicts(target, windows) {
		g := candidates[i]
		conflicts = append(conflicts, apperr.ConflictingGroup{
			GroupID: g.ID,
			Title:   g.Title,
			Start:   g.Start,
			End:     g.End,
			Hosted:  g.IsHost(userID),
		})
	}
	return conflicts, nil
}
