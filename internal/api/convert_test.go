package api

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/studyhall/internal/apperr"
	"github.com/mmynk/studyhall/internal/models"
)

func TestFromConflict(t *testing.T) {
	start := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	err := apperr.Conflict([]apperr.ConflictingGroup{{GroupID: "g1", Title: "A", Start: start, End: start.Add(time.Hour)}})

	c := FromConflict(err)
	require.NotNil(t, c)
	assert.True(t, c.Resolvable)
	assert.Empty(t, c.Reason)
	require.Len(t, c.Groups, 1)
	assert.Equal(t, "g1", c.Groups[0].GroupID)
	assert.True(t, start.Equal(c.Groups[0].Start))

	assert.Nil(t, FromConflict(nil))
	assert.Nil(t, FromConflict(errors.New("boom")))
	assert.Nil(t, FromConflict(apperr.State(apperr.ReasonFull, "group is full")))
}

func TestFromConflictNotResolvable(t *testing.T) {
	err := apperr.Conflict([]apperr.ConflictingGroup{{GroupID: "g1", Hosted: true}})
	c := FromConflict(err)
	require.NotNil(t, c)
	assert.False(t, c.Resolvable)
	assert.Equal(t, "HOST_CANNOT_LEAVE", c.Reason)
	assert.True(t, c.Groups[0].Hosted)
}

func TestFromGroup(t *testing.T) {
	assert.Nil(t, FromGroup(nil))
	g := FromGroup(&models.Group{ID: "g1", HostID: "h1", Capacity: 3, CurrentSize: 1, Visibility: models.VisibilityPrivate})
	assert.Equal(t, "private", g.Visibility)
	assert.Equal(t, 1, g.CurrentSize)
	assert.Len(t, FromGroups([]*models.Group{{ID: "a"}, {ID: "b"}}), 2)
}
