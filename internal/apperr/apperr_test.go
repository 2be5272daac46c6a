package apperr

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
)

func TestErrorsIs(t *testing.T) {
	full := State(ReasonFull, "group is full")
	wrapped := fmt.Errorf("join: %w", full)

	assert.True(t, errors.Is(wrapped, ErrFull))
	assert.False(t, errors.Is(wrapped, ErrClosed))
	assert.Equal(t, KindState, KindOf(wrapped))
	assert.Equal(t, ReasonFull, ReasonOf(wrapped))

	assert.Equal(t, KindUnknown, KindOf(errors.New("boom")))
	assert.Equal(t, ReasonNone, ReasonOf(nil))
}

func TestConflictResolvable(t *testing.T) {
	now := time.Now()
	one := Conflict([]ConflictingGroup{{GroupID: "a", Start: now, End: now.Add(time.Hour)}})
	assert.True(t, one.Resolvable)
	assert.Equal(t, ReasonNone, one.Reason)

	two := Conflict([]ConflictingGroup{{GroupID: "a"}, {GroupID: "b"}})
	assert.False(t, two.Resolvable)
	assert.Equal(t, ReasonMultipleConflict, two.Reason)

	hosted := Conflict([]ConflictingGroup{{GroupID: "a", Hosted: true}})
	assert.False(t, hosted.Resolvable)
	assert.Equal(t, ReasonHostCannotLeave, hosted.Reason)
}

func TestConnectCode(t *testing.T) {
	tests := []struct {
		err  error
		want connect.Code
	}{
		{Validation("bad"), connect.CodeInvalidArgument},
		{NotFound("group", "g1"), connect.CodeNotFound},
		{Unauthenticated("no token"), connect.CodeUnauthenticated},
		{Unauthorized("not host"), connect.CodePermissionDenied},
		{Conflict(nil), connect.CodeAborted},
		{State(ReasonExpired, "started"), connect.CodeFailedPrecondition},
		{AlreadyExists(ReasonAlreadyMember, "seated"), connect.CodeAlreadyExists},
		{Transaction("commit", errors.New("busy")), connect.CodeUnavailable},
		{errors.New("boom"), connect.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, ConnectCode(tt.err))
		})
	}
}

func TestToConnectCarriesReason(t *testing.T) {
	cerr := ToConnect(State(ReasonClosed, "group is closed"))
	assert.Equal(t, connect.CodeFailedPrecondition, cerr.Code())
	assert.Equal(t, "CLOSED", cerr.Meta().Get(ReasonHeader))
}
