// Package apperr defines the typed errors returned by the admission core.
//
// Every failure carries a Kind, which tells the caller how to react (fix the
// input, pick another group, confirm a switch, retry), and an optional Reason
// naming the exact condition.
package apperr

import (
	"errors"
	"fmt"
	"time"
)

// Kind classifies an error by how the caller should react.
type Kind int

const (
	KindUnknown Kind = iota
	// KindValidation is missing or malformed input. Not retryable.
	KindValidation
	// KindNotFound is an absent user, group or invitation.
	KindNotFound
	// KindUnauthenticated means no usable identity was presented.
	KindUnauthenticated
	// KindUnauthorized means the actor lacks rights over the target.
	KindUnauthorized
	// KindConflict is a time overlap that needs the caller's confirmation.
	KindConflict
	// KindState means the group is closed, full or expired for this request.
	KindState
	// KindAlreadyExists is an idempotent no-op (already a member, already invited).
	KindAlreadyExists
	// KindTransaction is an infrastructure failure, safe to retry once.
	KindTransaction
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindUnauthorized:
		return "unauthorized"
	case KindConflict:
		return "conflict"
	case KindState:
		return "state"
	case KindAlreadyExists:
		return "already_exists"
	case KindTransaction:
		return "transaction"
	default:
		return "unknown"
	}
}

// Reason names the precise condition behind an error.
type Reason string

const (
	ReasonNone             Reason = ""
	ReasonNotFound         Reason = "NOT_FOUND"
	ReasonClosed           Reason = "CLOSED"
	ReasonFull             Reason = "FULL"
	ReasonExpired          Reason = "EXPIRED"
	ReasonHostCannotLeave  Reason = "HOST_CANNOT_LEAVE"
	ReasonAlreadyMember    Reason = "ALREADY_MEMBER"
	ReasonAlreadySent      Reason = "ALREADY_SENT"
	ReasonReceiverInactive Reason = "RECEIVER_INACTIVE"
	ReasonMultipleConflict Reason = "MULTIPLE_CONFLICTS"
)

// ConflictingGroup describes one group whose window overlaps the target.
type ConflictingGroup struct {
	GroupID string
	Title   string
	Start   time.Time
	End     time.Time
	// Hosted is true when the user hosts the group and so cannot leave it.
	Hosted bool
}

// Error is the concrete error type of the admission core.
type Error struct {
	Kind    Kind
	Reason  Reason
	Message string

	// Conflicts is set for KindConflict.
	Conflicts []ConflictingGroup
	// Resolvable is false when confirming cannot settle the conflict
	// (several conflicting groups, or one the user hosts).
	Resolvable bool

	Err error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Reason != ReasonNone {
		msg = fmt.Sprintf("%s (%s)", msg, e.Reason)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error by Kind and, when set on the target, Reason.
// This lets callers write errors.Is(err, apperr.ErrFull).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Reason == ReasonNone || t.Reason == e.Reason
}

// Sentinels for errors.Is.
var (
	ErrNotFound        = &Error{Kind: KindNotFound}
	ErrClosed          = &Error{Kind: KindState, Reason: ReasonClosed}
	ErrFull            = &Error{Kind: KindState, Reason: ReasonFull}
	ErrExpired         = &Error{Kind: KindState, Reason: ReasonExpired}
	ErrHostCannotLeave = &Error{Kind: KindState, Reason: ReasonHostCannotLeave}
	ErrAlreadyMember   = &Error{Kind: KindAlreadyExists, Reason: ReasonAlreadyMember}
	ErrAlreadySent     = &Error{Kind: KindAlreadyExists, Reason: ReasonAlreadySent}
	ErrConflict        = &Error{Kind: KindConflict}
	ErrTransaction     = &Error{Kind: KindTransaction}
)

// Validation returns a KindValidation error.
func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFound returns a KindNotFound error for the named entity.
func NotFound(entity, id string) *Error {
	return &Error{Kind: KindNotFound, Reason: ReasonNotFound, Message: fmt.Sprintf("%s not found: %s", entity, id)}
}

// Unauthenticated returns a KindUnauthenticated error.
func Unauthenticated(msg string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: msg}
}

// Unauthorized returns a KindUnauthorized error.
func Unauthorized(format string, args ...any) *Error {
	return &Error{Kind: KindUnauthorized, Message: fmt.Sprintf(format, args...)}
}

// State returns a KindState error for reason.
func State(reason Reason, msg string) *Error {
	return &Error{Kind: KindState, Reason: reason, Message: msg}
}

// AlreadyExists returns a KindAlreadyExists error for reason.
func AlreadyExists(reason Reason, msg string) *Error {
	return &Error{Kind: KindAlreadyExists, Reason: reason, Message: msg}
}

// Conflict returns a KindConflict error listing the overlapping groups.
func Conflict(groups []ConflictingGroup) *Error {
	e := &Error{Kind: KindConflict, Message: "time window overlaps an existing commitment", Conflicts: groups}
	switch {
	case len(groups) > 1:
		e.Reason = ReasonMultipleConflict
	case len(groups) == 1 && groups[0].Hosted:
		e.Reason = ReasonHostCannotLeave
	default:
		e.Resolvable = true
	}
	return e
}

// Transaction wraps an infrastructure failure as KindTransaction.
func Transaction(op string, err error) *Error {
	return &Error{Kind: KindTransaction, Message: op, Err: err}
}

// As returns the *Error in err's chain, if any.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf returns the Kind of err, or KindUnknown.
func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.Kind
	}
	return KindUnknown
}

// ReasonOf returns the Reason of err, or ReasonNone.
func ReasonOf(err error) Reason {
	if e, ok := As(err); ok {
		return e.Reason
	}
	return ReasonNone
}
