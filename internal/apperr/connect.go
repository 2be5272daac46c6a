package apperr

import (
	"errors"

	"connectrpc.com/connect"
)

// ConnectCode maps an error's Kind to a Connect status code.
func ConnectCode(err error) connect.Code {
	switch KindOf(err) {
	case KindValidation:
		return connect.CodeInvalidArgument
	case KindNotFound:
		return connect.CodeNotFound
	case KindUnauthenticated:
		return connect.CodeUnauthenticated
	case KindUnauthorized:
		return connect.CodePermissionDenied
	case KindConflict:
		return connect.CodeAborted
	case KindState:
		return connect.CodeFailedPrecondition
	case KindAlreadyExists:
		return connect.CodeAlreadyExists
	case KindTransaction:
		return connect.CodeUnavailable
	default:
		return connect.CodeInternal
	}
}

// ToConnect converts err into a *connect.Error, carrying the Reason as
// the "studyhall-reason" metadata header.
func ToConnect(err error) *connect.Error {
	var ce *connect.Error
	if errors.As(err, &ce) {
		return ce
	}
	cerr := connect.NewError(ConnectCode(err), err)
	if reason := ReasonOf(err); reason != ReasonNone {
		cerr.Meta().Set(ReasonHeader, string(reason))
	}
	return cerr
}

// ReasonHeader is the metadata key carrying Reason on RPC errors.
const ReasonHeader = "Studyhall-Reason"
