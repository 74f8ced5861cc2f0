// Package apierr defines the closed set of client-facing error kinds used
// throughout the service (spec §7) and the HTTP status each maps to.
package apierr

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

type Kind string

const (
	Unauthenticated    Kind = "Unauthenticated"
	Forbidden          Kind = "Forbidden"
	NotFound           Kind = "NotFound"
	Conflict           Kind = "Conflict"
	InvalidArgument    Kind = "InvalidArgument"
	PreconditionFailed Kind = "PreconditionFailed"
	RateLimited        Kind = "RateLimited"
	Internal           Kind = "Internal"
)

// Error is the error type every service/handler boundary deals in. The
// Cause is preserved for logging but never serialized to the client.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap attaches a stack trace to cause (via pkg/errors) before storing it,
// so a later %+v on Cause prints the call site that produced it rather
// than just its message — the only place in the chain that still knows
// where the underlying error actually came from.
func Wrap(kind Kind, message string, cause error) *Error {
	if cause != nil {
		cause = errors.WithStack(cause)
	}
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// HTTPStatus maps a Kind to the status code reported to the client.
func HTTPStatus(k Kind) int {
	switch k {
	case Unauthenticated:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	case InvalidArgument:
		return http.StatusBadRequest
	case PreconditionFailed:
		return http.StatusPreconditionFailed
	case RateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// As extracts an *Error from any error chain, defaulting to Internal
// when the error is not one of ours — this is the boundary where
// unexpected errors become "Internal" per spec §7.
func As(err error) *Error {
	if err == nil {
		return nil
	}
	if ae, ok := err.(*Error); ok {
		return ae
	}
	var target *Error
	if ok := asChain(err, &target); ok {
		return target
	}
	return &Error{Kind: Internal, Message: "internal error", Cause: err}
}

func asChain(err error, target **Error) bool {
	type unwrapper interface{ Unwrap() error }
	for err != nil {
		if ae, ok := err.(*Error); ok {
			*target = ae
			return true
		}
		u, ok := err.(unwrapper)
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
