package apperrors

import (
	"errors"
	"net/http"
)

type Kind string

const (
	KindNotFound        Kind = "NOT_FOUND"
	KindForbidden       Kind = "FORBIDDEN"
	KindConflict        Kind = "CONFLICT"
	KindInvalidArgument Kind = "INVALID_ARGUMENT"
	KindInternal        Kind = "INTERNAL"
)

// Error is the domain error surface: the four validation kinds travel to the
// caller verbatim, everything else is wrapped as KindInternal and only the
// generic message leaves the process.
type Error struct {
	Kind    Kind   `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func InvalidArgument(message string) *Error {
	return &Error{Kind: KindInvalidArgument, Message: message}
}

func Internal() *Error {
	return &Error{Kind: KindInternal, Message: "an unexpected error occurred"}
}

func KindOf(err error) Kind {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Kind
	}

	return KindInternal
}

func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	case KindInvalidArgument:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// IsDomain reports whether err carries one of the four validation kinds and
// may be shown to the caller as-is.
func IsDomain(err error) bool {
	kind := KindOf(err)
	return kind == KindNotFound || kind == KindForbidden ||
		kind == KindConflict || kind == KindInvalidArgument
}
