package httperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindConflict
	KindForbidden
	KindInvalidState
	KindUnauthenticated
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindForbidden:
		return "forbidden"
	case KindInvalidState:
		return "invalid_state"
	case KindUnauthenticated:
		return "unauthenticated"
	}
	return "unknown"
}

// BusinessError is a terminal, caller-facing failure. Code is a stable
// snake_case identifier; Message is human readable. CurrentStatus is set
// only for KindInvalidState.
type BusinessError struct {
	Kind          Kind
	Code          string
	Message       string
	CurrentStatus string
}

func (e BusinessError) Error() string {
	if e.CurrentStatus != "" {
		return fmt.Sprintf("%s: %s (current status %s)", e.Kind, e.Code, e.CurrentStatus)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Code)
}

func Validation(code, message string) error {
	return BusinessError{Kind: KindValidation, Code: code, Message: message}
}

func NotFoundErr(code, message string) error {
	return BusinessError{Kind: KindNotFound, Code: code, Message: message}
}

func Conflict(code, message string) error {
	return BusinessError{Kind: KindConflict, Code: code, Message: message}
}

func Forbidden(code, message string) error {
	return BusinessError{Kind: KindForbidden, Code: code, Message: message}
}

func InvalidState(code, message, current string) error {
	return BusinessError{Kind: KindInvalidState, Code: code, Message: message, CurrentStatus: current}
}

func Unauthenticated(code, message string) error {
	return BusinessError{Kind: KindUnauthenticated, Code: code, Message: message}
}

func AsBusiness(err error) (BusinessError, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be, true
	}
	return BusinessError{}, false
}

func IsBusiness(err error, code string) bool {
	be, ok := AsBusiness(err)
	return ok && be.Code == code
}

func IsKind(err error, kind Kind) bool {
	be, ok := AsBusiness(err)
	return ok && be.Kind == kind
}
