package entity

import (
	"errors"
	"fmt"
)

// Kind tags the stable error kind a PlannerError carries. Construction
// errors (ParseError, ConfigError) are surfaced immediately; runtime
// errors (UnsatisfiableRule, Internal) move the scheduler into Failed;
// accessor errors (NotReady, Cancelled) never corrupt state.
type Kind string

const (
	KindParseError        Kind = "ParseError"
	KindConfigError       Kind = "ConfigError"
	KindUnsatisfiableRule Kind = "UnsatisfiableRule"
	KindNotReady          Kind = "NotReady"
	KindCancelled         Kind = "Cancelled"
	KindInternal          Kind = "Internal"
)

// PlannerError is the error type surfaced by every core package. It
// carries a stable Kind tag and a short human-readable message; per the
// error-handling contract, no stack traces are part of the contract.
type PlannerError struct {
	ErrKind Kind
	Message string
}

func (e *PlannerError) Error() string {
	return fmt.Sprintf("%s: %s", e.ErrKind, e.Message)
}

// ErrorKind returns the stable kind tag.
func (e *PlannerError) ErrorKind() Kind { return e.ErrKind }

// NewError constructs a PlannerError of the given kind.
func NewError(kind Kind, format string, args ...interface{}) *PlannerError {
	return &PlannerError{ErrKind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the Kind of err if it is (or wraps) a *PlannerError,
// and false otherwise.
func KindOf(err error) (Kind, bool) {
	var pe *PlannerError
	if errors.As(err, &pe) {
		return pe.ErrKind, true
	}
	return "", false
}
