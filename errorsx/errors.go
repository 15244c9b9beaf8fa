package errorsx

import (
	"errors"
	"fmt"
)

// Error tags a failure of a query or tool call with a reason code.
// Results and metrics report the code; the message is for people.
type Error struct {
	Reason ReasonCode
	Err    error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return string(e.Reason)
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches a bare reason: errors.Is(err, Code(ReasonToolPanic))
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Err == nil && t.Reason == e.Reason
}

// Code returns an error carrying only reason, for errors.Is checks
func Code(reason ReasonCode) error {
	return &Error{Reason: reason}
}

// Wrap tags err with reason. A nil err stays nil and an err that already
// has a reason keeps it.
func Wrap(err error, reason ReasonCode) error {
	if err == nil {
		return nil
	}
	var tagged *Error
	if errors.As(err, &tagged) {
		return err
	}
	return &Error{Reason: reason, Err: err}
}

// Errorf formats a new error tagged with reason
func Errorf(reason ReasonCode, format string, args ...any) error {
	return &Error{Reason: reason, Err: fmt.Errorf(format, args...)}
}

// Reason returns the reason code of err, or ReasonUnknown
func Reason(err error) ReasonCode {
	return ReasonOr(err, ReasonUnknown)
}

// ReasonOr returns the reason code of err, or fallback when err has none
func ReasonOr(err error, fallback ReasonCode) ReasonCode {
	var tagged *Error
	if errors.As(err, &tagged) {
		return tagged.Reason
	}
	return fallback
}

// HasReason reports whether err is tagged with reason
func HasReason(err error, reason ReasonCode) bool {
	return errors.Is(err, Code(reason))
}
