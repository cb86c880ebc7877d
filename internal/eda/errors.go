package eda

import (
	"errors"
	"fmt"
)

// Sentinel causes carried by ValidationError; match them with errors.Is.
var (
	ErrDuplicateBreaks = errors.New("breaks are not unique")
	ErrInvalidBreaks   = errors.New("invalid breaks")
	ErrLabelCount      = errors.New("wrong number of labels")
	ErrNotNumeric      = errors.New("column is not numeric")
	ErrNoData          = errors.New("to refer to columns by name, data must be provided")
	ErrUnknownColumn   = errors.New("unknown column")
	ErrLengthMismatch  = errors.New("all columns must have the same length")
	ErrUnknownFormat   = errors.New("unrecognized format")
	ErrNoColumns       = errors.New("no columns given")
	ErrPivotLevel      = errors.New("pivot level out of range")
)

// ValidationError reports malformed input to one of the operations.
type ValidationError struct {
	Op  string // cut, crosstab, ...
	Msg string // optional detail
	Err error  // sentinel cause
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "validation error"
	}
	if e.Msg != "" {
		return fmt.Sprintf("%s: %v: %s", e.Op, e.Err, e.Msg)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(op string, cause error, format string, args ...any) error {
	return &ValidationError{Op: op, Err: cause, Msg: fmt.Sprintf(format, args...)}
}
