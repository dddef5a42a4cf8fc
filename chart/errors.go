// Package chart holds the value types and helpers shared by the pie, bar
// and line geometry packages.
package chart

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is matched by every [InvalidInputError] via [errors.Is].
var ErrInvalidInput = errors.New("invalid input")

// InvalidInputError reports a precondition violation detected before any
// geometry was computed.
type InvalidInputError struct {
	// Op names the operation that rejected its input.
	Op     string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return e.Op + ": " + e.Reason
}

func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Invalid builds an *InvalidInputError for op with a formatted reason.
func Invalid(op, format string, args ...any) error {
	return &InvalidInputError{
		Op:     op,
		Reason: fmt.Sprintf(format, args...),
	}
}
