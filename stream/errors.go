package stream

import (
	"errors"
	"fmt"
)

// ErrPanic indicates a panic was recovered while processing or finalizing.
var ErrPanic = errors.New("recovered panic")

// Error reports a fault caught at the boundary of Process or Finalize.
type Error struct {
	Op        string // "process" or "finalize"
	SessionID string // ID of the Processor that faulted
	Value     any    // Value passed to panic
	Err       error  // Underlying error, wraps ErrPanic
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("stream %s [%s]: %v", e.Op, e.SessionID, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Err
}

func newPanicError(op, sessionID string, value any) *Error {
	err := fmt.Errorf("%w: %v", ErrPanic, value)
	if cause, ok := value.(error); ok {
		err = fmt.Errorf("%w: %w", ErrPanic, cause)
	}
	return &Error{Op: op, SessionID: sessionID, Value: value, Err: err}
}
