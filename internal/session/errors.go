package session

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition indicates an operation not allowed in the current state.
var ErrInvalidTransition = errors.New("session: invalid transition")

// TransitionError wraps ErrInvalidTransition with the rejected operation.
type TransitionError struct {
	From State
	Op   string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%v: cannot %s while %s", ErrInvalidTransition, e.Op, e.From)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}
