package quiz

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTransition is returned when an operation is not valid in
	// the current phase.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrIndexOutOfRange is returned when advancing past the last pair.
	ErrIndexOutOfRange = errors.New("pair index out of range")

	// ErrInvalidConfig is returned when a Config fails validation.
	ErrInvalidConfig = errors.New("invalid config")
)

// TransitionError records which operation was rejected and in which phase.
type TransitionError struct {
	Op    string
	Phase Phase
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: not allowed in %s phase", e.Op, e.Phase)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}

func invalid(op string, s State) error {
	return &TransitionError{Op: op, Phase: s.Phase()}
}
