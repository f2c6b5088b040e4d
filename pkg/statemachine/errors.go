package statemachine

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTransition = errors.New("statemachine: transition needs from, to and event")
	ErrInvalidEvent      = errors.New("statemachine: nil event")

	// ErrNoTransition is the cause when the current state has no edge for the event.
	ErrNoTransition = errors.New("no transition")
)

// TransitionError is returned by Fire when the event does not apply to the
// current state.
type TransitionError struct {
	State string
	Event string
	Cause error
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("statemachine: %s -> %q: %v", e.State, e.Event, e.Cause)
}

func (e *TransitionError) Unwrap() error { return e.Cause }
