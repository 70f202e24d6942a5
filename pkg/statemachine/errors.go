package statemachine

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTransition = errors.New("statemachine: from, to and event are required")
	ErrInvalidEvent      = errors.New("statemachine: event is required")
	// ErrNoTransition matches NoTransitionError and RejectedError via errors.Is.
	ErrNoTransition = errors.New("statemachine: transition not permitted")
)

// NoTransitionError means no transition exists for the state/event pair.
type NoTransitionError struct {
	State State
	Event Event
}

func (e *NoTransitionError) Error() string {
	return fmt.Sprintf("no transition from state %q on event %q", e.State, e.Event)
}

func (e *NoTransitionError) Is(target error) bool { return target == ErrNoTransition }

// RejectedError means transitions exist but every guard set refused.
type RejectedError struct {
	State State
	Event Event
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("transition from state %q on event %q rejected by guards", e.State, e.Event)
}

func (e *RejectedError) Is(target error) bool { return target == ErrNoTransition }
