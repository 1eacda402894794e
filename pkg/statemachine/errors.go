package statemachine

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDefinition    = errors.New("invalid state machine definition")
	ErrIncompleteTransition = errors.New("incomplete transition: state and event must be set before target")
)

// ErrInvalidState indicates a state name that is not declared in the machine's configuration.
type ErrInvalidState struct {
	StateName string
}

func (e *ErrInvalidState) Error() string {
	return fmt.Sprintf("state '%s' is not defined", e.StateName)
}

func NewErrInvalidState(stateName string) *ErrInvalidState {
	return &ErrInvalidState{StateName: stateName}
}

// ErrInvalidTransition indicates the current state declares no transition for the event.
type ErrInvalidTransition struct {
	StateName string
	EventName string
}

func (e *ErrInvalidTransition) Error() string {
	return fmt.Sprintf("no transition available from state '%s' for event '%s'", e.StateName, e.EventName)
}

func NewErrInvalidTransition(stateName, eventName string) *ErrInvalidTransition {
	return &ErrInvalidTransition{
		StateName: stateName,
		EventName: eventName,
	}
}

func IsInvalidStateError(err error) bool {
	var e *ErrInvalidState
	return errors.As(err, &e)
}

func IsInvalidTransitionError(err error) bool {
	var e *ErrInvalidTransition
	return errors.As(err, &e)
}
