// Package statemachine provides a small finite-state-machine (FSM) engine
// driven by a declarative table of states and event-triggered transitions,
// with a single level of undo/redo.
//
// A machine is described by a Config: the name of the initial state and an
// ordered list of states, each mapping event names to target state names.
// The engine:
//  1. Tracks the current state and applies transitions from the table
//  2. Allows unconditional jumps to any declared state (ChangeState)
//  3. Remembers exactly one previous state for Undo and one undone state for Redo
//  4. Reports every operation through optional Hooks and a slog.Logger
//
// # Architecture
//
// Machine copies the Config into a map[state]map[event]target for O(1)
// lookups and keeps the declaration order separately for ListStates. Mutable
// fields (current state and the two history slots) are guarded by a RWMutex.
// History slots are explicit optionals, so an empty state name is never
// mistaken for "no history". Configuration uses the functional options
// pattern; a fluent Builder and a YAML/JSON decoder are provided as well.
//
// # Usage
//
//	import "github.com/dmitrymomot/fsm/pkg/statemachine"
//
//	machine := statemachine.New(statemachine.Config{
//	    Initial: "normal",
//	    States: []statemachine.StateConfig{
//	        {Name: "normal", Transitions: statemachine.Transitions{"flee": "hiding"}},
//	        {Name: "hiding", Transitions: statemachine.Transitions{"return": "normal"}},
//	    },
//	})
//
//	_ = machine.Trigger("flee") // hiding
//	machine.Undo()              // normal
//	machine.Redo()              // hiding
//
// Definitions can also be loaded from a file:
//
//	machine, err := statemachine.NewFromFile("fsm.yaml",
//	    statemachine.WithLogger(log),
//	)
//
// # History
//
// ChangeState and Trigger record the state they leave. Undo swaps back to it
// and keeps the state it left for Redo. Only one level is kept in each
// direction. Redo stores the restored state itself as "previous", so an Undo
// directly after Redo succeeds but leaves the current state unchanged.
// ClearHistory forgets both slots; Reset keeps them.
//
// Undo and Redo never fail: they return false when there is nothing to apply.
//
// # Error Handling
//
// ChangeState and Trigger return typed errors and leave the machine untouched
// when they fail:
//
//	if statemachine.IsInvalidStateError(err) { /* unknown target state */ }
//	if statemachine.IsInvalidTransitionError(err) { /* event not declared for current state */ }
//
// Definition problems wrap ErrInvalidDefinition.
//
// # Concurrency
//
// Every operation is synchronous and runs under the machine lock, so a
// Machine may be shared between goroutines. Hooks run after the lock is
// released.
package statemachine
