package statemachine

import (
	"errors"
	"fmt"
	"maps"
)

// Builder provides a fluent API for building state machines.
type Builder struct {
	cfg          Config
	index        map[string]int
	currentState string
	currentEvent string
	hasState     bool
	hasEvent     bool
	opts         []Option
	errs         []error
}

// NewBuilder creates a new state machine builder.
func NewBuilder(initial string) *Builder {
	return &Builder{
		cfg:   Config{Initial: initial},
		index: make(map[string]int),
	}
}

// State declares a state (if needed) and selects it as the source of following transitions.
func (b *Builder) State(name string) *Builder {
	b.ensure(name)
	b.currentState = name
	b.hasState = true
	b.hasEvent = false
	return b
}

// On sets the event for the next transition from the selected state.
func (b *Builder) On(event string) *Builder {
	b.currentEvent = event
	b.hasEvent = true
	return b
}

// To finalizes the pending transition. The target does not need to be declared yet.
func (b *Builder) To(target string) *Builder {
	if !b.hasState || !b.hasEvent {
		b.errs = append(b.errs, fmt.Errorf("target '%s': %w", target, ErrIncompleteTransition))
		return b
	}
	b.cfg.States[b.index[b.currentState]].Transitions[b.currentEvent] = target
	b.hasEvent = false
	return b
}

// Transition is a shorthand to add a transition in one call.
func (b *Builder) Transition(from, event, to string) *Builder {
	return b.State(from).On(event).To(to)
}

// With appends machine options applied by Build.
func (b *Builder) With(opts ...Option) *Builder {
	b.opts = append(b.opts, opts...)
	return b
}

// Config returns a copy of the configuration built so far.
func (b *Builder) Config() Config {
	out := Config{Initial: b.cfg.Initial, States: make([]StateConfig, len(b.cfg.States))}
	for i, s := range b.cfg.States {
		out.States[i] = StateConfig{Name: s.Name, Transitions: maps.Clone(s.Transitions)}
	}
	return out
}

// Build returns the constructed state machine, or the errors recorded while building.
func (b *Builder) Build() (*Machine, error) {
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}
	return New(b.Config(), b.opts...), nil
}

// MustBuild is like Build but panics on error, following the fail-fast pattern.
func (b *Builder) MustBuild() *Machine {
	m, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to build state machine: %v", err))
	}
	return m
}

func (b *Builder) ensure(name string) {
	if _, ok := b.index[name]; ok {
		return
	}
	b.index[name] = len(b.cfg.States)
	b.cfg.States = append(b.cfg.States, StateConfig{Name: name, Transitions: Transitions{}})
}
