package statemachine

import (
	"log/slog"
	"maps"
)

// Option configures a state machine during construction.
type Option func(*Machine)

// WithState declares a state after those from the Config.
// Redeclaring an existing state replaces its transitions and keeps its position.
func WithState(name string, transitions Transitions) Option {
	return func(m *Machine) {
		m.declare(name, transitions)
	}
}

// WithStates declares multiple states at once, in order.
func WithStates(states ...StateConfig) Option {
	return func(m *Machine) {
		for _, s := range states {
			m.declare(s.Name, s.Transitions)
		}
	}
}

// WithInitial overrides the initial state declared in the Config.
func WithInitial(state string) Option {
	return func(m *Machine) {
		m.initial = state
	}
}

// WithID sets the identifier reported in logs and hook events.
// Empty IDs are ignored and a random one is generated instead.
func WithID(id string) Option {
	return func(m *Machine) {
		if id != "" {
			m.id = id
		}
	}
}

// WithLogger sets the structured logger. Nil loggers are ignored.
func WithLogger(l *slog.Logger) Option {
	return func(m *Machine) {
		if l != nil {
			m.log = l
		}
	}
}

// WithHooks registers lifecycle hooks. Repeated calls chain the hooks in order.
func WithHooks(h Hooks) Option {
	return func(m *Machine) {
		if m.hasHooks {
			m.hooks = m.hooks.Merge(h)
			return
		}
		m.hooks = h
		m.hasHooks = true
	}
}

func (m *Machine) declare(name string, transitions Transitions) {
	if _, ok := m.states[name]; !ok {
		m.order = append(m.order, name)
	}
	t := make(Transitions, len(transitions))
	maps.Copy(t, transitions)
	m.states[name] = t
}
