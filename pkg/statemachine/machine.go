package statemachine

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/fsm/pkg/logger"
)

// Machine is a thread-safe in-memory state machine with a single-level undo/redo history.
// The state table is copied at construction and never changes afterwards.
type Machine struct {
	id       string
	initial  string
	order    []string
	states   map[string]Transitions
	log      *slog.Logger
	hooks    Hooks
	hasHooks bool

	mu       sync.RWMutex
	current  string
	previous historySlot
	undone   historySlot
}

var _ StateMachine = (*Machine)(nil)

// New creates a state machine from cfg. Construction never fails: the initial
// state is taken as given even if cfg does not declare it.
func New(cfg Config, opts ...Option) *Machine {
	m := &Machine{
		initial: cfg.Initial,
		states:  make(map[string]Transitions, len(cfg.States)),
		log:     slog.New(slog.DiscardHandler),
	}
	for _, s := range cfg.States {
		m.declare(s.Name, s.Transitions)
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.id == "" {
		m.id = uuid.NewString()
	}
	m.current = m.initial
	m.log = m.log.With(logger.Component("statemachine"), logger.Machine(m.id))
	return m
}

// ID returns the machine identifier.
func (m *Machine) ID() string {
	return m.id
}

// Initial returns the state Reset returns to.
func (m *Machine) Initial() string {
	return m.initial
}

func (m *Machine) State() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// ChangeState moves to state without consulting the transition table.
func (m *Machine) ChangeState(state string) error {
	m.mu.Lock()
	from := m.current
	if _, ok := m.states[state]; !ok {
		m.mu.Unlock()
		err := NewErrInvalidState(state)
		m.rejected(TransitionEvent{Op: OpChangeState, From: from, To: state}, err)
		return err
	}
	m.previous.store(from)
	m.current = state
	m.mu.Unlock()

	m.transitioned(TransitionEvent{Op: OpChangeState, From: from, To: state})
	return nil
}

// Trigger fires event from the current state and moves to the declared target.
func (m *Machine) Trigger(event string) error {
	m.mu.Lock()
	from := m.current
	to, ok := m.states[from][event]
	if !ok {
		m.mu.Unlock()
		err := NewErrInvalidTransition(from, event)
		m.rejected(TransitionEvent{Op: OpTrigger, From: from, Event: event}, err)
		return err
	}
	m.previous.store(from)
	m.current = to
	m.mu.Unlock()

	m.transitioned(TransitionEvent{Op: OpTrigger, From: from, To: to, Event: event})
	return nil
}

// CanTrigger reports whether Trigger(event) would succeed right now.
func (m *Machine) CanTrigger(event string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.states[m.current][event]
	return ok
}

// Reset returns to the initial state. History is left as is.
func (m *Machine) Reset() {
	m.mu.Lock()
	from := m.current
	m.current = m.initial
	m.mu.Unlock()

	m.transitioned(TransitionEvent{Op: OpReset, From: from, To: m.initial})
}

// ListStates returns every declared state in declaration order.
func (m *Machine) ListStates() []string {
	return slices.Clone(m.order)
}

// ListStatesFor returns the declared states that have a transition for event,
// in declaration order. The result is empty, not nil, when nothing matches.
func (m *Machine) ListStatesFor(event string) []string {
	names := make([]string, 0, len(m.order))
	for _, name := range m.order {
		if _, ok := m.states[name][event]; ok {
			names = append(names, name)
		}
	}
	return names
}

// Undo restores the previous state and reports whether it did.
// The previous state is consumed: a second Undo returns false.
func (m *Machine) Undo() bool {
	m.mu.Lock()
	e := TransitionEvent{Op: OpUndo, From: m.current, To: m.current}
	ok := m.previous.set
	if ok {
		m.undone.store(m.current)
		m.current = m.previous.name
		m.previous.clear()
		e.To = m.current
	}
	m.mu.Unlock()

	m.historyMoved(e, ok)
	return ok
}

// Redo reverts the most recent Undo and reports whether it did.
// Afterwards the previous slot holds the restored state itself, so an Undo
// right after Redo succeeds without changing the current state.
func (m *Machine) Redo() bool {
	m.mu.Lock()
	e := TransitionEvent{Op: OpRedo, From: m.current, To: m.current}
	ok := m.undone.set
	if ok {
		m.current = m.undone.name
		m.previous.store(m.current)
		m.undone.clear()
		e.To = m.current
	}
	m.mu.Unlock()

	m.historyMoved(e, ok)
	return ok
}

// ClearHistory forgets both history slots. The current state is kept.
func (m *Machine) ClearHistory() {
	m.mu.Lock()
	m.previous.clear()
	m.undone.clear()
	current := m.current
	m.mu.Unlock()

	m.log.Debug("history cleared", logger.State(current))
	if m.hooks.OnClearHistory != nil {
		m.hooks.OnClearHistory(TransitionEvent{MachineID: m.id, Op: OpClearHistory, From: current, To: current})
	}
}

func (m *Machine) transitioned(e TransitionEvent) {
	e.MachineID = m.id
	m.log.Debug("state changed",
		logger.Operation(string(e.Op)),
		logger.FromState(e.From),
		logger.ToState(e.To),
		logger.Event(e.Event),
	)
	if m.hooks.OnTransition != nil {
		m.hooks.OnTransition(e)
	}
}

func (m *Machine) rejected(e TransitionEvent, err error) {
	e.MachineID = m.id
	m.log.Warn("state change rejected",
		logger.Operation(string(e.Op)),
		logger.State(e.From),
		logger.Error(err),
	)
	if m.hooks.OnError != nil {
		m.hooks.OnError(e, err)
	}
}

func (m *Machine) historyMoved(e TransitionEvent, ok bool) {
	e.MachineID = m.id
	if ok {
		m.log.Debug("history applied",
			logger.Operation(string(e.Op)),
			logger.FromState(e.From),
			logger.ToState(e.To),
		)
	}

	var hook func(TransitionEvent, bool)
	if e.Op == OpUndo {
		hook = m.hooks.OnUndo
	} else {
		hook = m.hooks.OnRedo
	}
	if hook != nil {
		hook(e, ok)
	}
}
