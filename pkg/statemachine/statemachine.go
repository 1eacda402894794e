package statemachine

// Transitions maps an event name to the name of the state it leads to.
type Transitions map[string]string

// StateConfig declares a single state and the events it reacts to.
type StateConfig struct {
	Name        string
	Transitions Transitions
}

// Config is the declarative description of a state machine.
// States keep their declaration order, which is the order ListStates reports.
type Config struct {
	Initial string
	States  []StateConfig
}

// StateMachine defines the finite state machine operations with one-level history.
type StateMachine interface {
	State() string
	ChangeState(state string) error
	Trigger(event string) error
	Reset()
	ListStates() []string
	ListStatesFor(event string) []string
	Undo() bool
	Redo() bool
	ClearHistory()
}

// Names returns state names in declaration order.
func (c Config) Names() []string {
	names := make([]string, 0, len(c.States))
	for _, s := range c.States {
		names = append(names, s.Name)
	}
	return names
}

// Lookup returns the declaration of the named state.
func (c Config) Lookup(name string) (StateConfig, bool) {
	for _, s := range c.States {
		if s.Name == name {
			return s, true
		}
	}
	return StateConfig{}, false
}

// historySlot holds at most one state name. The zero value is empty,
// which is distinct from holding the empty state name.
type historySlot struct {
	name string
	set  bool
}

func (h *historySlot) store(name string) {
	h.name = name
	h.set = true
}

func (h *historySlot) clear() {
	*h = historySlot{}
}
