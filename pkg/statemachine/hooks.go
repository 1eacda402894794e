package statemachine

// Operation names the machine call that produced a TransitionEvent.
type Operation string

const (
	OpChangeState  Operation = "change_state"
	OpTrigger      Operation = "trigger"
	OpReset        Operation = "reset"
	OpUndo         Operation = "undo"
	OpRedo         Operation = "redo"
	OpClearHistory Operation = "clear_history"
)

// TransitionEvent describes a call against the machine.
// Event is set only for OpTrigger; To holds the requested target on failures.
type TransitionEvent struct {
	MachineID string
	Op        Operation
	From      string
	To        string
	Event     string
}

// Hooks receive notifications after each operation completes.
// They run synchronously on the caller's goroutine, outside the machine lock,
// so a hook may query the machine but must not expect to observe a
// consistent snapshot if other goroutines mutate it concurrently.
type Hooks struct {
	// OnTransition fires after a successful ChangeState, Trigger or Reset.
	OnTransition func(e TransitionEvent)
	// OnUndo fires after every Undo; ok reports whether a state was restored.
	OnUndo func(e TransitionEvent, ok bool)
	// OnRedo fires after every Redo; ok reports whether a state was restored.
	OnRedo         func(e TransitionEvent, ok bool)
	OnClearHistory func(e TransitionEvent)
	// OnError fires when ChangeState or Trigger is rejected.
	OnError func(e TransitionEvent, err error)
}

// Merge returns hooks that call h first and then other.
func (h Hooks) Merge(other Hooks) Hooks {
	return Hooks{
		OnTransition: func(e TransitionEvent) {
			if h.OnTransition != nil {
				h.OnTransition(e)
			}
			if other.OnTransition != nil {
				other.OnTransition(e)
			}
		},
		OnUndo: func(e TransitionEvent, ok bool) {
			if h.OnUndo != nil {
				h.OnUndo(e, ok)
			}
			if other.OnUndo != nil {
				other.OnUndo(e, ok)
			}
		},
		OnRedo: func(e TransitionEvent, ok bool) {
			if h.OnRedo != nil {
				h.OnRedo(e, ok)
			}
			if other.OnRedo != nil {
				other.OnRedo(e, ok)
			}
		},
		OnClearHistory: func(e TransitionEvent) {
			if h.OnClearHistory != nil {
				h.OnClearHistory(e)
			}
			if other.OnClearHistory != nil {
				other.OnClearHistory(e)
			}
		},
		OnError: func(e TransitionEvent, err error) {
			if h.OnError != nil {
				h.OnError(e, err)
			}
			if other.OnError != nil {
				other.OnError(e, err)
			}
		},
	}
}
