package logger

import (
	"log/slog"
	"strconv"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups multiple non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Machine records the state machine identifier under the key "machine_id".
func Machine(id string) slog.Attr {
	return slog.String("machine_id", id)
}

// State records the current state name under the key "state".
func State(name string) slog.Attr {
	return slog.String("state", name)
}

// FromState records the state a transition leaves under the key "from_state".
func FromState(name string) slog.Attr {
	return slog.String("from_state", name)
}

// ToState records the state a transition enters under the key "to_state".
func ToState(name string) slog.Attr {
	return slog.String("to_state", name)
}

// Event records the event name under the key "event".
// An empty name returns an empty Attr so jumps and history moves omit the key.
func Event(name string) slog.Attr {
	if name == "" {
		return slog.Attr{}
	}
	return slog.String("event", name)
}

// Operation records the machine operation under the key "op".
func Operation(op string) slog.Attr {
	return slog.String("op", op)
}

// Path records a file path under the key "path".
func Path(p string) slog.Attr {
	return slog.String("path", p)
}

// Session records the interactive session identifier under the key "session_id".
// If id is nil, it returns an empty Attr.
func Session(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("session_id", id)
}
