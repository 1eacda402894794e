// Package repl drives a state machine from line-based commands.
package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/dmitrymomot/fsm/pkg/logger"
	"github.com/dmitrymomot/fsm/pkg/statemachine"
)

// ErrQuit is returned by Execute for the exit command.
var ErrQuit = errors.New("quit")

const helpText = `commands:
  state            print the current state
  trigger <event>  fire an event from the current state
  change <state>   jump to a declared state
  reset            return to the initial state
  undo             go back to the previous state
  redo             revert the last undo
  clear            forget undo/redo history
  list [event]     list all states, or those handling event
  can <event>      report whether event can fire now
  help             show this help
  exit             leave the session`

// Session executes commands against a single machine and writes results to out.
type Session struct {
	machine *statemachine.Machine
	out     io.Writer
	log     *slog.Logger
	prompt  string
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger. Nil loggers are ignored.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// WithPrompt sets the prompt printed before reading each line.
func WithPrompt(p string) Option {
	return func(s *Session) {
		s.prompt = p
	}
}

// New creates a session for m.
func New(m *statemachine.Machine, out io.Writer, opts ...Option) *Session {
	s := &Session{
		machine: m,
		out:     out,
		log:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run reads commands from in until EOF, the exit command or ctx cancellation.
// Cancellation is observed while waiting for input; the reader goroutine is
// left blocked on in until the next line or EOF arrives.
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.prompt != "" {
			fmt.Fprint(s.out, s.prompt)
		}

		var line string
		select {
		case <-ctx.Done():
			return ctx.Err()
		case l, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					return err
				default:
					return ctx.Err()
				}
			}
			line = l
		}

		err := s.Execute(ctx, line)
		if errors.Is(err, ErrQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
	}
}

// Execute runs a single command line. Blank lines and lines starting with # are ignored.
func (s *Session) Execute(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]
	s.log.DebugContext(ctx, "command", slog.String("cmd", cmd), logger.State(s.machine.State()))

	switch cmd {
	case "state":
		fmt.Fprintln(s.out, s.machine.State())
	case "trigger", "fire":
		event, err := oneArg(cmd, args)
		if err != nil {
			return err
		}
		if err := s.machine.Trigger(event); err != nil {
			return err
		}
		fmt.Fprintln(s.out, s.machine.State())
	case "change", "goto":
		state, err := oneArg(cmd, args)
		if err != nil {
			return err
		}
		if err := s.machine.ChangeState(state); err != nil {
			return err
		}
		fmt.Fprintln(s.out, s.machine.State())
	case "reset":
		s.machine.Reset()
		fmt.Fprintln(s.out, s.machine.State())
	case "undo":
		if !s.machine.Undo() {
			fmt.Fprintln(s.out, "nothing to undo")
			return nil
		}
		fmt.Fprintln(s.out, s.machine.State())
	case "redo":
		if !s.machine.Redo() {
			fmt.Fprintln(s.out, "nothing to redo")
			return nil
		}
		fmt.Fprintln(s.out, s.machine.State())
	case "clear":
		s.machine.ClearHistory()
		fmt.Fprintln(s.out, "history cleared")
	case "list", "ls":
		var names []string
		switch len(args) {
		case 0:
			names = s.machine.ListStates()
		case 1:
			names = s.machine.ListStatesFor(args[0])
		default:
			return fmt.Errorf("usage: %s [event]", cmd)
		}
		fmt.Fprintln(s.out, strings.Join(names, " "))
	case "can":
		event, err := oneArg(cmd, args)
		if err != nil {
			return err
		}
		fmt.Fprintln(s.out, s.machine.CanTrigger(event))
	case "help", "?":
		fmt.Fprintln(s.out, helpText)
	case "exit", "quit":
		return ErrQuit
	default:
		return fmt.Errorf("unknown command %q, type help", cmd)
	}
	return nil
}

func oneArg(cmd string, args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("usage: %s <name>", cmd)
	}
	return args[0], nil
}
