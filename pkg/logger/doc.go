// Package logger provides a context-aware wrapper around Go's slog package
// with functional options for configuration, helper attribute constructors
// for state machine fields, and injection of values stored in context.Context.
//
// New creates a *slog.Logger configured by a set of Option functions that:
//
//   - Select an output format (text or json)
//   - Set the minimum log level
//   - Supply default slog.Attr values applied to every record
//   - Register ContextExtractor callbacks that pull attributes from a context
//     value (for example an interactive session id) on every Handle call.
//
// # Architecture
//
// New picks slog.NewTextHandler or slog.NewJSONHandler based on the Format,
// applies static attributes and wraps the result with LogHandlerDecorator,
// which runs the registered extractors before delegating.
//
// Attribute helpers such as Machine, FromState, ToState and Event live in
// attr.go and keep key names consistent between the engine and the CLI.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment("development", "fsm"),
//	    logger.WithContextValue("session_id", sessionKey{}),
//	)
//	log.Info("state changed", logger.FromState("normal"), logger.ToState("hiding"))
//
// # Error Handling
//
// Error and Errors produce attributes only for non-nil errors, so
//
//	log.Info("done", logger.Error(err))
//
// needs no nil check. WithFormat panics on unknown formats; ParseLevel
// returns an error for unknown level names.
package logger
