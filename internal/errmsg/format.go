// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Startup
	OpConfigLoad  Op = "load configuration"
	OpStreamOpen  Op = "open audio stream"
	OpSpeakerInit Op = "initialize audio output"
	OpSessionLoad Op = "restore session"

	// Transport
	OpSendCommand Op = "send command to engine"
	OpSetLoop     Op = "set loop region"
	OpSeek        Op = "seek"

	// Teardown
	OpShutdown    Op = "stop repaint ticker"
	OpSessionSave Op = "save session"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}

// Error is an error tagged with the operation that produced it and,
// optionally, what it was applied to.
type Error struct {
	Op      Op
	Context string
	Err     error
}

// Wrap tags err with op. It returns nil for a nil err.
func Wrap(op Op, err error) error {
	return WrapWith(op, "", err)
}

// WrapWith tags err with op and context. It returns nil for a nil err.
func WrapWith(op Op, context string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Context: context, Err: err}
}

func (e *Error) Error() string { return FormatWith(e.Op, e.Context, e.Err) }

func (e *Error) Unwrap() error { return e.Err }
