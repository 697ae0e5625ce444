//nolint:goconst // test cases intentionally repeat strings for readability
package errmsg

import (
	"errors"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpStreamOpen,
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with operation",
			op:       OpStreamOpen,
			err:      errors.New("file not found"),
			expected: "Failed to open audio stream: file not found",
		},
		{
			name:     "command send",
			op:       OpSendCommand,
			err:      errors.New("command queue full"),
			expected: "Failed to send command to engine: command queue full",
		},
		{
			name:     "shutdown",
			op:       OpShutdown,
			err:      errors.New("deadline exceeded"),
			expected: "Failed to stop repaint ticker: deadline exceeded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.op, tt.err)
			if result != tt.expected {
				t.Errorf("Format(%q, %v) = %q, want %q", tt.op, tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatWith(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		context  string
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpStreamOpen,
			context:  "take1.wav",
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with context",
			op:       OpStreamOpen,
			context:  "take1.wav",
			err:      errors.New("permission denied"),
			expected: "Failed to open audio stream 'take1.wav': permission denied",
		},
		{
			name:     "empty context falls back to Format",
			op:       OpSessionSave,
			context:  "",
			err:      errors.New("disk full"),
			expected: "Failed to save session: disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatWith(tt.op, tt.context, tt.err)
			if result != tt.expected {
				t.Errorf("FormatWith(%q, %q, %v) = %q, want %q", tt.op, tt.context, tt.err, result, tt.expected)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	if Wrap(OpSeek, nil) != nil {
		t.Fatal("Wrap(nil) should be nil")
	}

	base := errors.New("queue full")
	err := Wrap(OpSendCommand, base)

	if !errors.Is(err, base) {
		t.Error("wrapped error should match the cause")
	}
	var tagged *Error
	if !errors.As(err, &tagged) || tagged.Op != OpSendCommand {
		t.Errorf("errors.As = %+v, want Op %q", tagged, OpSendCommand)
	}
	if got, want := err.Error(), "Failed to send command to engine: queue full"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestWrapWith(t *testing.T) {
	if WrapWith(OpStreamOpen, "take1.wav", nil) != nil {
		t.Fatal("WrapWith(nil) should be nil")
	}

	err := WrapWith(OpStreamOpen, "take1.wav", errors.New("no such file"))

	if got, want := err.Error(), "Failed to open audio stream 'take1.wav': no such file"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestOpConstants(t *testing.T) {
	ops := []Op{
		OpConfigLoad, OpStreamOpen, OpSpeakerInit, OpSessionLoad,
		OpSendCommand, OpSetLoop, OpSeek,
		OpShutdown, OpSessionSave,
	}

	testErr := errors.New("test error")

	for _, op := range ops {
		t.Run(string(op), func(t *testing.T) {
			if op == "" {
				t.Error("Op constant should not be empty")
			}

			expected := "Failed to " + string(op) + ": test error"
			if result := Format(op, testErr); result != expected {
				t.Errorf("Format = %q, want %q", result, expected)
			}
		})
	}
}
