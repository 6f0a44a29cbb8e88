package app

import (
	"errors"
	"io/fs"
	"testing"
)

func TestInitError(t *testing.T) {
	err := &InitError{Component: "config", Err: fs.ErrNotExist}

	if got := err.Error(); got != "init config: file does not exist" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(err, ErrInitialization) {
		t.Error("expected errors.Is to match ErrInitialization")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("expected errors.Is to match the cause")
	}
}

func TestComponentError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *ComponentError
		expected string
	}{
		{"nil error", nil, ""},
		{"component only", &ComponentError{Component: "runner"}, "runner"},
		{"component and action", &ComponentError{Component: "runner", Action: "shutdown"}, "runner: shutdown"},
		{
			"component, action, and error",
			&ComponentError{Component: "config", Action: "close", Err: errors.New("busy")},
			"config: close: busy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestComponentError_Unwrap(t *testing.T) {
	err := &ComponentError{Component: "runner", Err: ErrShutdownTimeout}
	if !errors.Is(err, ErrShutdownTimeout) {
		t.Error("expected errors.Is to match wrapped error")
	}

	var nilErr *ComponentError
	if nilErr.Unwrap() != nil {
		t.Error("expected nil from Unwrap() on nil receiver")
	}
}
