package app

import (
	"errors"
	"strings"
)

var (
	// ErrQuit ends the shell loop without reporting a failure.
	ErrQuit = errors.New("quit requested")

	// ErrInitialization matches every *InitError.
	ErrInitialization = errors.New("initialization failed")

	// ErrShutdownTimeout means a program was still running when the
	// shutdown grace period ran out.
	ErrShutdownTimeout = errors.New("shutdown timed out")

	// ErrRunInProgress is returned by RunAsync while a run is pending.
	ErrRunInProgress = errors.New("a program is already running")
)

// InitError names the component that could not be brought up by New.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string { return "init " + e.Component + ": " + e.Err.Error() }

func (e *InitError) Unwrap() error { return e.Err }

func (e *InitError) Is(target error) bool { return target == ErrInitialization }

// ComponentError is a failure of one component while performing Action,
// such as "runner: shutdown: shutdown timed out".
type ComponentError struct {
	Component string
	Action    string
	Err       error
}

func (e *ComponentError) Error() string {
	if e == nil {
		return ""
	}
	parts := []string{e.Component}
	if e.Action != "" {
		parts = append(parts, e.Action)
	}
	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}
	return strings.Join(parts, ": ")
}

func (e *ComponentError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
