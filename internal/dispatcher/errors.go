package dispatcher

import "errors"

var (
	// ErrNoHandler is returned when nothing is registered for an action.
	ErrNoHandler = errors.New("dispatcher: no handler for action")

	// ErrPanic wraps a recovered handler panic.
	ErrPanic = errors.New("dispatcher: handler panic")

	// ErrInvalidAction is returned for an action without a name.
	ErrInvalidAction = errors.New("dispatcher: action has no name")
)
