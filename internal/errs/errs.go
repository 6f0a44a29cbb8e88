// Package errs defines the error taxonomy shared by the editing engine.
//
// Every recoverable failure is one of four kinds. Packages wrap the sentinel
// errors with fmt.Errorf("...: %w", ...) and callers classify them with
// errors.Is or KindOf.
package errs

import (
	"errors"
	"fmt"
)

// Sentinel errors for each failure kind.
var (
	// ErrOutOfRange indicates an offset or index violates buffer or set bounds.
	ErrOutOfRange = errors.New("out of range")

	// ErrNotFound indicates a search found no match.
	ErrNotFound = errors.New("not found")

	// ErrIO indicates a file read or write failed.
	ErrIO = errors.New("i/o failure")

	// ErrExecution indicates the external process could not start or failed.
	ErrExecution = errors.New("execution failure")
)

// Kind classifies an error into the engine taxonomy.
type Kind uint8

const (
	// KindNone is returned for a nil error.
	KindNone Kind = iota
	KindOutOfRange
	KindNotFound
	KindIO
	KindExecution
	// KindUnknown is any error outside the taxonomy.
	KindUnknown
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindOutOfRange:
		return "out-of-range"
	case KindNotFound:
		return "not-found"
	case KindIO:
		return "io"
	case KindExecution:
		return "execution"
	default:
		return "unknown"
	}
}

// KindOf returns the taxonomy kind of err.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrOutOfRange):
		return KindOutOfRange
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrIO):
		return KindIO
	case errors.Is(err, ErrExecution):
		return KindExecution
	default:
		return KindUnknown
	}
}

// OperationError represents an error that occurred during a specific operation.
type OperationError struct {
	Op     string // Operation name (e.g., "save", "open", "close")
	Target string // Target of the operation (e.g., file path, document label)
	Err    error  // Underlying error
}

// NewOperationError creates a new OperationError.
func NewOperationError(op, target string, err error) *OperationError {
	return &OperationError{Op: op, Target: target, Err: err}
}

// Error implements the error interface.
func (e *OperationError) Error() string {
	if e.Target != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Target, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *OperationError) Unwrap() error {
	return e.Err
}

// IO wraps err as an ErrIO failure for op on target.
// The original error stays reachable through errors.Is/As.
func IO(op, target string, err error) error {
	if err == nil {
		return nil
	}
	return NewOperationError(op, target, fmt.Errorf("%w: %w", ErrIO, err))
}
