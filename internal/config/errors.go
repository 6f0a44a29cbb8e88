package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidSetting is wrapped by every validation failure.
var ErrInvalidSetting = errors.New("invalid setting")

// ValidationError reports every invalid field found in one pass.
type ValidationError struct {
	Problems []FieldError
}

// FieldError describes one invalid field.
type FieldError struct {
	Path    string
	Message string
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		parts[i] = fmt.Sprintf("%s: %s", p.Path, p.Message)
	}
	return "invalid settings: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidSetting
}

func (e *ValidationError) add(path, format string, args ...any) {
	e.Problems = append(e.Problems, FieldError{Path: path, Message: fmt.Sprintf(format, args...)})
}
