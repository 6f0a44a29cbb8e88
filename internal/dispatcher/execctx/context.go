// Package execctx provides the execution context for action handlers.
package execctx

import (
	"context"

	"github.com/dshills/runpad/internal/document"
	"github.com/dshills/runpad/internal/integration/process"
)

// ViewInterface abstracts the presentation state handlers may change.
type ViewInterface interface {
	// ToggleLineNumbers flips the gutter and returns the new visibility.
	ToggleLineNumbers() bool

	// ToggleWordWrap flips soft wrapping and returns the new state.
	ToggleWordWrap() bool

	// SetFontSize changes the font size used to derive row heights.
	SetFontSize(size int) error

	// SetTheme selects a named color theme.
	SetTheme(name string) error

	// ScrollRows moves the viewport and returns the rows actually moved.
	ScrollRows(delta int) int

	// Refresh recomputes the gutter for the active document.
	Refresh()
}

// ConsoleInterface receives execution output.
type ConsoleInterface interface {
	AppendRun(res process.Result, err error)
}

// ExecutionContext carries everything a handler may touch.
type ExecutionContext struct {
	// Context bounds blocking work such as runs. Nil means background.
	Context context.Context

	// Documents is the open document set.
	Documents *document.Set

	// Clipboard backs cut, copy and paste.
	Clipboard document.Clipboard

	// Store loads and saves files.
	Store document.Store

	// Runner executes document text.
	Runner process.Runner

	// View is the presentation state, if any.
	View ViewInterface

	// Console receives run output, if any.
	Console ConsoleInterface

	data map[string]interface{}
}

// New creates an execution context over a document set.
func New(docs *document.Set) *ExecutionContext {
	return &ExecutionContext{Documents: docs}
}

// Ctx returns the context for blocking work.
func (c *ExecutionContext) Ctx() context.Context {
	if c.Context == nil {
		return context.Background()
	}
	return c.Context
}

// ActiveDocument returns the active document.
func (c *ExecutionContext) ActiveDocument() (*document.Document, error) {
	if c.Documents == nil {
		return nil, ErrMissingDocuments
	}
	return c.Documents.Active(), nil
}

// RequireStore returns ErrMissingStore if no store is configured.
func (c *ExecutionContext) RequireStore() error {
	if c.Store == nil {
		return ErrMissingStore
	}
	return nil
}

// RequireClipboard returns ErrMissingClipboard if no clipboard is configured.
func (c *ExecutionContext) RequireClipboard() error {
	if c.Clipboard == nil {
		return ErrMissingClipboard
	}
	return nil
}

// RequireRunner returns ErrMissingRunner if no runner is configured.
func (c *ExecutionContext) RequireRunner() error {
	if c.Runner == nil {
		return ErrMissingRunner
	}
	return nil
}

// RequireView returns ErrMissingView if no view is configured.
func (c *ExecutionContext) RequireView() error {
	if c.View == nil {
		return ErrMissingView
	}
	return nil
}

// SetData stores handler-specific data.
func (c *ExecutionContext) SetData(key string, value interface{}) {
	if c.data == nil {
		c.data = make(map[string]interface{})
	}
	c.data[key] = value
}

// GetData retrieves handler-specific data.
func (c *ExecutionContext) GetData(key string) (interface{}, bool) {
	if c.data == nil {
		return nil, false
	}
	v, ok := c.data[key]
	return v, ok
}
