package document

import (
	"fmt"

	"github.com/atotto/clipboard"

	"github.com/dshills/runpad/internal/errs"
)

// ErrClipboardEmpty is returned by Paste when there is nothing to paste.
var ErrClipboardEmpty = fmt.Errorf("clipboard empty: %w", errs.ErrNotFound)

// Clipboard is the text store used by Cut, Copy and Paste.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

// MemoryClipboard is a process-local clipboard.
type MemoryClipboard struct {
	text string
}

// ReadAll returns the stored text.
func (c *MemoryClipboard) ReadAll() (string, error) {
	return c.text, nil
}

// WriteAll stores text.
func (c *MemoryClipboard) WriteAll(text string) error {
	c.text = text
	return nil
}

// SystemClipboard uses the desktop clipboard.
type SystemClipboard struct{}

// ReadAll reads the desktop clipboard.
func (SystemClipboard) ReadAll() (string, error) {
	return clipboard.ReadAll()
}

// WriteAll writes the desktop clipboard.
func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// NewClipboard returns the desktop clipboard when system is true and the
// platform supports it, and a MemoryClipboard otherwise.
func NewClipboard(system bool) Clipboard {
	if system && !clipboard.Unsupported {
		return SystemClipboard{}
	}
	return &MemoryClipboard{}
}
