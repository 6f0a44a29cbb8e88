package history

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/dshills/runpad/internal/engine/buffer"
)

// ByteOffset is an alias for buffer.ByteOffset for convenience.
type ByteOffset = buffer.ByteOffset

// Range is an alias for buffer.Range for convenience.
type Range = buffer.Range

// Target is the buffer surface history replays operations against.
// *buffer.Buffer implements it.
type Target interface {
	Insert(offset ByteOffset, text string) (ByteOffset, error)
	Delete(start, end ByteOffset) (string, error)
	SetCursorOffset(offset ByteOffset) error
}

// Operation represents a single undoable edit.
// It captures all information needed to undo or redo the edit.
type Operation struct {
	// Edit data
	Range   Range  // Range that was modified (in original document)
	OldText string // Text that was replaced (for undo)
	NewText string // Text that was inserted (for redo)

	// Cursor state for restore
	CursorBefore ByteOffset
	CursorAfter  ByteOffset

	// Metadata
	Timestamp time.Time // When the operation occurred
}

// NewOperation creates a new operation.
func NewOperation(r Range, oldText, newText string) *Operation {
	return &Operation{
		Range:     r,
		OldText:   oldText,
		NewText:   newText,
		Timestamp: time.Now(),
	}
}

// NewInsertOperation creates an operation for an insertion.
func NewInsertOperation(offset ByteOffset, text string) *Operation {
	return NewOperation(Range{Start: offset, End: offset}, "", text)
}

// NewDeleteOperation creates an operation for a deletion.
func NewDeleteOperation(r Range, deletedText string) *Operation {
	return NewOperation(r, deletedText, "")
}

// WithCursors sets the cursor state and returns the operation for chaining.
func (op *Operation) WithCursors(before, after ByteOffset) *Operation {
	op.CursorBefore = before
	op.CursorAfter = after
	return op
}

// IsInsert returns true if this operation is a pure insertion.
func (op *Operation) IsInsert() bool {
	return op.Range.IsEmpty() && len(op.NewText) > 0
}

// IsDelete returns true if this operation is a pure deletion.
func (op *Operation) IsDelete() bool {
	return !op.Range.IsEmpty() && len(op.NewText) == 0
}

// IsNoop returns true if this operation makes no changes.
func (op *Operation) IsNoop() bool {
	return op.Range.IsEmpty() && len(op.NewText) == 0
}

// NewRange returns the range of the text after the operation.
func (op *Operation) NewRange() Range {
	return Range{
		Start: op.Range.Start,
		End:   op.Range.Start + ByteOffset(len(op.NewText)),
	}
}

// Invert returns an operation that undoes this one.
func (op *Operation) Invert() *Operation {
	return &Operation{
		Range:        op.NewRange(),
		OldText:      op.NewText,
		NewText:      op.OldText,
		CursorBefore: op.CursorAfter,
		CursorAfter:  op.CursorBefore,
		Timestamp:    time.Now(),
	}
}

// Apply performs the operation on t and restores CursorAfter.
func (op *Operation) Apply(t Target) error {
	if !op.Range.IsEmpty() {
		if _, err := t.Delete(op.Range.Start, op.Range.End); err != nil {
			return fmt.Errorf("apply %s: %w", op.Range, err)
		}
	}
	if op.NewText != "" {
		if _, err := t.Insert(op.Range.Start, op.NewText); err != nil {
			return fmt.Errorf("apply insert at %d: %w", op.Range.Start, err)
		}
	}
	return t.SetCursorOffset(op.CursorAfter)
}

// Description returns a human-readable description.
func (op *Operation) Description() string {
	switch {
	case op.IsInsert():
		if op.NewText == "\n" {
			return "Insert newline"
		}
		if n := utf8.RuneCountInString(op.NewText); n > 20 {
			return fmt.Sprintf("Insert %d characters", n)
		}
		return fmt.Sprintf("Insert %q", op.NewText)
	case op.IsDelete():
		return fmt.Sprintf("Delete %d characters", utf8.RuneCountInString(op.OldText))
	case op.IsNoop():
		return "No change"
	default:
		return fmt.Sprintf("Replace %d with %d characters",
			utf8.RuneCountInString(op.OldText), utf8.RuneCountInString(op.NewText))
	}
}

// coalescable reports whether op is a single-character insertion that may
// be merged into a preceding typing run.
func (op *Operation) coalescable() bool {
	if !op.IsInsert() || op.NewText == "\n" {
		return false
	}
	return utf8.RuneCountInString(op.NewText) == 1
}
