package history

import (
	"fmt"
	"time"
)

// DefaultMaxEntries is used when New is given a non-positive limit.
const DefaultMaxEntries = 1000

// Entry is one undo step: one or more operations applied in order.
type Entry struct {
	Name       string
	Operations []*Operation
	Timestamp  time.Time
}

// Description returns a human-readable description of the entry.
func (e *Entry) Description() string {
	if e.Name != "" {
		return e.Name
	}
	if len(e.Operations) == 1 {
		return e.Operations[0].Description()
	}
	return fmt.Sprintf("%d operations", len(e.Operations))
}

// undo reverts the entry's operations in reverse order.
func (e *Entry) undo(t Target) error {
	for i := len(e.Operations) - 1; i >= 0; i-- {
		if err := e.Operations[i].Invert().Apply(t); err != nil {
			return fmt.Errorf("undo %q step %d: %w", e.Description(), i, err)
		}
	}
	return nil
}

// redo reapplies the entry's operations in order.
func (e *Entry) redo(t Target) error {
	for i, op := range e.Operations {
		if err := op.Apply(t); err != nil {
			return fmt.Errorf("redo %q step %d: %w", e.Description(), i, err)
		}
	}
	return nil
}

// History manages undo/redo state for a buffer.
// It is not safe for concurrent use; it is owned by a single document.
type History struct {
	undoStack []*Entry
	redoStack []*Entry

	// Grouping state
	grouping  bool
	groupName string
	groupOps  []*Operation

	// Coalescing state: true while the top undo entry is an open typing run.
	coalesce bool
	typing   bool

	// Configuration
	maxEntries int
}

// New creates a new history manager.
func New(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{
		maxEntries: maxEntries,
		coalesce:   true,
	}
}

// SetCoalesce enables or disables merging of consecutive keystrokes.
func (h *History) SetCoalesce(enabled bool) {
	h.coalesce = enabled
	h.typing = false
}

// Record adds an operation to the undo stack and clears the redo stack.
// Callers record only operations that were successfully applied.
func (h *History) Record(op *Operation) {
	if op == nil || op.IsNoop() {
		return
	}

	if h.grouping {
		h.groupOps = append(h.groupOps, op)
		return
	}

	if h.canMerge(op) {
		top := h.undoStack[len(h.undoStack)-1].Operations[0]
		top.NewText += op.NewText
		top.CursorAfter = op.CursorAfter
		return
	}

	h.push(&Entry{Operations: []*Operation{op}, Timestamp: op.Timestamp})
	h.typing = h.coalesce && op.coalescable()
}

// canMerge reports whether op continues the open typing run on top of the stack.
func (h *History) canMerge(op *Operation) bool {
	if !h.coalesce || !h.typing || len(h.redoStack) > 0 || len(h.undoStack) == 0 {
		return false
	}
	if !op.coalescable() {
		return false
	}
	top := h.undoStack[len(h.undoStack)-1]
	if len(top.Operations) != 1 || top.Name != "" {
		return false
	}
	return top.Operations[0].NewRange().End == op.Range.Start
}

// push adds an entry, clears the redo stack and enforces the size limit.
func (h *History) push(e *Entry) {
	h.undoStack = append(h.undoStack, e)
	h.redoStack = nil

	if len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = h.undoStack[excess:]
	}
}

// Undo reverts the most recent entry.
// Returns false with no error when there is nothing to undo.
func (h *History) Undo(t Target) (bool, error) {
	h.typing = false
	if len(h.undoStack) == 0 {
		return false, nil
	}

	entry := h.undoStack[len(h.undoStack)-1]
	if err := entry.undo(t); err != nil {
		return false, err
	}

	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.redoStack = append(h.redoStack, entry)
	return true, nil
}

// Redo reapplies the most recently undone entry.
// Returns false with no error when there is nothing to redo.
func (h *History) Redo(t Target) (bool, error) {
	h.typing = false
	if len(h.redoStack) == 0 {
		return false, nil
	}

	entry := h.redoStack[len(h.redoStack)-1]
	if err := entry.redo(t); err != nil {
		return false, err
	}

	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.undoStack = append(h.undoStack, entry)
	return true, nil
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	return len(h.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	return len(h.redoStack) > 0
}

// UndoCount returns the number of undo entries available.
func (h *History) UndoCount() int {
	return len(h.undoStack)
}

// RedoCount returns the number of redo entries available.
func (h *History) RedoCount() int {
	return len(h.redoStack)
}

// PeekUndo returns the description of the next undo entry.
func (h *History) PeekUndo() (string, bool) {
	if len(h.undoStack) == 0 {
		return "", false
	}
	return h.undoStack[len(h.undoStack)-1].Description(), true
}

// PeekRedo returns the description of the next redo entry.
func (h *History) PeekRedo() (string, bool) {
	if len(h.redoStack) == 0 {
		return "", false
	}
	return h.redoStack[len(h.redoStack)-1].Description(), true
}

// BeginGroup starts an operation group.
// Operations recorded while grouping are combined into a single undo entry.
// Nested calls are ignored.
func (h *History) BeginGroup(name string) {
	if h.grouping {
		return
	}
	h.grouping = true
	h.groupName = name
	h.groupOps = nil
	h.typing = false
}

// EndGroup finishes an operation group.
// An empty group leaves the stacks untouched.
func (h *History) EndGroup() {
	if !h.grouping {
		return
	}
	h.grouping = false

	if len(h.groupOps) > 0 {
		h.push(&Entry{
			Name:       h.groupName,
			Operations: h.groupOps,
			Timestamp:  time.Now(),
		})
	}
	h.groupOps = nil
	h.groupName = ""
}

// CancelGroup discards a group without adding it to history.
// Operations already applied still affect the buffer.
func (h *History) CancelGroup() {
	h.grouping = false
	h.groupOps = nil
	h.groupName = ""
}

// IsGrouping returns true if currently in an operation group.
func (h *History) IsGrouping() bool {
	return h.grouping
}

// Clear removes all undo/redo history.
func (h *History) Clear() {
	h.undoStack = nil
	h.redoStack = nil
	h.typing = false
	h.CancelGroup()
}

// SetMaxEntries changes the maximum number of undo entries.
// If the current stack is larger, oldest entries are removed.
func (h *History) SetMaxEntries(max int) {
	if max <= 0 {
		max = DefaultMaxEntries
	}
	h.maxEntries = max

	if len(h.undoStack) > max {
		excess := len(h.undoStack) - max
		h.undoStack = h.undoStack[excess:]
	}
}

// MaxEntries returns the maximum number of undo entries.
func (h *History) MaxEntries() int {
	return h.maxEntries
}
