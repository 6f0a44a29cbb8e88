// Package history provides undo/redo for a text buffer.
//
// Every successful buffer mutation is described by an Operation: the range
// it replaced, the text that was there before and the text that is there
// now. That is enough to invert the change, so History only ever stores
// operations and replays them against a Target.
//
// # History Stack
//
//	h := history.New(1000) // keep at most 1000 undo entries
//
//	end, _ := buf.Insert(0, "hi")
//	h.Record(history.NewInsertOperation(0, "hi").WithCursors(0, end))
//
//	h.Undo(buf) // buf is empty again
//	h.Redo(buf) // "hi" is back
//
// Recording a new operation clears the redo stack.
//
// # Grouping
//
// Several operations can be recorded as one undo step:
//
//	h.BeginGroup("Replace")
//	h.Record(deleteOp)
//	h.Record(insertOp)
//	h.EndGroup()
//
// # Coalescing
//
// Consecutive single-character insertions that continue exactly where the
// previous one ended are merged into one entry, so typing a word undoes as a
// word. Coalescing can be disabled with SetCoalesce(false); the stack is
// correct either way.
package history
