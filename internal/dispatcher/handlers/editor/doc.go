// Package editor provides handlers for text editing operations on the
// active document: insertion, deletion, selection, cursor movement,
// clipboard transfer and undo/redo.
//
// Offsets are byte offsets into the document. Line and column arguments to
// edit.moveCursor are one-based, the way they are shown to the user.
package editor
