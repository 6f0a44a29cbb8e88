// Package document owns the open documents (tabs) of the editor.
//
// A Document pairs a text buffer with its undo history and an optional file
// path. Every mutation goes through the Document so that history records
// exactly the edits that succeeded. A Set keeps the documents in tab order
// and tracks which one is active; it is never empty.
//
// The package is single-threaded. Documents are owned by the command
// dispatch path and are not safe for concurrent use.
package document
