// Package file provides handlers for document lifecycle and tab operations.
//
// The "file" namespace creates, opens, saves and closes documents in the
// execution context's document set. The "tab" namespace switches the active
// document. Tab indices are zero-based.
package file
