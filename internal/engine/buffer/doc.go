// Package buffer provides the text buffer that backs a single document.
//
// A Buffer owns the document text together with its cursor and optional
// selection. Content is always a sequence of complete lines: carriage
// returns are normalized to LF on the way in, so there is never a dangling
// "\r" half of a line break.
//
// Basic usage:
//
//	buf := buffer.NewBufferFromString("Hello, World!")
//
//	buf.Insert(7, "Beautiful ")  // "Hello, Beautiful World!"
//	removed, _ := buf.Delete(0, 7) // removed == "Hello, "
//
// Position Types:
//
//   - ByteOffset: raw byte position in the buffer
//   - Point: line and column position (0-indexed, column in bytes)
//   - Range: half-open byte range [Start, End)
//
// A Buffer is not safe for concurrent use. The document layer owns each
// buffer exclusively and is its only mutator.
package buffer
