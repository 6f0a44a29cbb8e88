package buffer

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/dshills/runpad/internal/errs"
)

// Errors returned by buffer operations. Both match errs.ErrOutOfRange.
var (
	ErrOffsetOutOfRange = fmt.Errorf("offset %w", errs.ErrOutOfRange)
	ErrRangeInvalid     = fmt.Errorf("invalid range: %w", errs.ErrOutOfRange)
)

// Buffer holds one document's text, cursor and selection.
type Buffer struct {
	text string

	// lineStarts[i] is the byte offset where line i begins.
	// There is always at least one entry (line 0 at offset 0).
	lineStarts []ByteOffset

	cursor    ByteOffset
	selection Range
	selected  bool

	tabWidth int
}

// NewBuffer creates a new empty buffer.
func NewBuffer(opts ...Option) *Buffer {
	b := &Buffer{
		lineStarts: []ByteOffset{0},
		tabWidth:   4,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// NewBufferFromString creates a buffer with initial content.
// The cursor starts at offset 0.
func NewBufferFromString(s string, opts ...Option) *Buffer {
	b := NewBuffer(opts...)
	b.text = normalizeLineEndings(s)
	b.reindex()
	return b
}

// normalizeLineEndings converts CRLF and lone CR to LF.
func normalizeLineEndings(s string) string {
	if !strings.ContainsRune(s, '\r') {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// reindex rebuilds the line start table.
func (b *Buffer) reindex() {
	starts := b.lineStarts[:1]
	for i := 0; i < len(b.text); i++ {
		if b.text[i] == '\n' {
			starts = append(starts, ByteOffset(i+1))
		}
	}
	b.lineStarts = starts
}

// Read Operations

// Text returns the full buffer content.
// Go strings are immutable, so the result is a stable snapshot.
func (b *Buffer) Text() string {
	return b.text
}

// TextRange returns text in the given byte range.
// Out of range bounds are clamped to the buffer.
func (b *Buffer) TextRange(start, end ByteOffset) string {
	start, end = b.clamp(start), b.clamp(end)
	if start >= end {
		return ""
	}
	return b.text[start:end]
}

// Len returns the total byte length of the buffer.
func (b *Buffer) Len() ByteOffset {
	return ByteOffset(len(b.text))
}

// LineCount returns the number of logical lines.
// An empty buffer has one (empty) line.
func (b *Buffer) LineCount() uint32 {
	return uint32(len(b.lineStarts))
}

// LineText returns the text of a specific line (without newline).
// Returns "" for lines past the end.
func (b *Buffer) LineText(line uint32) string {
	if line >= b.LineCount() {
		return ""
	}
	return b.text[b.LineStartOffset(line):b.LineEndOffset(line)]
}

// LineLen returns the length of a specific line in bytes (without newline).
func (b *Buffer) LineLen(line uint32) int {
	return int(b.LineEndOffset(line) - b.LineStartOffset(line))
}

// LineStartOffset returns the byte offset of the start of a line.
// Lines past the end map to the buffer length.
func (b *Buffer) LineStartOffset(line uint32) ByteOffset {
	if line >= b.LineCount() {
		return b.Len()
	}
	return b.lineStarts[line]
}

// LineEndOffset returns the byte offset of the end of a line (before newline).
func (b *Buffer) LineEndOffset(line uint32) ByteOffset {
	if line+1 >= b.LineCount() {
		return b.Len()
	}
	return b.lineStarts[line+1] - 1
}

// Coordinate Conversion

// OffsetToPoint converts a byte offset to line/column.
// The offset is clamped to the buffer.
func (b *Buffer) OffsetToPoint(offset ByteOffset) Point {
	offset = b.clamp(offset)
	// Last line whose start is <= offset.
	line := sort.Search(len(b.lineStarts), func(i int) bool {
		return b.lineStarts[i] > offset
	}) - 1
	return Point{Line: uint32(line), Column: uint32(offset - b.lineStarts[line])}
}

// PointToOffset converts line/column to byte offset.
// Returns ErrOffsetOutOfRange if the point is not inside the buffer.
func (b *Buffer) PointToOffset(p Point) (ByteOffset, error) {
	if p.Line >= b.LineCount() {
		return 0, fmt.Errorf("line %d of %d: %w", p.Line, b.LineCount(), ErrOffsetOutOfRange)
	}
	if int(p.Column) > b.LineLen(p.Line) {
		return 0, fmt.Errorf("column %d of line %d: %w", p.Column, p.Line, ErrOffsetOutOfRange)
	}
	offset := b.lineStarts[p.Line] + ByteOffset(p.Column)
	if !b.validOffset(offset) {
		return 0, fmt.Errorf("column %d of line %d splits a character: %w", p.Column, p.Line, ErrOffsetOutOfRange)
	}
	return offset, nil
}

// Cursor and Selection

// Cursor returns the cursor as a line/column point.
func (b *Buffer) Cursor() Point {
	return b.OffsetToPoint(b.cursor)
}

// CursorOffset returns the cursor as a byte offset.
func (b *Buffer) CursorOffset() ByteOffset {
	return b.cursor
}

// SetCursor moves the cursor to a line/column point.
func (b *Buffer) SetCursor(p Point) error {
	offset, err := b.PointToOffset(p)
	if err != nil {
		return err
	}
	b.cursor = offset
	return nil
}

// SetCursorOffset moves the cursor to a byte offset.
func (b *Buffer) SetCursorOffset(offset ByteOffset) error {
	if !b.validOffset(offset) {
		return fmt.Errorf("cursor %d: %w", offset, ErrOffsetOutOfRange)
	}
	b.cursor = offset
	return nil
}

// Selection returns the current selection, if any.
func (b *Buffer) Selection() (Range, bool) {
	return b.selection, b.selected
}

// SetSelection selects [start, end) and places the cursor at end.
func (b *Buffer) SetSelection(start, end ByteOffset) error {
	if !b.validRange(start, end) {
		return fmt.Errorf("select [%d,%d): %w", start, end, ErrRangeInvalid)
	}
	b.selection = Range{Start: start, End: end}
	b.selected = true
	b.cursor = end
	return nil
}

// ClearSelection drops the selection, leaving the cursor in place.
func (b *Buffer) ClearSelection() {
	b.selection = Range{}
	b.selected = false
}

// SelectedText returns the selected text, or "" without a selection.
func (b *Buffer) SelectedText() string {
	if !b.selected {
		return ""
	}
	return b.text[b.selection.Start:b.selection.End]
}

// Write Operations

// Insert inserts text at the given offset.
// Returns the end position of the inserted text, where the cursor now sits.
func (b *Buffer) Insert(offset ByteOffset, text string) (ByteOffset, error) {
	if !b.validOffset(offset) {
		return 0, fmt.Errorf("insert at %d: %w", offset, ErrOffsetOutOfRange)
	}

	text = normalizeLineEndings(text)
	b.text = b.text[:offset] + text + b.text[offset:]
	b.reindex()

	end := offset + ByteOffset(len(text))
	b.cursor = end
	b.ClearSelection()
	return end, nil
}

// Delete removes text in [start, end) and returns the removed text.
// The cursor moves to start.
func (b *Buffer) Delete(start, end ByteOffset) (string, error) {
	if !b.validRange(start, end) {
		return "", fmt.Errorf("delete [%d,%d): %w", start, end, ErrRangeInvalid)
	}

	removed := b.text[start:end]
	b.text = b.text[:start] + b.text[end:]
	b.reindex()

	b.cursor = start
	b.ClearSelection()
	return removed, nil
}

// TabWidth returns the buffer's tab width.
func (b *Buffer) TabWidth() int {
	return b.tabWidth
}

// SetTabWidth sets the buffer's tab width.
func (b *Buffer) SetTabWidth(width int) {
	if width > 0 {
		b.tabWidth = width
	}
}

// validOffset reports whether offset is inside the buffer and on a
// character boundary.
func (b *Buffer) validOffset(offset ByteOffset) bool {
	if offset < 0 || offset > b.Len() {
		return false
	}
	return offset == b.Len() || utf8.RuneStart(b.text[offset])
}

func (b *Buffer) validRange(start, end ByteOffset) bool {
	return NewRange(start, end).Within(b.Len()) && b.validOffset(start) && b.validOffset(end)
}

func (b *Buffer) clamp(offset ByteOffset) ByteOffset {
	if offset < 0 {
		return 0
	}
	if offset > b.Len() {
		return b.Len()
	}
	return offset
}
