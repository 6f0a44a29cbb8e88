package document

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/dshills/runpad/internal/engine/buffer"
	"github.com/dshills/runpad/internal/engine/history"
	"github.com/dshills/runpad/internal/engine/search"
	"github.com/dshills/runpad/internal/errs"
)

// Document errors.
var (
	// ErrNoPath is returned by Save on a document that was never saved.
	ErrNoPath = errors.New("no file path; use Save As")

	// ErrNoSelection is returned by Cut and Copy without a selection.
	ErrNoSelection = fmt.Errorf("no selection: %w", errs.ErrNotFound)

	// ErrMatchNotFound is returned by Find and ReplaceFirst when the needle is absent.
	ErrMatchNotFound = fmt.Errorf("match %w", errs.ErrNotFound)
)

// Option configures a document.
type Option func(*options)

type options struct {
	historyLimit int
	tabWidth     int
}

// WithHistoryLimit bounds the number of undo entries.
func WithHistoryLimit(n int) Option {
	return func(o *options) {
		o.historyLimit = n
	}
}

// WithTabWidth sets the buffer tab width.
func WithTabWidth(n int) Option {
	return func(o *options) {
		o.tabWidth = n
	}
}

// Document is one editable text with its own buffer and history.
type Document struct {
	// ID identifies the document for logging.
	ID uuid.UUID

	// Path is the file path (empty for documents never saved).
	Path string

	buf      *buffer.Buffer
	hist     *history.History
	untitled int
	modified bool
}

// New creates a document with the given content.
// untitled is the number used in the label while the document has no path.
func New(path, content string, untitled int, opts ...Option) *Document {
	o := options{historyLimit: history.DefaultMaxEntries, tabWidth: 4}
	for _, opt := range opts {
		opt(&o)
	}

	return &Document{
		ID:       uuid.New(),
		Path:     path,
		buf:      buffer.NewBufferFromString(content, buffer.WithTabWidth(o.tabWidth)),
		hist:     history.New(o.historyLimit),
		untitled: untitled,
	}
}

// Buffer returns the document's buffer for reading.
// Mutating it directly bypasses history.
func (d *Document) Buffer() *buffer.Buffer {
	return d.buf
}

// History returns the document's undo history.
func (d *Document) History() *history.History {
	return d.hist
}

// Text returns the full document content.
func (d *Document) Text() string {
	return d.buf.Text()
}

// HasPath reports whether the document is associated with a file.
func (d *Document) HasPath() bool {
	return d.Path != ""
}

// Label returns the tab label: the file's base name, or "Untitled N".
func (d *Document) Label() string {
	if d.HasPath() {
		return filepath.Base(d.Path)
	}
	return fmt.Sprintf("Untitled %d", d.untitled)
}

// Modified reports whether the document changed since it was loaded or saved.
func (d *Document) Modified() bool {
	return d.modified
}

// MarkSaved clears the modified flag.
func (d *Document) MarkSaved() {
	d.modified = false
}

// Editing

// Insert inserts text at offset and records it.
func (d *Document) Insert(offset buffer.ByteOffset, text string) error {
	if text == "" {
		return nil
	}
	before := d.buf.CursorOffset()
	end, err := d.buf.Insert(offset, text)
	if err != nil {
		return err
	}
	// Record what the buffer stored, after line ending normalization.
	d.hist.Record(history.NewInsertOperation(offset, d.buf.TextRange(offset, end)).WithCursors(before, end))
	d.modified = true
	return nil
}

// InsertAtCursor types text at the cursor, replacing the selection if any.
func (d *Document) InsertAtCursor(text string) error {
	if sel, ok := d.buf.Selection(); ok && !sel.IsEmpty() {
		return d.Replace(sel.Start, sel.End, text)
	}
	return d.Insert(d.buf.CursorOffset(), text)
}

// Delete removes [start, end), records it and returns the removed text.
func (d *Document) Delete(start, end buffer.ByteOffset) (string, error) {
	before := d.buf.CursorOffset()
	removed, err := d.buf.Delete(start, end)
	if err != nil {
		return "", err
	}
	d.hist.Record(history.NewDeleteOperation(buffer.NewRange(start, end), removed).WithCursors(before, start))
	if removed != "" {
		d.modified = true
	}
	return removed, nil
}

// Replace substitutes [start, end) with text as a single undo step.
func (d *Document) Replace(start, end buffer.ByteOffset, text string) error {
	d.hist.BeginGroup("Replace")
	defer d.hist.EndGroup()

	if _, err := d.Delete(start, end); err != nil {
		return err
	}
	return d.Insert(start, text)
}

// Undo reverts the most recent edit. Returns false when there is nothing to undo.
func (d *Document) Undo() (bool, error) {
	ok, err := d.hist.Undo(d.buf)
	if ok {
		d.modified = true
	}
	return ok, err
}

// Redo reapplies the most recently undone edit. Returns false when there is nothing to redo.
func (d *Document) Redo() (bool, error) {
	ok, err := d.hist.Redo(d.buf)
	if ok {
		d.modified = true
	}
	return ok, err
}

// Search

// Find selects the first occurrence of needle, scanning from the start of
// the document. Repeated calls find the same match.
func (d *Document) Find(needle string) (search.Match, error) {
	m, ok := search.Find(d.buf.Text(), needle)
	if !ok {
		return search.Match{}, fmt.Errorf("find %q: %w", needle, ErrMatchNotFound)
	}
	if err := d.buf.SetSelection(buffer.ByteOffset(m.Start), buffer.ByteOffset(m.End)); err != nil {
		return search.Match{}, err
	}
	return m, nil
}

// ReplaceFirst replaces the first occurrence of needle with replacement.
// The edit is one undo step. The returned match covers the original text.
func (d *Document) ReplaceFirst(needle, replacement string) (search.Match, error) {
	m, ok := search.Find(d.buf.Text(), needle)
	if !ok {
		return search.Match{}, fmt.Errorf("replace %q: %w", needle, ErrMatchNotFound)
	}
	if err := d.Replace(buffer.ByteOffset(m.Start), buffer.ByteOffset(m.End), replacement); err != nil {
		return search.Match{}, err
	}
	return m, nil
}

// Clipboard

// Copy writes the selected text to cb.
func (d *Document) Copy(cb Clipboard) (string, error) {
	text := d.buf.SelectedText()
	if text == "" {
		return "", ErrNoSelection
	}
	if err := cb.WriteAll(text); err != nil {
		return "", fmt.Errorf("copy: %w", err)
	}
	return text, nil
}

// Cut writes the selected text to cb and deletes it.
func (d *Document) Cut(cb Clipboard) (string, error) {
	sel, ok := d.buf.Selection()
	if !ok || sel.IsEmpty() {
		return "", ErrNoSelection
	}
	text, err := d.Copy(cb)
	if err != nil {
		return "", err
	}
	if _, err := d.Delete(sel.Start, sel.End); err != nil {
		return "", err
	}
	return text, nil
}

// Paste inserts the clipboard text at the cursor, replacing the selection.
func (d *Document) Paste(cb Clipboard) (string, error) {
	text, err := cb.ReadAll()
	if err != nil {
		return "", fmt.Errorf("paste: %w", err)
	}
	if text == "" {
		return "", ErrClipboardEmpty
	}
	if err := d.InsertAtCursor(text); err != nil {
		return "", err
	}
	return text, nil
}

// Persistence

// Save writes the document to its path.
func (d *Document) Save(store Store) error {
	if !d.HasPath() {
		return ErrNoPath
	}
	if err := store.Save(d.Path, d.buf.Text()); err != nil {
		return err
	}
	d.modified = false
	return nil
}

// SaveAs writes the document to path and associates it with that path.
// The association only changes when the write succeeds.
func (d *Document) SaveAs(store Store, path string) error {
	if err := store.Save(path, d.buf.Text()); err != nil {
		return err
	}
	d.Path = path
	d.modified = false
	return nil
}
