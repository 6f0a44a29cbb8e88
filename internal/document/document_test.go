package document

import (
	"errors"
	"testing"

	"github.com/dshills/runpad/internal/engine/buffer"
	"github.com/dshills/runpad/internal/errs"
)

func TestNewDocument(t *testing.T) {
	d := New("", "hello", 3)
	if d.Text() != "hello" {
		t.Errorf("text = %q", d.Text())
	}
	if d.HasPath() {
		t.Error("document without path should report no path")
	}
	if d.Label() != "Untitled 3" {
		t.Errorf("label = %q", d.Label())
	}
	if d.Modified() {
		t.Error("new document should not be modified")
	}

	named := New("/tmp/dir/script.py", "", 0)
	if named.Label() != "script.py" {
		t.Errorf("label = %q", named.Label())
	}
	if named.ID == d.ID {
		t.Error("documents should get distinct IDs")
	}
}

func TestDocumentOptions(t *testing.T) {
	d := New("", "", 1, WithHistoryLimit(7), WithTabWidth(2))
	if d.History().MaxEntries() != 7 {
		t.Errorf("history limit = %d", d.History().MaxEntries())
	}
	if d.Buffer().TabWidth() != 2 {
		t.Errorf("tab width = %d", d.Buffer().TabWidth())
	}
}

func TestDocumentUndoRedoAll(t *testing.T) {
	d := New("", "base", 1)
	d.History().SetCoalesce(false)

	states := []string{d.Text()}
	edits := []func() error{
		func() error { return d.Insert(4, " line") },
		func() error { _, err := d.Delete(0, 1); return err },
		func() error { return d.Insert(0, "B\n") },
		func() error { return d.Replace(2, 5, "XYZ") },
	}
	for i, edit := range edits {
		if err := edit(); err != nil {
			t.Fatalf("edit %d failed: %v", i, err)
		}
		states = append(states, d.Text())
	}

	for i := len(edits) - 1; i >= 0; i-- {
		ok, err := d.Undo()
		if err != nil || !ok {
			t.Fatalf("undo %d: ok=%v err=%v", i, ok, err)
		}
		if d.Text() != states[i] {
			t.Fatalf("after undo %d: %q, want %q", i, d.Text(), states[i])
		}
	}
	if ok, _ := d.Undo(); ok {
		t.Error("undo on empty history should be a no-op")
	}

	for i := 1; i <= len(edits); i++ {
		ok, err := d.Redo()
		if err != nil || !ok {
			t.Fatalf("redo %d: ok=%v err=%v", i, ok, err)
		}
		if d.Text() != states[i] {
			t.Fatalf("after redo %d: %q, want %q", i, d.Text(), states[i])
		}
	}
}

func TestDocumentRedoInvalidatedByEdit(t *testing.T) {
	d := New("", "abc", 1)
	if err := d.Insert(3, "d"); err != nil {
		t.Fatal(err)
	}
	if _, err := d.Undo(); err != nil {
		t.Fatal(err)
	}
	if err := d.Insert(0, "z"); err != nil {
		t.Fatal(err)
	}
	ok, err := d.Redo()
	if ok || err != nil {
		t.Errorf("redo after new edit: ok=%v err=%v, want no-op", ok, err)
	}
	if d.Text() != "zabc" {
		t.Errorf("text = %q", d.Text())
	}
}

func TestDocumentFailedEditNotRecorded(t *testing.T) {
	d := New("", "abc", 1)

	if err := d.Insert(10, "x"); !errors.Is(err, errs.ErrOutOfRange) {
		t.Errorf("Insert err = %v", err)
	}
	if _, err := d.Delete(2, 1); !errors.Is(err, errs.ErrOutOfRange) {
		t.Errorf("Delete err = %v", err)
	}
	if d.History().CanUndo() {
		t.Error("failed edits must not be recorded")
	}
	if d.Modified() {
		t.Error("failed edits must not mark the document modified")
	}
}

func TestDocumentInsertNormalizesBeforeRecording(t *testing.T) {
	d := New("", "ab", 1)
	if err := d.Insert(1, "x\r\ny"); err != nil {
		t.Fatal(err)
	}
	if _, err := d.Undo(); err != nil {
		t.Fatal(err)
	}
	if d.Text() != "ab" {
		t.Errorf("undo of normalized insert gave %q", d.Text())
	}
}

func TestDocumentTypingCoalesces(t *testing.T) {
	d := New("", "", 1)
	for _, r := range "hello" {
		if err := d.InsertAtCursor(string(r)); err != nil {
			t.Fatal(err)
		}
	}
	if d.History().UndoCount() != 1 {
		t.Errorf("typing should coalesce into 1 entry, got %d", d.History().UndoCount())
	}
	if _, err := d.Undo(); err != nil {
		t.Fatal(err)
	}
	if d.Text() != "" {
		t.Errorf("text after undo = %q", d.Text())
	}
}

func TestDocumentInsertAtCursorReplacesSelection(t *testing.T) {
	d := New("", "hello world", 1)
	if err := d.Buffer().SetSelection(6, 11); err != nil {
		t.Fatal(err)
	}
	if err := d.InsertAtCursor("there"); err != nil {
		t.Fatal(err)
	}
	if d.Text() != "hello there" {
		t.Errorf("text = %q", d.Text())
	}
	if d.History().UndoCount() != 1 {
		t.Errorf("replacing a selection should be one undo step, got %d", d.History().UndoCount())
	}
}

func TestDocumentFind(t *testing.T) {
	d := New("", "one two one", 1)

	m, err := d.Find("one")
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if m.Start != 0 || m.End != 3 {
		t.Errorf("match = %+v", m)
	}
	sel, ok := d.Buffer().Selection()
	if !ok || sel != buffer.NewRange(0, 3) {
		t.Errorf("selection = %v, %v", sel, ok)
	}

	// Repeated find restarts from the beginning.
	m, _ = d.Find("one")
	if m.Start != 0 {
		t.Errorf("repeated find start = %d, want 0", m.Start)
	}

	if _, err := d.Find("three"); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("missing find err = %v", err)
	}
	if _, err := d.Find(""); !errors.Is(err, ErrMatchNotFound) {
		t.Errorf("empty needle err = %v", err)
	}
}

func TestDocumentReplaceFirst(t *testing.T) {
	d := New("", "ababab", 1)

	if _, err := d.ReplaceFirst("ab", "x"); err != nil {
		t.Fatalf("ReplaceFirst failed: %v", err)
	}
	if d.Text() != "xabab" {
		t.Errorf("text = %q, want xabab", d.Text())
	}
	if d.History().UndoCount() != 1 {
		t.Errorf("replace should be one undo step, got %d", d.History().UndoCount())
	}

	if _, err := d.Undo(); err != nil {
		t.Fatal(err)
	}
	if d.Text() != "ababab" {
		t.Errorf("undo replace gave %q", d.Text())
	}

	if _, err := d.ReplaceFirst("zz", "y"); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("missing replace err = %v", err)
	}
	if d.Text() != "ababab" {
		t.Error("failed replace mutated the document")
	}
}

func TestDocumentClipboard(t *testing.T) {
	cb := &MemoryClipboard{}
	d := New("", "hello world", 1)

	if _, err := d.Copy(cb); !errors.Is(err, ErrNoSelection) {
		t.Errorf("copy without selection err = %v", err)
	}

	if err := d.Buffer().SetSelection(0, 5); err != nil {
		t.Fatal(err)
	}
	text, err := d.Cut(cb)
	if err != nil {
		t.Fatalf("Cut failed: %v", err)
	}
	if text != "hello" || d.Text() != " world" {
		t.Errorf("cut %q, text %q", text, d.Text())
	}

	if err := d.Buffer().SetCursorOffset(d.Buffer().Len()); err != nil {
		t.Fatal(err)
	}
	if _, err := d.Paste(cb); err != nil {
		t.Fatalf("Paste failed: %v", err)
	}
	if d.Text() != " worldhello" {
		t.Errorf("text after paste = %q", d.Text())
	}

	if _, err := d.Paste(&MemoryClipboard{}); !errors.Is(err, ErrClipboardEmpty) {
		t.Errorf("empty paste err = %v", err)
	}
}

func TestDocumentSaveWithoutPath(t *testing.T) {
	d := New("", "x", 1)
	if err := d.Save(FileStore{}); !errors.Is(err, ErrNoPath) {
		t.Errorf("Save err = %v, want ErrNoPath", err)
	}
	if err := d.Save(FileStore{}); err.Error() != "no file path; use Save As" {
		t.Errorf("message = %q", err.Error())
	}
}

func TestDocumentModifiedFlag(t *testing.T) {
	d := New("", "", 1)
	if err := d.Insert(0, "a"); err != nil {
		t.Fatal(err)
	}
	if !d.Modified() {
		t.Error("insert should mark modified")
	}
	d.MarkSaved()
	if d.Modified() {
		t.Error("MarkSaved should clear modified")
	}
	if _, err := d.Undo(); err != nil {
		t.Fatal(err)
	}
	if !d.Modified() {
		t.Error("undo should mark modified")
	}
}
