package document

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/runpad/internal/errs"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.txt")
	store := FileStore{}

	// Content is written and read back unchanged.
	content := "line 1\r\nline 2"
	if err := store.Save(path, content); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := store.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got != content {
		t.Errorf("Load = %q, want %q", got, content)
	}
}

func TestFileStoreErrors(t *testing.T) {
	dir := t.TempDir()
	store := FileStore{}

	_, err := store.Load(filepath.Join(dir, "nope"))
	if !errors.Is(err, errs.ErrIO) || !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load err = %v", err)
	}
	if errs.KindOf(err) != errs.KindIO {
		t.Errorf("kind = %v", errs.KindOf(err))
	}

	err = store.Save(filepath.Join(dir, "missing", "file"), "x")
	if !errors.Is(err, errs.ErrIO) {
		t.Errorf("Save err = %v", err)
	}
}

func TestDocumentSaveAs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.py")
	d := New("", "print('hi')\n", 1)
	if err := d.Insert(0, "# c\n"); err != nil {
		t.Fatal(err)
	}

	if err := d.SaveAs(FileStore{}, filepath.Join(dir, "no", "out.py")); err == nil {
		t.Fatal("SaveAs into a missing directory should fail")
	}
	if d.HasPath() {
		t.Error("failed SaveAs should not set the path")
	}

	if err := d.SaveAs(FileStore{}, path); err != nil {
		t.Fatalf("SaveAs failed: %v", err)
	}
	if d.Path != path || d.Modified() {
		t.Errorf("path=%q modified=%v", d.Path, d.Modified())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "# c\nprint('hi')\n" {
		t.Errorf("file = %q", data)
	}

	if err := d.Insert(0, "x"); err != nil {
		t.Fatal(err)
	}
	if err := d.Save(FileStore{}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
}
