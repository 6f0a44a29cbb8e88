package document

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/dshills/runpad/internal/errs"
)

func TestNewSet(t *testing.T) {
	s := NewSet()
	if s.Len() != 1 {
		t.Fatalf("new set should hold one document, got %d", s.Len())
	}
	if s.ActiveIndex() != 0 {
		t.Errorf("active = %d", s.ActiveIndex())
	}
	if s.Active().Label() != "Untitled 1" {
		t.Errorf("label = %q", s.Active().Label())
	}
}

func TestSetCreateAndOpen(t *testing.T) {
	s := NewSet()

	if i := s.Create(); i != 1 || s.ActiveIndex() != 1 {
		t.Errorf("Create = %d, active %d", i, s.ActiveIndex())
	}
	if s.Active().Label() != "Untitled 2" {
		t.Errorf("label = %q", s.Active().Label())
	}

	i := s.Open("/work/main.py", "print(1)\n")
	if i != 2 || s.ActiveIndex() != 2 {
		t.Errorf("Open = %d, active %d", i, s.ActiveIndex())
	}
	if s.Active().Text() != "print(1)\n" || s.Active().Path != "/work/main.py" {
		t.Errorf("opened document = %q at %q", s.Active().Text(), s.Active().Path)
	}
}

func TestSetSetActive(t *testing.T) {
	s := NewSet()
	s.Create()

	if err := s.SetActive(0); err != nil {
		t.Fatalf("SetActive(0) failed: %v", err)
	}
	for _, idx := range []int{-1, 2, 50} {
		err := s.SetActive(idx)
		if !errors.Is(err, ErrIndexOutOfRange) || !errors.Is(err, errs.ErrOutOfRange) {
			t.Errorf("SetActive(%d) err = %v", idx, err)
		}
	}
	if s.ActiveIndex() != 0 {
		t.Error("failed SetActive changed the active index")
	}
}

func TestSetClose(t *testing.T) {
	tests := []struct {
		name       string
		active     int
		close      int
		wantActive int
		wantDoc    int // index of the expected active document before the close
	}{
		{"active middle", 1, 1, 1, 2},
		{"active last", 2, 2, 1, 1},
		{"before active", 2, 0, 1, 2},
		{"after active", 0, 2, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSet()
			s.Create()
			s.Create()
			if err := s.SetActive(tt.active); err != nil {
				t.Fatal(err)
			}
			want, _ := s.At(tt.wantDoc)

			if err := s.Close(tt.close); err != nil {
				t.Fatalf("Close failed: %v", err)
			}
			if s.Len() != 2 {
				t.Errorf("len = %d, want 2", s.Len())
			}
			if s.ActiveIndex() != tt.wantActive {
				t.Errorf("active = %d, want %d", s.ActiveIndex(), tt.wantActive)
			}
			if s.Active() != want {
				t.Errorf("active document = %q, want %q", s.Active().Label(), want.Label())
			}
		})
	}
}

func TestSetCloseLastKeepsOneDocument(t *testing.T) {
	s := NewSet()
	first := s.Active()

	if err := s.Close(0); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if s.Len() != 1 {
		t.Fatalf("set should never be empty, len=%d", s.Len())
	}
	if s.Active() == first {
		t.Error("closing the last document should create a fresh one")
	}
	if s.Active().Text() != "" {
		t.Errorf("fresh document text = %q", s.Active().Text())
	}
	if err := s.Close(3); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Close(3) err = %v", err)
	}
}

func TestSetLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.py")
	store := FileStore{}
	if err := store.Save(path, "x = 1\r\n"); err != nil {
		t.Fatal(err)
	}

	s := NewSet()
	i, err := s.Load(store, path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if i != 1 || s.Active().Label() != "prog.py" {
		t.Errorf("loaded at %d with label %q", i, s.Active().Label())
	}

	if _, err := s.Load(store, filepath.Join(dir, "missing.py")); !errors.Is(err, errs.ErrIO) {
		t.Errorf("missing file err = %v", err)
	}
	if s.Len() != 2 {
		t.Errorf("failed load changed the set, len=%d", s.Len())
	}
}

func TestSetDocumentsIsCopy(t *testing.T) {
	s := NewSet()
	docs := s.Documents()
	docs[0] = nil
	if s.Active() == nil {
		t.Error("Documents should return a copy")
	}
}

func TestSetSetOptions(t *testing.T) {
	s := NewSet(WithHistoryLimit(10))
	s.SetOptions(WithHistoryLimit(3), WithTabWidth(2))

	if got := s.Active().History().MaxEntries(); got != 10 {
		t.Errorf("existing document limit = %d, want 10", got)
	}
	s.Create()
	if d := s.Active(); d.History().MaxEntries() != 3 || d.Buffer().TabWidth() != 2 {
		t.Errorf("new document limit = %d, tab width = %d", d.History().MaxEntries(), d.Buffer().TabWidth())
	}
	s.Open("/work/x.py", "")
	if got := s.Active().History().MaxEntries(); got != 3 {
		t.Errorf("opened document limit = %d, want 3", got)
	}
}
