package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestOperationString(t *testing.T) {
	tests := map[Operation]string{
		OpWrite:  "write",
		OpCreate: "create",
		OpRemove: "remove",
		OpRename: "rename",
	}
	for op, want := range tests {
		if op.String() != want {
			t.Errorf("%d.String() = %q, want %q", op, op.String(), want)
		}
	}
}

func TestWatcherDetectsWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("a = 1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	w, err := New(path, WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()

	events := make(chan Event, 10)
	w.OnChange(func(ev Event) { events <- ev })
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	// A sibling file must not trigger the handler.
	if err := os.WriteFile(filepath.Join(dir, "other.toml"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("a = 2\n"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case ev := <-events:
		if ev.Path != w.Path() {
			t.Errorf("event path = %q, want %q", ev.Path, w.Path())
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change event")
	}
}

func TestWatcherDebounces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}

	w, err := New(path, WithDebounce(200*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	events := make(chan Event, 10)
	w.OnChange(func(ev Event) { events <- ev })
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 5; i++ {
		if err := os.WriteFile(path, []byte{byte('a' + i)}, 0644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case <-events:
	case <-time.After(5 * time.Second):
		t.Fatal("no change event")
	}
	select {
	case ev := <-events:
		t.Errorf("burst produced a second event: %+v", ev)
	case <-time.After(400 * time.Millisecond):
	}
}

func TestStartAfterClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	w, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := w.Start(); err != ErrWatcherClosed {
		t.Errorf("Start after Close = %v, want ErrWatcherClosed", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close = %v", err)
	}
}
