package search

import (
	"errors"
	"testing"

	"github.com/dshills/runpad/internal/dispatcher/execctx"
	"github.com/dshills/runpad/internal/dispatcher/handler"
	"github.com/dshills/runpad/internal/document"
	"github.com/dshills/runpad/internal/errs"
	"github.com/dshills/runpad/internal/input"
)

func newContext(text string) *execctx.ExecutionContext {
	set := document.NewSet()
	set.Open("", text)
	if err := set.Close(0); err != nil {
		panic(err)
	}
	return execctx.New(set)
}

func TestFind(t *testing.T) {
	h := NewHandler()
	ctx := newContext("one\ntwo two\n")

	res := h.HandleAction(input.NewAction(ActionFind).WithText("two"), ctx)
	if !res.IsOK() {
		t.Fatalf("find: %v %q", res.Status, res.Message)
	}
	if res.Message != "Found at 2:1" {
		t.Errorf("message = %q", res.Message)
	}
	if res.GetDataInt("start") != 4 || res.GetDataInt("end") != 7 {
		t.Errorf("match = [%d,%d)", res.GetDataInt("start"), res.GetDataInt("end"))
	}
	if got := ctx.Documents.Active().Buffer().SelectedText(); got != "two" {
		t.Errorf("selection = %q", got)
	}

	// Search restarts from the top every time.
	res = h.HandleAction(input.NewAction(ActionFind).WithText("two"), ctx)
	if res.GetDataInt("start") != 4 {
		t.Errorf("repeated find start = %d, want 4", res.GetDataInt("start"))
	}
}

func TestFindNotFound(t *testing.T) {
	h := NewHandler()
	ctx := newContext("abc")

	tests := []struct {
		name   string
		action input.Action
	}{
		{"absent", input.NewAction(ActionFind).WithText("zzz")},
		{"empty", input.NewAction(ActionFind)},
		{"case", input.NewAction(ActionFind).With("needle", "ABC")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := h.HandleAction(tt.action, ctx)
			if res.Status != handler.StatusNoOp {
				t.Errorf("status = %v, want no-op", res.Status)
			}
		})
	}

	res := h.HandleAction(input.NewAction(ActionFind).WithText("zzz"), ctx)
	if !errors.Is(res.Error, errs.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", res.Error)
	}
	if res.Message != `Not found: "zzz"` {
		t.Errorf("message = %q", res.Message)
	}
}

func TestReplaceFirstOnly(t *testing.T) {
	h := NewHandler()
	ctx := newContext("ababab")
	action := input.NewAction(ActionReplace).With("needle", "ab").With("replacement", "x")

	res := h.HandleAction(action, ctx)
	if !res.IsOK() {
		t.Fatalf("replace: %v %q", res.Status, res.Message)
	}
	doc := ctx.Documents.Active()
	if doc.Text() != "xabab" {
		t.Errorf("text = %q, want xabab", doc.Text())
	}

	h.HandleAction(action, ctx)
	if doc.Text() != "xxab" {
		t.Errorf("second replace = %q, want xxab", doc.Text())
	}

	if _, err := doc.Undo(); err != nil {
		t.Fatal(err)
	}
	if doc.Text() != "xabab" {
		t.Errorf("undo = %q, want xabab", doc.Text())
	}
}

func TestReplaceNotFound(t *testing.T) {
	h := NewHandler()
	ctx := newContext("abc")

	res := h.HandleAction(input.NewAction(ActionReplace).With("needle", "z").With("replacement", "y"), ctx)
	if res.Status != handler.StatusNoOp {
		t.Errorf("status = %v, want no-op", res.Status)
	}
	doc := ctx.Documents.Active()
	if doc.Text() != "abc" || doc.History().CanUndo() {
		t.Error("a missed replace must not change text or history")
	}
}
