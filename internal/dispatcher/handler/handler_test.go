package handler

import (
	"testing"

	"github.com/dshills/runpad/internal/dispatcher/execctx"
	"github.com/dshills/runpad/internal/input"
)

func TestSimpleHandler(t *testing.T) {
	h := &SimpleHandler{ActionName: "a.b", Fn: func(input.Action, *execctx.ExecutionContext) Result {
		return SuccessWithMessage("ran")
	}, Prio: 3}

	if !h.CanHandle("a.b") || h.CanHandle("a.c") {
		t.Error("CanHandle should match the exact name")
	}
	if h.Priority() != 3 {
		t.Errorf("Priority() = %d", h.Priority())
	}
	if r := h.Handle(input.NewAction("a.b"), nil); r.Message != "ran" {
		t.Errorf("Handle = %q", r.Message)
	}

	empty := &SimpleHandler{ActionName: "x"}
	if r := empty.Handle(input.NewAction("x"), nil); !r.IsError() {
		t.Error("nil Fn should produce an error result")
	}
}

func TestBaseNamespaceHandler(t *testing.T) {
	h := NewBaseNamespaceHandler("ns")
	h.Register("ns.one", func(input.Action, *execctx.ExecutionContext) Result { return Success() })
	h.Register("ns.two", func(input.Action, *execctx.ExecutionContext) Result { return NoOp() })

	if h.Namespace() != "ns" {
		t.Errorf("Namespace() = %q", h.Namespace())
	}
	actions := h.Actions()
	if len(actions) != 2 || actions[0] != "ns.one" || actions[1] != "ns.two" {
		t.Errorf("Actions() = %v", actions)
	}
	if r := h.HandleAction(input.NewAction("ns.two"), nil); r.Status != StatusNoOp {
		t.Errorf("ns.two status = %v", r.Status)
	}
	if r := h.HandleAction(input.NewAction("ns.three"), nil); !r.IsError() {
		t.Error("unregistered action should fail")
	}

	adapted := NewNamespaceAdapter(h)
	if !adapted.CanHandle("ns.one") || adapted.Priority() != 0 {
		t.Error("adapter should forward CanHandle")
	}
}
