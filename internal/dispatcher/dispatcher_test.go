package dispatcher

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dshills/runpad/internal/dispatcher/execctx"
	"github.com/dshills/runpad/internal/dispatcher/handler"
	"github.com/dshills/runpad/internal/document"
	"github.com/dshills/runpad/internal/input"
)

type recordingLogger struct {
	errors []string
}

func (l *recordingLogger) Debug(string, ...any) {}
func (l *recordingLogger) Warn(string, ...any)  {}
func (l *recordingLogger) Error(msg string, _ ...any) {
	l.errors = append(l.errors, msg)
}

func TestDispatchExactHandler(t *testing.T) {
	d := NewWithDefaults()
	d.SetDocuments(document.NewSet())

	var got *execctx.ExecutionContext
	d.RegisterHandlerFunc("test.action", func(a input.Action, ctx *execctx.ExecutionContext) handler.Result {
		got = ctx
		return handler.SuccessWithMessage("done")
	})

	res := d.Dispatch(input.NewAction("test.action"))
	if !res.IsOK() || res.Message != "done" {
		t.Fatalf("result = %v %q", res.Status, res.Message)
	}
	if got == nil || got.Documents != d.Documents() {
		t.Error("handler did not receive the document set")
	}
}

func TestDispatchNamespace(t *testing.T) {
	d := NewWithDefaults()
	ns := handler.NewBaseNamespaceHandler("demo")
	ns.Register("demo.ping", func(input.Action, *execctx.ExecutionContext) handler.Result {
		return handler.SuccessWithMessage("pong")
	})
	d.RegisterNamespace(ns)

	if res := d.Dispatch(input.NewAction("demo.ping")); res.Message != "pong" {
		t.Errorf("demo.ping = %q", res.Message)
	}

	res := d.Dispatch(input.NewAction("demo.missing"))
	if !res.IsError() || !errors.Is(res.Error, ErrNoHandler) {
		t.Errorf("demo.missing: status = %v, err = %v", res.Status, res.Error)
	}
}

func TestDispatchInvalid(t *testing.T) {
	d := NewWithDefaults()

	res := d.Dispatch(input.Action{})
	if !errors.Is(res.Error, ErrInvalidAction) {
		t.Errorf("empty name err = %v", res.Error)
	}
	if res.Message == "" {
		t.Error("error results should carry a message")
	}
}

func TestDispatchRecoversPanic(t *testing.T) {
	d := New(DefaultConfig().WithMetrics())
	log := &recordingLogger{}
	d.SetLogger(log)
	d.RegisterHandlerFunc("test.panic", func(input.Action, *execctx.ExecutionContext) handler.Result {
		panic("boom")
	})

	res := d.Dispatch(input.NewAction("test.panic"))
	if !res.IsError() || !errors.Is(res.Error, ErrPanic) {
		t.Fatalf("status = %v, err = %v", res.Status, res.Error)
	}
	if d.Metrics().TotalPanics() != 1 || d.Metrics().TotalErrors() != 1 {
		t.Errorf("panics = %d, errors = %d", d.Metrics().TotalPanics(), d.Metrics().TotalErrors())
	}
	if len(log.errors) != 2 {
		t.Errorf("logged %d errors, want panic and dispatch failure", len(log.errors))
	}
}

func TestDispatchContextPassesContext(t *testing.T) {
	d := NewWithDefaults()
	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "v")

	d.RegisterHandlerFunc("test.ctx", func(_ input.Action, ectx *execctx.ExecutionContext) handler.Result {
		if ectx.Ctx().Value(key{}) != "v" {
			return handler.Errorf("context not propagated")
		}
		return handler.Success()
	})

	if res := d.DispatchContext(ctx, input.NewAction("test.ctx")); !res.IsOK() {
		t.Errorf("status = %v: %v", res.Status, res.Error)
	}
}

func TestDispatchFreshContextEachTime(t *testing.T) {
	d := NewWithDefaults()
	d.RegisterHandlerFunc("test.data", func(_ input.Action, ctx *execctx.ExecutionContext) handler.Result {
		if _, ok := ctx.GetData("seen"); ok {
			return handler.Errorf("data leaked between dispatches")
		}
		ctx.SetData("seen", true)
		return handler.Success()
	})

	for i := 0; i < 2; i++ {
		if res := d.Dispatch(input.NewAction("test.data")); !res.IsOK() {
			t.Fatalf("dispatch %d: %v", i, res.Error)
		}
	}
}

func TestMetricsRecordStatuses(t *testing.T) {
	d := New(DefaultConfig().WithMetrics())
	d.RegisterHandlerFunc("test.noop", func(input.Action, *execctx.ExecutionContext) handler.Result {
		return handler.NoOp()
	})

	d.Dispatch(input.NewAction("test.noop"))
	d.Dispatch(input.NewAction("test.noop"))
	d.Dispatch(input.NewAction("test.unknown"))

	m := d.Metrics()
	if m.TotalDispatches() != 3 || m.TotalErrors() != 1 {
		t.Errorf("dispatches = %d, errors = %d", m.TotalDispatches(), m.TotalErrors())
	}
	stats := m.ActionStats("test.noop")
	if stats == nil || stats.NoOpCount != 2 {
		t.Fatalf("stats = %+v", stats)
	}
	top := m.TopActions(1)
	if len(top) != 1 || top[0].Name != "test.noop" {
		t.Errorf("top = %+v", top)
	}

	m.Reset()
	if m.TotalDispatches() != 0 || m.ActionStats("test.noop") != nil {
		t.Error("Reset should clear everything")
	}
}

func TestMetricsDisabledByDefault(t *testing.T) {
	if NewWithDefaults().Metrics() != nil {
		t.Error("metrics should be nil unless enabled")
	}
}

func TestDispatchTimeout(t *testing.T) {
	d := New(DefaultConfig().WithTimeout(10 * time.Millisecond))

	d.RegisterHandlerFunc("test.wait", func(a input.Action, ctx *execctx.ExecutionContext) handler.Result {
		<-ctx.Ctx().Done()
		return handler.FromError(ctx.Ctx().Err())
	})

	res := d.Dispatch(input.NewAction("test.wait"))
	if res.Status != handler.StatusCancelled {
		t.Errorf("status = %v, want cancelled", res.Status)
	}
}

func TestDispatchWithoutPanicRecovery(t *testing.T) {
	d := New(DefaultConfig().WithPanicRecovery(false))
	d.RegisterHandlerFunc("test.panic", func(input.Action, *execctx.ExecutionContext) handler.Result {
		panic("boom")
	})

	defer func() {
		if r := recover(); r != "boom" {
			t.Errorf("recovered %v, want the handler panic", r)
		}
	}()
	d.Dispatch(input.NewAction("test.panic"))
	t.Error("panic should propagate")
}
