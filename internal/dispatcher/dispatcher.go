package dispatcher

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/dshills/runpad/internal/dispatcher/execctx"
	"github.com/dshills/runpad/internal/dispatcher/handler"
	"github.com/dshills/runpad/internal/document"
	"github.com/dshills/runpad/internal/input"
	"github.com/dshills/runpad/internal/integration/process"
)

// Logger is the logging surface the dispatcher needs.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Dispatcher routes actions to handlers and coordinates execution.
type Dispatcher struct {
	mu sync.RWMutex

	registry *Registry
	config   Config
	metrics  *Metrics
	logger   Logger

	// Editor collaborators copied into every execution context.
	documents *document.Set
	clipboard document.Clipboard
	store     document.Store
	runner    process.Runner
	view      execctx.ViewInterface
	console   execctx.ConsoleInterface
}

// New creates a new dispatcher with the given configuration.
func New(config Config) *Dispatcher {
	d := &Dispatcher{
		registry: NewRegistry(),
		config:   config,
	}
	if config.EnableMetrics {
		d.metrics = NewMetrics()
	}
	return d
}

// NewWithDefaults creates a new dispatcher with default configuration.
func NewWithDefaults() *Dispatcher {
	return New(DefaultConfig())
}

// SetLogger sets the logger for dispatch failures.
func (d *Dispatcher) SetLogger(l Logger) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.logger = l
}

// SetDocuments sets the document set.
func (d *Dispatcher) SetDocuments(docs *document.Set) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.documents = docs
}

// SetClipboard sets the clipboard.
func (d *Dispatcher) SetClipboard(cb document.Clipboard) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.clipboard = cb
}

// SetStore sets the file store.
func (d *Dispatcher) SetStore(s document.Store) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.store = s
}

// SetRunner sets the execution runner.
func (d *Dispatcher) SetRunner(r process.Runner) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.runner = r
}

// SetView sets the view.
func (d *Dispatcher) SetView(v execctx.ViewInterface) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.view = v
}

// SetConsole sets the console receiving run output.
func (d *Dispatcher) SetConsole(c execctx.ConsoleInterface) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.console = c
}

// Documents returns the document set.
func (d *Dispatcher) Documents() *document.Set {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.documents
}

// Dispatch executes an action synchronously with a background context.
func (d *Dispatcher) Dispatch(action input.Action) handler.Result {
	return d.DispatchContext(context.Background(), action)
}

// DispatchContext executes an action synchronously.
// ctx bounds blocking handlers such as run.execute.
func (d *Dispatcher) DispatchContext(ctx context.Context, action input.Action) handler.Result {
	start := time.Now()

	var result handler.Result
	if action.Name == "" {
		result = handler.Error(ErrInvalidAction)
	} else if h := d.registry.Lookup(action.Name); h == nil {
		result = handler.Error(fmt.Errorf("%w: %s", ErrNoHandler, action.Name))
	} else {
		if d.config.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, d.config.Timeout)
			defer cancel()
		}
		ectx := d.buildContext(ctx)
		if d.config.RecoverFromPanic {
			result = d.executeWithRecovery(h, action, ectx)
		} else {
			result = h.Handle(action, ectx)
		}
	}

	if result.Message == "" && result.Error != nil {
		result.Message = result.Error.Error()
	}
	d.logResult(action, result)

	if d.metrics != nil {
		d.metrics.RecordDispatch(action.Name, time.Since(start), result.Status)
	}
	return result
}

// executeWithRecovery executes a handler with panic recovery.
func (d *Dispatcher) executeWithRecovery(h handler.Handler, action input.Action, ctx *execctx.ExecutionContext) (result handler.Result) {
	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, 4096)
			n := runtime.Stack(stack, false)

			result = handler.Error(fmt.Errorf("%w in %s: %v", ErrPanic, action.Name, r))
			d.log().Error("handler panic", "action", action.Name, "panic", r, "stack", string(stack[:n]))

			if d.metrics != nil {
				d.metrics.RecordPanic(action.Name)
			}
		}
	}()

	return h.Handle(action, ctx)
}

// buildContext snapshots the collaborators into a fresh execution context.
func (d *Dispatcher) buildContext(ctx context.Context) *execctx.ExecutionContext {
	d.mu.RLock()
	defer d.mu.RUnlock()

	ectx := execctx.New(d.documents)
	ectx.Context = ctx
	ectx.Clipboard = d.clipboard
	ectx.Store = d.store
	ectx.Runner = d.runner
	ectx.View = d.view
	ectx.Console = d.console
	return ectx
}

func (d *Dispatcher) logResult(action input.Action, result handler.Result) {
	l := d.log()
	switch result.Status {
	case handler.StatusError:
		l.Error("dispatch failed", "action", action.Name, "error", result.Error)
	case handler.StatusNoOp:
		l.Debug("dispatch no-op", "action", action.Name, "message", result.Message)
	case handler.StatusCancelled:
		l.Warn("dispatch cancelled", "action", action.Name, "message", result.Message)
	default:
		l.Debug("dispatched", "action", action.Name, "status", result.Status.String())
	}
}

func (d *Dispatcher) log() Logger {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.logger == nil {
		return nopLogger{}
	}
	return d.logger
}

// RegisterHandler registers a handler for an exact action name.
func (d *Dispatcher) RegisterHandler(actionName string, h handler.Handler) {
	d.registry.Register(actionName, h)
}

// RegisterHandlerFunc registers a handler function for an action name.
func (d *Dispatcher) RegisterHandlerFunc(actionName string, fn handler.Func) {
	d.registry.Register(actionName, &handler.SimpleHandler{ActionName: actionName, Fn: fn})
}

// RegisterNamespace registers a namespace handler.
func (d *Dispatcher) RegisterNamespace(h handler.NamespaceHandler) {
	d.registry.RegisterNamespace(h)
}

// Registry returns the handler registry.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Metrics returns the metrics collector (nil if disabled).
func (d *Dispatcher) Metrics() *Metrics {
	return d.metrics
}

// Config returns the dispatcher configuration.
func (d *Dispatcher) Config() Config {
	return d.config
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}
