// Package app wires the runpad components together: configuration,
// logging, the document set, the display, the execution runner and the
// dispatcher that routes commands to them.
package app

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/runpad/internal/config"
	"github.com/dshills/runpad/internal/config/notify"
	"github.com/dshills/runpad/internal/dispatcher"
	"github.com/dshills/runpad/internal/dispatcher/handler"
	runhandler "github.com/dshills/runpad/internal/dispatcher/handlers/run"
	"github.com/dshills/runpad/internal/document"
	"github.com/dshills/runpad/internal/input"
	"github.com/dshills/runpad/internal/integration/process"
)

// DefaultShutdownTimeout bounds how long Shutdown waits for running programs.
const DefaultShutdownTimeout = 2 * time.Second

// Application is the central coordinator for all runpad components.
//
// Dispatches and configuration changes are serialized by an internal mutex;
// the editing engine itself is single-threaded.
type Application struct {
	mu sync.Mutex

	config *config.Config
	logger *Logger

	documents  *document.Set
	display    *Display
	console    *Console
	dispatcher *dispatcher.Dispatcher

	store     document.Store
	clipboard document.Clipboard
	runner    process.Runner
	interp    *process.Interpreter // nil when Options.Runner is set

	// supervisor tracks every interpreter run, including runs still on an
	// interpreter replaced by a configuration change.
	supervisor *process.Supervisor

	subs    []*notify.Subscription
	running atomic.Bool

	opts Options
}

// Options configures the application.
type Options struct {
	// ConfigPath is the path to the configuration file. Empty uses
	// defaults and environment overrides only.
	ConfigPath string

	// Files are opened on startup, each in its own tab.
	Files []string

	// LogLevel overrides logging.level from the configuration.
	LogLevel string

	// LogOutput receives log lines. Defaults to os.Stderr.
	LogOutput io.Writer

	// WatchConfig reloads the configuration when its file changes.
	WatchConfig bool

	// SystemClipboard uses the desktop clipboard when available.
	SystemClipboard bool

	// Runner replaces the configured interpreter.
	Runner process.Runner

	// Store replaces the filesystem store.
	Store document.Store
}

// New creates an Application with the given options.
func New(opts Options) (*Application, error) {
	app := &Application{opts: opts}

	if err := app.bootstrap(); err != nil {
		return nil, err
	}
	return app, nil
}

// bootstrap initializes all components in dependency order.
func (app *Application) bootstrap() error {
	// 1. Config
	app.config = config.New(app.opts.ConfigPath)
	if err := app.config.Reload(); err != nil {
		return &InitError{Component: "config", Err: err}
	}
	settings := app.config.Settings()

	// 2. Logging
	level := settings.Logging.Level
	if app.opts.LogLevel != "" {
		level = app.opts.LogLevel
	}
	cfg := DefaultLoggerConfig()
	cfg.Level = ParseLogLevel(level)
	if app.opts.LogOutput != nil {
		cfg.Output = app.opts.LogOutput
	}
	app.logger = NewLogger(cfg)

	// 3. Documents
	app.store = app.opts.Store
	if app.store == nil {
		app.store = document.FileStore{}
	}
	app.clipboard = document.NewClipboard(app.opts.SystemClipboard)
	app.documents = document.NewSet(documentOptions(settings.Editor)...)
	app.openFiles(app.opts.Files)

	// 4. Runner
	runLog := app.logger.WithComponent("runner")
	app.supervisor = process.NewSupervisor(process.WithProcessExitCallback(func(p *process.Process) {
		runLog.Debug("process exited", "id", p.ID, "pid", p.PID(), "state", p.State(), "exit", p.ExitCode())
	}))
	app.runner = app.opts.Runner
	if app.runner == nil {
		app.interp = app.newInterpreter(settings.Run)
		app.runner = app.interp
	}

	// 5. Display and console
	app.display = NewDisplay(app.documents, settings)
	app.console = NewConsole()

	// 6. Dispatcher
	app.dispatcher = dispatcher.New(dispatcher.DefaultConfig().WithMetrics())
	app.dispatcher.SetLogger(app.logger.WithComponent("dispatcher"))
	app.dispatcher.SetDocuments(app.documents)
	app.dispatcher.SetStore(app.store)
	app.dispatcher.SetClipboard(app.clipboard)
	app.dispatcher.SetRunner(app.runner)
	app.dispatcher.SetView(app.display)
	app.dispatcher.SetConsole(app.console)
	RegisterHandlers(app.dispatcher)

	// 7. Config subscriptions and live reload
	app.subscribe()
	if app.opts.WatchConfig && app.opts.ConfigPath != "" {
		log := app.logger.WithComponent("config")
		if err := app.config.Watch(func(err error) {
			log.Warn("reload failed, keeping previous settings", "error", err)
		}); err != nil {
			app.unsubscribe()
			_ = app.config.Close()
			return &InitError{Component: "config watcher", Err: err}
		}
	}

	app.logger.Debug("application started", "config", app.opts.ConfigPath, "documents", app.documents.Len())
	return nil
}

// openFiles loads each path into a new tab. Files that cannot be read are
// logged and skipped. The initial untitled tab is dropped once any file opens.
func (app *Application) openFiles(paths []string) {
	log := app.logger.WithComponent("documents")
	opened := 0
	for _, path := range paths {
		if _, err := app.documents.Load(app.store, path); err != nil {
			log.Warn("open failed", "path", path, "error", err)
			continue
		}
		opened++
	}
	if opened > 0 {
		_ = app.documents.Close(0)
	}
}

func (app *Application) newInterpreter(s config.RunSettings) *process.Interpreter {
	return process.NewInterpreter(s.Interpreter, s.Args,
		process.WithTimeout(s.Timeout.Std()),
		process.WithSupervisor(app.supervisor),
	)
}

func documentOptions(s config.EditorSettings) []document.Option {
	return []document.Option{
		document.WithTabWidth(s.TabWidth),
		document.WithHistoryLimit(s.HistoryLimit),
	}
}

// subscribe applies configuration changes to the running components.
func (app *Application) subscribe() {
	n := app.config.Notifier()
	log := app.logger.WithComponent("config")

	app.subs = append(app.subs,
		n.SubscribePath("editor", func(ch notify.Change) {
			s := app.config.Settings()
			app.mu.Lock()
			defer app.mu.Unlock()
			app.documents.SetOptions(documentOptions(s.Editor)...)
			for _, doc := range app.documents.Documents() {
				doc.Buffer().SetTabWidth(s.Editor.TabWidth)
				doc.History().SetMaxEntries(s.Editor.HistoryLimit)
			}
			app.display.Apply(s)
		}),
		n.SubscribePath("view", func(ch notify.Change) {
			s := app.config.Settings()
			app.mu.Lock()
			defer app.mu.Unlock()
			app.display.Apply(s)
		}),
		n.SubscribePath("run", func(ch notify.Change) {
			run, ok := ch.NewValue.(config.RunSettings)
			if !ok || app.opts.Runner != nil {
				return
			}
			app.mu.Lock()
			defer app.mu.Unlock()
			app.interp = app.newInterpreter(run)
			app.runner = app.interp
			app.dispatcher.SetRunner(app.runner)
		}),
		n.SubscribePath("logging", func(ch notify.Change) {
			if l, ok := ch.NewValue.(config.LoggingSettings); ok && app.opts.LogLevel == "" {
				app.logger.SetLevel(ParseLogLevel(l.Level))
			}
		}),
		n.Subscribe(func(ch notify.Change) {
			if ch.Type == notify.ChangeReload {
				log.Info("settings applied", "source", ch.Source)
			}
		}),
	)
}

func (app *Application) unsubscribe() {
	for _, s := range app.subs {
		s.Unsubscribe()
	}
	app.subs = nil
}

// Dispatch executes an action synchronously.
func (app *Application) Dispatch(action input.Action) handler.Result {
	return app.DispatchContext(context.Background(), action)
}

// DispatchContext executes an action synchronously. ctx bounds run.execute.
func (app *Application) DispatchContext(ctx context.Context, action input.Action) handler.Result {
	app.mu.Lock()
	defer app.mu.Unlock()

	result := app.dispatcher.DispatchContext(ctx, action)
	app.display.Refresh()
	return result
}

// Execute parses a command line and dispatches it.
func (app *Application) Execute(ctx context.Context, line string) (handler.Result, error) {
	action, err := input.Parse(line)
	if err != nil {
		return handler.Result{}, err
	}
	return app.DispatchContext(ctx, action), nil
}

// RunOutcome is a finished asynchronous run.
type RunOutcome struct {
	Label  string
	Result process.Result
	Err    error
}

// RunAsync runs a snapshot of the active document on a separate goroutine.
// The outcome is delivered once on the returned channel; pass it to
// CompleteRun on the caller's goroutine to record it.
func (app *Application) RunAsync(ctx context.Context) (<-chan RunOutcome, error) {
	if !app.running.CompareAndSwap(false, true) {
		return nil, ErrRunInProgress
	}

	app.mu.Lock()
	doc := app.documents.Active()
	label, source, runner := doc.Label(), doc.Text(), app.runner
	app.mu.Unlock()

	app.logger.Debug("run started", "document", label)
	ch := make(chan RunOutcome, 1)
	go func() {
		defer close(ch)
		res, err := runner.Run(ctx, source)
		app.running.Store(false)
		ch <- RunOutcome{Label: label, Result: res, Err: err}
	}()
	return ch, nil
}

// CompleteRun appends an asynchronous run to the console and converts it
// into a dispatch result.
func (app *Application) CompleteRun(o RunOutcome) handler.Result {
	app.console.AppendRun(o.Result, o.Err)

	result := runhandler.Outcome(o.Label, o.Result, o.Err)
	log := app.logger.WithComponent("runner")
	switch result.Status {
	case handler.StatusOK:
		log.Info("run finished", "id", o.Result.ID, "document", o.Label, "duration", o.Result.Duration)
	case handler.StatusCancelled:
		log.Warn("run cancelled", "id", o.Result.ID, "document", o.Label)
	default:
		log.Error("run failed", "id", o.Result.ID, "document", o.Label, "error", result.Error)
	}
	return result
}

// Running reports whether an asynchronous run is pending.
func (app *Application) Running() bool {
	return app.running.Load()
}

// Shutdown stops watching the configuration and kills running programs,
// waiting up to timeout for them to exit.
func (app *Application) Shutdown(timeout time.Duration) error {
	app.unsubscribe()

	var errList []error
	if err := app.config.Close(); err != nil {
		errList = append(errList, &ComponentError{Component: "config", Action: "close", Err: err})
	}

	if !app.supervisor.Shutdown(timeout) {
		errList = append(errList, &ComponentError{Component: "runner", Action: "shutdown", Err: ErrShutdownTimeout})
	}

	app.logger.Debug("application stopped")
	return errors.Join(errList...)
}

// Config returns the configuration.
func (app *Application) Config() *config.Config { return app.config }

// Documents returns the document set.
func (app *Application) Documents() *document.Set { return app.documents }

// Display returns the display state.
func (app *Application) Display() *Display { return app.display }

// Console returns the run console.
func (app *Application) Console() *Console { return app.console }

// Dispatcher returns the dispatcher.
func (app *Application) Dispatcher() *dispatcher.Dispatcher { return app.dispatcher }

// Render returns the visible rows of the active document under a lock.
func (app *Application) Render() []string {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.display.Render()
}
