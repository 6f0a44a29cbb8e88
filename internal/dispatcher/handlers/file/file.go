package file

import (
	"fmt"

	"github.com/dshills/runpad/internal/dispatcher/execctx"
	"github.com/dshills/runpad/internal/dispatcher/handler"
	"github.com/dshills/runpad/internal/input"
)

// Action names for file operations.
const (
	ActionNew    = "file.new"    // new untitled document
	ActionOpen   = "file.open"   // load a file into a new tab
	ActionSave   = "file.save"   // write the active document to its path
	ActionSaveAs = "file.saveAs" // write the active document to a new path
	ActionClose  = "file.close"  // close the active or indexed tab
)

// Handler implements namespace-based file handling.
type Handler struct{}

// NewHandler creates a new file handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Namespace returns the file namespace.
func (h *Handler) Namespace() string {
	return "file"
}

// CanHandle returns true if this handler can process the action.
func (h *Handler) CanHandle(actionName string) bool {
	switch actionName {
	case ActionNew, ActionOpen, ActionSave, ActionSaveAs, ActionClose:
		return true
	}
	return false
}

// HandleAction processes a file action.
func (h *Handler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if ctx.Documents == nil {
		return handler.Error(execctx.ErrMissingDocuments)
	}

	switch action.Name {
	case ActionNew:
		return h.newFile(ctx)
	case ActionOpen:
		return h.open(action, ctx)
	case ActionSave:
		return h.save(ctx)
	case ActionSaveAs:
		return h.saveAs(action, ctx)
	case ActionClose:
		return h.close(action, ctx)
	default:
		return handler.Errorf("unknown file action: %s", action.Name)
	}
}

func (h *Handler) newFile(ctx *execctx.ExecutionContext) handler.Result {
	i := ctx.Documents.Create()
	doc := ctx.Documents.Active()
	return handler.SuccessWithMessage("New file: "+doc.Label()).
		WithData("index", i).
		WithRedraw()
}

// open loads a file into a new tab, even when the path is already open.
func (h *Handler) open(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.RequireStore(); err != nil {
		return handler.Error(err)
	}
	path := action.Args.GetString("path")
	if path == "" {
		return handler.Errorf("file.open: path required")
	}

	i, err := ctx.Documents.Load(ctx.Store, path)
	if err != nil {
		return handler.Error(err)
	}
	return handler.SuccessWithMessage("Opened: "+ctx.Documents.Active().Label()).
		WithData("index", i).
		WithRedraw()
}

func (h *Handler) save(ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.RequireStore(); err != nil {
		return handler.Error(err)
	}
	doc := ctx.Documents.Active()
	if err := doc.Save(ctx.Store); err != nil {
		return handler.Error(err)
	}
	return handler.SuccessWithMessage("Saved: " + doc.Path)
}

func (h *Handler) saveAs(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.RequireStore(); err != nil {
		return handler.Error(err)
	}
	path := action.Args.GetString("path")
	if path == "" {
		return handler.Errorf("file.saveAs: path required")
	}
	doc := ctx.Documents.Active()
	if err := doc.SaveAs(ctx.Store, path); err != nil {
		return handler.Error(err)
	}
	return handler.SuccessWithMessage("Saved: " + doc.Path).WithRedraw()
}

func (h *Handler) close(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	index := ctx.Documents.ActiveIndex()
	if action.Args.Has("index") {
		index = action.Args.GetInt("index")
	}
	doc, err := ctx.Documents.At(index)
	if err != nil {
		return handler.FromError(err)
	}
	label := doc.Label()
	if err := ctx.Documents.Close(index); err != nil {
		return handler.FromError(err)
	}

	msg := "Closed: " + label
	if doc.Modified() {
		msg += " (unsaved changes discarded)"
	}
	return handler.SuccessWithMessage(msg).
		WithData("index", ctx.Documents.ActiveIndex()).
		WithRedraw()
}

// TabHandler implements the "tab" namespace.
type TabHandler struct {
	*handler.BaseNamespaceHandler
}

// ActionSelect switches the active tab.
const ActionSelect = "tab.select"

// NewTabHandler creates a tab handler.
func NewTabHandler() *TabHandler {
	h := &TabHandler{BaseNamespaceHandler: handler.NewBaseNamespaceHandler("tab")}
	h.Register(ActionSelect, selectTab)
	return h
}

func selectTab(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if ctx.Documents == nil {
		return handler.Error(execctx.ErrMissingDocuments)
	}
	if !action.Args.Has("index") {
		return handler.Errorf("tab.select: index required")
	}
	i := action.Args.GetInt("index")
	if i == ctx.Documents.ActiveIndex() {
		return handler.NoOpWithMessage(fmt.Sprintf("Tab %d already active", i))
	}
	if err := ctx.Documents.SetActive(i); err != nil {
		return handler.Error(err)
	}
	return handler.SuccessWithMessage(fmt.Sprintf("Tab %d: %s", i, ctx.Documents.Active().Label())).
		WithData("index", i).
		WithRedraw()
}

var (
	_ handler.NamespaceHandler = (*Handler)(nil)
	_ handler.NamespaceHandler = (*TabHandler)(nil)
)
