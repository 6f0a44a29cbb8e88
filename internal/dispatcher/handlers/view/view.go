package view

import (
	"fmt"

	"github.com/dshills/runpad/internal/dispatcher/execctx"
	"github.com/dshills/runpad/internal/dispatcher/handler"
	"github.com/dshills/runpad/internal/input"
)

// Action names for view operations.
const (
	ActionToggleLineNumbers = "view.toggleLineNumbers"
	ActionToggleWordWrap    = "view.toggleWordWrap"
	ActionSetFontSize       = "view.setFontSize" // "size"
	ActionSetTheme          = "view.setTheme"    // "name"
	ActionScroll            = "view.scroll"      // "rows", negative scrolls up
)

// Handler implements namespace-based view handling.
type Handler struct{}

// NewHandler creates a new view handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Namespace returns the view namespace.
func (h *Handler) Namespace() string {
	return "view"
}

// CanHandle returns true if this handler can process the action.
func (h *Handler) CanHandle(actionName string) bool {
	switch actionName {
	case ActionToggleLineNumbers, ActionToggleWordWrap, ActionSetFontSize,
		ActionSetTheme, ActionScroll:
		return true
	}
	return false
}

// HandleAction processes a view action.
func (h *Handler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.RequireView(); err != nil {
		return handler.Error(err)
	}

	switch action.Name {
	case ActionToggleLineNumbers:
		return onOff("Line numbers", ctx.View.ToggleLineNumbers())
	case ActionToggleWordWrap:
		return onOff("Word wrap", ctx.View.ToggleWordWrap())
	case ActionSetFontSize:
		return h.setFontSize(action, ctx)
	case ActionSetTheme:
		return h.setTheme(action, ctx)
	case ActionScroll:
		return h.scroll(action, ctx)
	default:
		return handler.Errorf("unknown view action: %s", action.Name)
	}
}

func onOff(what string, on bool) handler.Result {
	state := "off"
	if on {
		state = "on"
	}
	return handler.SuccessWithMessage(what + " " + state).
		WithData("enabled", on).
		WithRedraw()
}

func (h *Handler) setFontSize(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if !action.Args.Has("size") {
		return handler.Errorf("view.setFontSize: size required")
	}
	size := action.Args.GetInt("size")
	if err := ctx.View.SetFontSize(size); err != nil {
		return handler.Error(err)
	}
	return handler.SuccessWithMessage(fmt.Sprintf("Font size %d", size)).WithRedraw()
}

func (h *Handler) setTheme(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	name := action.Args.GetString("name")
	if name == "" {
		return handler.Errorf("view.setTheme: name required")
	}
	if err := ctx.View.SetTheme(name); err != nil {
		return handler.Error(err)
	}
	return handler.SuccessWithMessage("Theme " + name).WithRedraw()
}

func (h *Handler) scroll(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	rows := action.Args.GetInt("rows")
	moved := ctx.View.ScrollRows(rows)
	if moved == 0 {
		return handler.NoOpWithMessage("Already at the edge")
	}
	return handler.Success().WithData("moved", moved).WithRedraw()
}
