package search

import (
	"fmt"

	"github.com/dshills/runpad/internal/dispatcher/execctx"
	"github.com/dshills/runpad/internal/dispatcher/handler"
	"github.com/dshills/runpad/internal/engine/buffer"
	"github.com/dshills/runpad/internal/input"
)

// Action names for search operations.
const (
	ActionFind    = "search.find"    // Args.Text, or "needle"
	ActionReplace = "search.replace" // "needle", "replacement"
)

// Handler implements namespace-based search handling.
type Handler struct{}

// NewHandler creates a new search handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Namespace returns the search namespace.
func (h *Handler) Namespace() string {
	return "search"
}

// CanHandle returns true if this handler can process the action.
func (h *Handler) CanHandle(actionName string) bool {
	return actionName == ActionFind || actionName == ActionReplace
}

// HandleAction processes a search action.
func (h *Handler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if ctx.Documents == nil {
		return handler.Error(execctx.ErrMissingDocuments)
	}

	switch action.Name {
	case ActionFind:
		return h.find(action, ctx)
	case ActionReplace:
		return h.replace(action, ctx)
	default:
		return handler.Errorf("unknown search action: %s", action.Name)
	}
}

func (h *Handler) find(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	needle := needleArg(action)
	if needle == "" {
		return handler.NoOpWithMessage("search: text required")
	}

	doc := ctx.Documents.Active()
	m, err := doc.Find(needle)
	if err != nil {
		return handler.FromError(err).WithMessage(fmt.Sprintf("Not found: %q", needle))
	}

	p := doc.Buffer().OffsetToPoint(buffer.ByteOffset(m.Start))
	return handler.SuccessWithMessage(fmt.Sprintf("Found at %d:%d", p.Line+1, p.Column+1)).
		WithData("start", m.Start).
		WithData("end", m.End)
}

func (h *Handler) replace(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	needle := needleArg(action)
	if needle == "" {
		return handler.NoOpWithMessage("replace: text required")
	}
	replacement := action.Args.GetString("replacement")

	m, err := ctx.Documents.Active().ReplaceFirst(needle, replacement)
	if err != nil {
		return handler.FromError(err).WithMessage(fmt.Sprintf("Not found: %q", needle))
	}
	return handler.SuccessWithMessage(fmt.Sprintf("Replaced %q with %q", needle, replacement)).
		WithData("start", m.Start).
		WithRedraw()
}

func needleArg(action input.Action) string {
	if s := action.Args.GetString("needle"); s != "" {
		return s
	}
	return action.Args.Text
}
