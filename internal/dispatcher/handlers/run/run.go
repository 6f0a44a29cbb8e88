package run

import (
	"fmt"

	"github.com/dshills/runpad/internal/dispatcher/execctx"
	"github.com/dshills/runpad/internal/dispatcher/handler"
	"github.com/dshills/runpad/internal/errs"
	"github.com/dshills/runpad/internal/input"
	"github.com/dshills/runpad/internal/integration/process"
)

// ActionExecute runs the active document.
const ActionExecute = "run.execute"

// ErrExitStatus marks a run whose program exited non-zero.
var ErrExitStatus = fmt.Errorf("program failed: %w", errs.ErrExecution)

// Handler implements the "run" namespace.
type Handler struct {
	*handler.BaseNamespaceHandler
}

// NewHandler creates a run handler.
func NewHandler() *Handler {
	h := &Handler{BaseNamespaceHandler: handler.NewBaseNamespaceHandler("run")}
	h.Register(ActionExecute, execute)
	return h
}

func execute(_ input.Action, ctx *execctx.ExecutionContext) handler.Result {
	doc, err := ctx.ActiveDocument()
	if err != nil {
		return handler.Error(err)
	}
	if err := ctx.RequireRunner(); err != nil {
		return handler.Error(err)
	}

	res, err := ctx.Runner.Run(ctx.Ctx(), doc.Text())
	if ctx.Console != nil {
		ctx.Console.AppendRun(res, err)
	}
	return Outcome(doc.Label(), res, err)
}

// Outcome converts a finished run into a dispatch result.
func Outcome(label string, res process.Result, err error) handler.Result {
	var r handler.Result
	switch {
	case res.Cancelled:
		r = handler.CancelledWithMessage("Run cancelled: " + label)
		r.Error = err
	case err != nil:
		r = handler.Error(err).WithMessage("Run failed: " + err.Error())
	case !res.Succeeded:
		r = handler.Error(fmt.Errorf("%s exited with status %d: %w", label, res.ExitCode, ErrExitStatus)).
			WithMessage(fmt.Sprintf("Run failed: exit status %d", res.ExitCode))
	default:
		r = handler.SuccessWithMessage("Run finished: " + label)
	}
	return r.WithData("id", res.ID).
		WithData("output", res.Output).
		WithData("exitCode", res.ExitCode).
		WithData("succeeded", res.Succeeded)
}
