package editor

import (
	"fmt"

	"github.com/dshills/runpad/internal/dispatcher/execctx"
	"github.com/dshills/runpad/internal/dispatcher/handler"
	"github.com/dshills/runpad/internal/engine/buffer"
	"github.com/dshills/runpad/internal/input"
)

// Action names for editing operations.
const (
	ActionUndo       = "edit.undo"
	ActionRedo       = "edit.redo"
	ActionCut        = "edit.cut"
	ActionCopy       = "edit.copy"
	ActionPaste      = "edit.paste"
	ActionInsert     = "edit.insert"     // Args.Text at "offset", or at the cursor
	ActionDelete     = "edit.delete"     // ["start", "end")
	ActionSelect     = "edit.select"     // ["start", "end")
	ActionMoveCursor = "edit.moveCursor" // "line", optional "column"
)

// Handler implements the "edit" namespace.
type Handler struct {
	*handler.BaseNamespaceHandler
}

// NewHandler creates an editor handler.
func NewHandler() *Handler {
	h := &Handler{BaseNamespaceHandler: handler.NewBaseNamespaceHandler("edit")}
	h.Register(ActionUndo, withDocument(undo))
	h.Register(ActionRedo, withDocument(redo))
	h.Register(ActionCut, withClipboard(cut))
	h.Register(ActionCopy, withClipboard(copySelection))
	h.Register(ActionPaste, withClipboard(paste))
	h.Register(ActionInsert, withDocument(insert))
	h.Register(ActionDelete, withDocument(deleteRange))
	h.Register(ActionSelect, withDocument(selectRange))
	h.Register(ActionMoveCursor, withDocument(moveCursor))
	return h
}

func withDocument(fn handler.Func) handler.Func {
	return func(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
		if ctx.Documents == nil {
			return handler.Error(execctx.ErrMissingDocuments)
		}
		return fn(action, ctx)
	}
}

func withClipboard(fn handler.Func) handler.Func {
	return withDocument(func(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
		if err := ctx.RequireClipboard(); err != nil {
			return handler.Error(err)
		}
		return fn(action, ctx)
	})
}

func undo(_ input.Action, ctx *execctx.ExecutionContext) handler.Result {
	doc := ctx.Documents.Active()
	desc, _ := doc.History().PeekUndo()
	ok, err := doc.Undo()
	if err != nil {
		return handler.Error(err)
	}
	if !ok {
		return handler.NoOpWithMessage("Nothing to undo")
	}
	return handler.SuccessWithMessage("Undo: " + desc).WithRedraw()
}

func redo(_ input.Action, ctx *execctx.ExecutionContext) handler.Result {
	doc := ctx.Documents.Active()
	desc, _ := doc.History().PeekRedo()
	ok, err := doc.Redo()
	if err != nil {
		return handler.Error(err)
	}
	if !ok {
		return handler.NoOpWithMessage("Nothing to redo")
	}
	return handler.SuccessWithMessage("Redo: " + desc).WithRedraw()
}

func cut(_ input.Action, ctx *execctx.ExecutionContext) handler.Result {
	text, err := ctx.Documents.Active().Cut(ctx.Clipboard)
	if err != nil {
		return handler.FromError(err)
	}
	return handler.SuccessWithMessage(fmt.Sprintf("Cut %d bytes", len(text))).WithRedraw()
}

func copySelection(_ input.Action, ctx *execctx.ExecutionContext) handler.Result {
	text, err := ctx.Documents.Active().Copy(ctx.Clipboard)
	if err != nil {
		return handler.FromError(err)
	}
	return handler.SuccessWithMessage(fmt.Sprintf("Copied %d bytes", len(text)))
}

func paste(_ input.Action, ctx *execctx.ExecutionContext) handler.Result {
	text, err := ctx.Documents.Active().Paste(ctx.Clipboard)
	if err != nil {
		return handler.FromError(err)
	}
	return handler.SuccessWithMessage(fmt.Sprintf("Pasted %d bytes", len(text))).WithRedraw()
}

func insert(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	text := action.Args.Text
	if text == "" {
		return handler.NoOpWithMessage("Nothing to insert")
	}
	doc := ctx.Documents.Active()

	var err error
	if action.Args.Has("offset") {
		err = doc.Insert(buffer.ByteOffset(action.Args.GetInt("offset")), text)
	} else {
		err = doc.InsertAtCursor(text)
	}
	if err != nil {
		return handler.Error(err)
	}
	return handler.Success().WithRedraw()
}

func deleteRange(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	start, end, err := rangeArgs(action)
	if err != nil {
		return handler.Error(err)
	}
	removed, err := ctx.Documents.Active().Delete(start, end)
	if err != nil {
		return handler.Error(err)
	}
	if removed == "" {
		return handler.NoOp()
	}
	return handler.SuccessWithMessage(fmt.Sprintf("Deleted %d bytes", len(removed))).WithRedraw()
}

func selectRange(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	start, end, err := rangeArgs(action)
	if err != nil {
		return handler.Error(err)
	}
	if err := ctx.Documents.Active().Buffer().SetSelection(start, end); err != nil {
		return handler.Error(err)
	}
	return handler.Success()
}

func moveCursor(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if !action.Args.Has("line") {
		return handler.Errorf("edit.moveCursor: line required")
	}
	line := action.Args.GetInt("line")
	column := 1
	if action.Args.Has("column") {
		column = action.Args.GetInt("column")
	}
	if line < 1 || column < 1 {
		return handler.Errorf("edit.moveCursor: line and column start at 1, got %d:%d", line, column)
	}

	buf := ctx.Documents.Active().Buffer()
	p := buffer.Point{Line: uint32(line - 1), Column: uint32(column - 1)}
	if err := buf.SetCursor(p); err != nil {
		return handler.Error(err)
	}
	buf.ClearSelection()
	return handler.Success().WithData("offset", int(buf.CursorOffset()))
}

func rangeArgs(action input.Action) (start, end buffer.ByteOffset, err error) {
	if !action.Args.Has("start") || !action.Args.Has("end") {
		return 0, 0, fmt.Errorf("%s: start and end required", action.Name)
	}
	return buffer.ByteOffset(action.Args.GetInt("start")), buffer.ByteOffset(action.Args.GetInt("end")), nil
}
