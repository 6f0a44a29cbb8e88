package app

import (
	"github.com/dshills/runpad/internal/dispatcher"
	"github.com/dshills/runpad/internal/dispatcher/handler"
	editorhandler "github.com/dshills/runpad/internal/dispatcher/handlers/editor"
	filehandler "github.com/dshills/runpad/internal/dispatcher/handlers/file"
	runhandler "github.com/dshills/runpad/internal/dispatcher/handlers/run"
	searchhandler "github.com/dshills/runpad/internal/dispatcher/handlers/search"
	viewhandler "github.com/dshills/runpad/internal/dispatcher/handlers/view"
)

// RegisterHandlers installs the file, tab, edit, search, view and run
// namespaces on d.
func RegisterHandlers(d *dispatcher.Dispatcher) {
	for _, h := range []handler.NamespaceHandler{
		filehandler.NewHandler(),
		filehandler.NewTabHandler(),
		editorhandler.NewHandler(),
		searchhandler.NewHandler(),
		viewhandler.NewHandler(),
		runhandler.NewHandler(),
	} {
		d.RegisterNamespace(h)
	}
}

// HandlerInfo describes one registered namespace.
type HandlerInfo struct {
	Namespace string
	Actions   []string // nil when the handler does not list its actions
}

// ListHandlers reports the registered namespaces in sorted order.
func (app *Application) ListHandlers() []HandlerInfo {
	if app.dispatcher == nil {
		return nil
	}
	reg := app.dispatcher.Registry()
	var infos []HandlerInfo
	for _, ns := range reg.Namespaces() {
		info := HandlerInfo{Namespace: ns}
		if lister, ok := reg.NamespaceHandler(ns).(interface{ Actions() []string }); ok {
			info.Actions = lister.Actions()
		}
		infos = append(infos, info)
	}
	return infos
}
