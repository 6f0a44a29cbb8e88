// Package dispatcher routes editor actions to handlers.
//
// Actions arrive from the shell or configuration as input.Action values
// named "namespace.verb". The Registry resolves a name to a handler,
// first by exact registration and then by namespace. Handlers receive an
// ExecutionContext holding the document set and the collaborators they may
// use (store, clipboard, runner, view, console).
//
// Every dispatch produces a handler.Result. Errors returned by the editing
// engine become StatusError or StatusNoOp results, and handler panics are
// recovered, so a failed command never terminates the editor.
//
// # Usage
//
//	d := dispatcher.NewWithDefaults()
//	d.SetDocuments(document.NewSet())
//	d.SetStore(document.FileStore{})
//	d.RegisterNamespace(file.NewHandler())
//
//	result := d.Dispatch(input.NewAction("file.new"))
//	fmt.Println(result.Message)
package dispatcher
