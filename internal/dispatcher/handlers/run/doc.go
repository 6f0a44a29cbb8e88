// Package run provides the handler that executes the active document.
//
// run.execute sends the document text to the context's process.Runner and
// blocks until the run finishes or the dispatch context is done. The
// captured output is appended to the console when one is wired.
package run
