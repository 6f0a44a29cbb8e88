// Package process runs document text in an external interpreter.
//
// A Runner takes the full source text of a document and returns the
// interpreter's combined standard output and standard error, in the order
// the process wrote them, plus whether the process exited cleanly.
//
//	in := process.NewInterpreter("python3", []string{"-c"})
//	res, err := in.Run(ctx, "print('hello')")
//	// res.Output == "hello\n", res.Succeeded == true
//
// # Isolation
//
// The child receives only the source text as its final argument. It shares
// no state with the editor; its output is the only thing returned.
//
// # Cancellation
//
// Cancelling the context, or exceeding the interpreter's timeout, kills the
// process. Partial output is discarded and the run reports failure with
// ErrCancelled.
//
// # Supervisor
//
// Runs are started through a Supervisor, which tracks live processes so
// they can be killed at shutdown. Supervisor and Process are safe for
// concurrent use.
package process
