package process

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/runpad/internal/errs"
)

// Execution errors. Both match errs.ErrExecution.
var (
	// ErrStart is returned when the interpreter cannot be launched.
	ErrStart = fmt.Errorf("interpreter start: %w", errs.ErrExecution)

	// ErrCancelled is returned when a run is cancelled or times out.
	ErrCancelled = fmt.Errorf("run cancelled: %w", errs.ErrExecution)
)

// Result is the outcome of one run.
type Result struct {
	// ID identifies the run in logs.
	ID string

	// Output is stdout and stderr merged in emission order.
	Output string

	// Succeeded is true when the process exited with status 0.
	Succeeded bool

	// ExitCode is the process exit status, or -1 when it never exited normally.
	ExitCode int

	// Cancelled is true when the run was killed by cancellation or timeout.
	Cancelled bool

	Duration time.Duration
}

// Runner executes source text.
type Runner interface {
	Run(ctx context.Context, source string) (Result, error)
}

// Interpreter runs source as "<Command> <Args...> <source>".
type Interpreter struct {
	// Command is the interpreter executable.
	Command string

	// Args are passed before the source text.
	Args []string

	// Env is the child environment. Nil inherits the editor's environment.
	Env []string

	// Dir is the working directory. Empty uses the editor's.
	Dir string

	// Timeout bounds each run. Zero waits indefinitely.
	Timeout time.Duration

	supervisor *Supervisor
}

// InterpreterOption configures an Interpreter.
type InterpreterOption func(*Interpreter)

// WithTimeout bounds every run.
func WithTimeout(d time.Duration) InterpreterOption {
	return func(in *Interpreter) {
		in.Timeout = d
	}
}

// WithEnv sets the child environment.
func WithEnv(env []string) InterpreterOption {
	return func(in *Interpreter) {
		in.Env = env
	}
}

// WithDir sets the working directory.
func WithDir(dir string) InterpreterOption {
	return func(in *Interpreter) {
		in.Dir = dir
	}
}

// WithSupervisor tracks runs with s instead of a private supervisor.
func WithSupervisor(s *Supervisor) InterpreterOption {
	return func(in *Interpreter) {
		in.supervisor = s
	}
}

// NewInterpreter creates an interpreter runner.
func NewInterpreter(command string, args []string, opts ...InterpreterOption) *Interpreter {
	in := &Interpreter{
		Command: command,
		Args:    append([]string(nil), args...),
	}
	for _, opt := range opts {
		opt(in)
	}
	if in.supervisor == nil {
		in.supervisor = NewSupervisor()
	}
	return in
}

// Supervisor returns the supervisor tracking this interpreter's runs.
func (in *Interpreter) Supervisor() *Supervisor {
	return in.supervisor
}

// Run launches the interpreter on source and waits for it to exit.
//
// A non-zero exit is not an error: the result reports Succeeded false with
// the captured output. An error is returned only when the interpreter could
// not start (ErrStart) or the run was cancelled (ErrCancelled).
func (in *Interpreter) Run(ctx context.Context, source string) (Result, error) {
	id := uuid.New().String()
	if in.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, in.Timeout)
		defer cancel()
	}

	if err := ctx.Err(); err != nil {
		return cancelled(id, 0), fmt.Errorf("run %s: %w: %w", id, ErrCancelled, err)
	}

	args := append(append([]string(nil), in.Args...), source)
	cmd := exec.Command(in.Command, args...)
	cmd.Env = in.Env
	cmd.Dir = in.Dir

	// One writer for both streams shares a single pipe, preserving order.
	var out lockedBuffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	// Grandchildren holding the pipe open must not stall Wait after a kill.
	cmd.WaitDelay = 100 * time.Millisecond

	proc, err := in.supervisor.StartWithID(id, in.Command, cmd)
	if err != nil {
		return Result{
			ID:       id,
			Output:   err.Error() + "\n",
			ExitCode: -1,
		}, fmt.Errorf("run %s: %w: %w", id, ErrStart, err)
	}

	select {
	case <-proc.Done():
	case <-ctx.Done():
		_ = proc.Kill()
		<-proc.Done()
		return cancelled(id, proc.Runtime()), fmt.Errorf("run %s: %w: %w", id, ErrCancelled, ctx.Err())
	}

	code := proc.ExitCode()
	return Result{
		ID:        id,
		Output:    out.String(),
		Succeeded: code == 0,
		ExitCode:  code,
		Duration:  proc.Runtime(),
	}, nil
}

func cancelled(id string, d time.Duration) Result {
	return Result{ID: id, ExitCode: -1, Cancelled: true, Duration: d}
}

// lockedBuffer is a bytes.Buffer safe for the pipe copier and readers.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
