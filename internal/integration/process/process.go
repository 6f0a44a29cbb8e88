package process

import (
	"errors"
	"fmt"
	"os/exec"
	"sync"
	"time"
)

// Lifecycle errors.
var (
	ErrProcessNotStarted     = errors.New("process not running")
	ErrProcessAlreadyStarted = errors.New("process already started")
)

// State is where a Process is in its lifecycle.
type State int

const (
	StateCreated State = iota
	StateRunning
	StateExited // exited on its own, whatever the status
	StateKilled
)

var stateNames = [...]string{"created", "running", "exited", "killed"}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("unknown(%d)", int(s))
}

// Process is one child started by a Supervisor. Its methods are safe to
// call from any goroutine.
type Process struct {
	ID   string
	Name string
	Cmd  *exec.Cmd

	done chan struct{}

	mu       sync.Mutex
	state    State
	killed   bool
	exitCode int
	exitErr  error
	started  time.Time
	ended    time.Time
}

// NewProcess wraps an unstarted command.
func NewProcess(id, name string, cmd *exec.Cmd) *Process {
	return &Process{
		ID:       id,
		Name:     name,
		Cmd:      cmd,
		done:     make(chan struct{}),
		exitCode: -1,
	}
}

// State returns the lifecycle state.
func (p *Process) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// IsRunning reports whether the process has started and not yet exited.
func (p *Process) IsRunning() bool { return p.State() == StateRunning }

// ExitCode is the exit status, or -1 while running and after a kill.
func (p *Process) ExitCode() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.exitCode
}

// ExitError is the error returned by Wait, if any.
func (p *Process) ExitError() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.exitErr
}

// Done is closed once the process has exited and its state is final.
func (p *Process) Done() <-chan struct{} { return p.done }

// PID is the OS process ID, or -1 before start.
func (p *Process) PID() int {
	if p.Cmd.Process == nil {
		return -1
	}
	return p.Cmd.Process.Pid
}

// Runtime is the time between start and exit, or since start while running.
func (p *Process) Runtime() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch {
	case p.started.IsZero():
		return 0
	case p.ended.IsZero():
		return time.Since(p.started)
	}
	return p.ended.Sub(p.started)
}

// Kill sends SIGKILL. The state becomes StateKilled once the child is reaped.
func (p *Process) Kill() error {
	p.mu.Lock()
	if p.state != StateRunning {
		p.mu.Unlock()
		return fmt.Errorf("kill %s: %w", p.ID, ErrProcessNotStarted)
	}
	p.killed = true
	p.mu.Unlock()
	return p.Cmd.Process.Kill()
}

func (p *Process) start() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != StateCreated {
		return ErrProcessAlreadyStarted
	}
	if err := p.Cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", p.Name, err)
	}
	p.state = StateRunning
	p.started = time.Now()
	go p.wait()
	return nil
}

func (p *Process) wait() {
	err := p.Cmd.Wait()

	p.mu.Lock()
	p.exitErr = err
	p.ended = time.Now()
	p.state = StateExited
	if ps := p.Cmd.ProcessState; ps != nil {
		p.exitCode = ps.ExitCode()
	}
	if p.killed {
		p.state = StateKilled
		p.exitCode = -1
	}
	p.mu.Unlock()
	close(p.done)
}
