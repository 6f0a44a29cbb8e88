package process

import (
	"errors"
	"fmt"
	"os/exec"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrSupervisorShutdown is returned by Start after Shutdown.
var ErrSupervisorShutdown = errors.New("supervisor is shutting down")

// Supervisor keeps track of live processes so they can be killed together
// at shutdown. It is safe for concurrent use.
type Supervisor struct {
	mu     sync.Mutex
	live   map[string]*Process
	closed bool
	onExit func(*Process)
}

// SupervisorOption configures a Supervisor.
type SupervisorOption func(*Supervisor)

// WithProcessExitCallback calls fn after each process exits. A panic in fn
// is recovered.
func WithProcessExitCallback(fn func(*Process)) SupervisorOption {
	return func(s *Supervisor) { s.onExit = fn }
}

// NewSupervisor creates a supervisor with no live processes.
func NewSupervisor(opts ...SupervisorOption) *Supervisor {
	s := &Supervisor{live: map[string]*Process{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start launches cmd under a fresh ID. The command's I/O must already be
// wired.
func (s *Supervisor) Start(name string, cmd *exec.Cmd) (*Process, error) {
	return s.StartWithID(uuid.New().String(), name, cmd)
}

// StartWithID launches cmd under id. A process that fails to start is never
// tracked.
func (s *Supervisor) StartWithID(id, name string, cmd *exec.Cmd) (*Process, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.closed:
		return nil, ErrSupervisorShutdown
	case s.live[id] != nil:
		return nil, fmt.Errorf("start %s: duplicate process id %s", name, id)
	}

	p := NewProcess(id, name, cmd)
	if err := p.start(); err != nil {
		return nil, err
	}
	s.live[id] = p
	go s.reap(p)
	return p, nil
}

func (s *Supervisor) reap(p *Process) {
	<-p.Done()
	if s.onExit != nil {
		func() {
			defer func() { _ = recover() }()
			s.onExit(p)
		}()
	}
	s.mu.Lock()
	delete(s.live, p.ID)
	s.mu.Unlock()
}

// Count returns the number of live processes.
func (s *Supervisor) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.live)
}

// Shutdown stops accepting processes, kills the live ones and waits up to
// timeout for them to exit. It reports whether all of them did.
func (s *Supervisor) Shutdown(timeout time.Duration) bool {
	s.mu.Lock()
	already := s.closed
	s.closed = true
	procs := make([]*Process, 0, len(s.live))
	for _, p := range s.live {
		procs = append(procs, p)
	}
	s.mu.Unlock()

	if !already {
		for _, p := range procs {
			_ = p.Kill()
		}
	}

	deadline := time.After(timeout)
	for _, p := range procs {
		select {
		case <-p.Done():
		case <-deadline:
			return false
		}
	}
	return true
}
