// Package sidecar manages the placeholder helper process the Kilocode
// extension spawns alongside itself. It is deliberately not a supervisor:
// there is no restart on crash, no readiness probe, and no communication
// with the child. The only guarantees are that at most one process handle
// is held at a time and that a held process is signaled to terminate when
// the sidecar is closed.
package sidecar

import (
	"fmt"
	"log/slog"
	"os/exec"
	"sync"

	"github.com/google/uuid"
)

// Sidecar holds an optional handle to a spawned child process. The mutex
// makes check-then-spawn and check-then-kill atomic against concurrent
// hook invocations from the host. The lock is never held across I/O with
// the child (there is none).
type Sidecar struct {
	program string
	args    []string
	logger  *slog.Logger

	mu  sync.Mutex
	cmd *exec.Cmd
	id  string
}

// Option configures a Sidecar during construction.
type Option func(*Sidecar)

// WithLogger sets the logger used for lifecycle events.
func WithLogger(l *slog.Logger) Option {
	return func(s *Sidecar) { s.logger = l }
}

// New creates a sidecar that will spawn the given program with the given
// arguments on the first EnsureStarted call. Nothing is spawned yet.
func New(program string, args []string, opts ...Option) *Sidecar {
	s := &Sidecar{
		program: program,
		args:    args,
		logger:  slog.Default(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// EnsureStarted spawns the sidecar process if no handle is currently held.
// If a handle is already held the call is a no-op, even when the process
// has since exited. A spawn failure leaves no handle behind and is returned
// as a descriptive error.
func (s *Sidecar) EnsureStarted() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cmd != nil {
		return nil
	}

	cmd := exec.Command(s.program, s.args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting sidecar %s: %w", s.program, err)
	}

	s.cmd = cmd
	s.id = uuid.NewString()

	// Reap the child in the background so a fast-exiting placeholder does
	// not linger as a zombie. The handle stays held regardless of the exit:
	// a dead sidecar is not restarted.
	go func() { _ = cmd.Wait() }()

	s.logger.Info("sidecar started",
		"id", s.id,
		"program", s.program,
		"pid", cmd.Process.Pid,
	)
	return nil
}

// Held reports whether a process handle is currently held. It says nothing
// about whether the process is still alive.
func (s *Sidecar) Held() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cmd != nil
}

// PID returns the process id of the held handle, or -1 if none is held.
func (s *Sidecar) PID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cmd == nil || s.cmd.Process == nil {
		return -1
	}
	return s.cmd.Process.Pid
}

// Close signals the held process to terminate, if any, and discards the
// handle. Termination failure is swallowed: the handle is cleared either
// way, so the process is signaled at most once across repeated calls.
// Close always returns nil; it satisfies io.Closer so hosts can tear the
// sidecar down uniformly.
func (s *Sidecar) Close() error {
	s.mu.Lock()
	cmd := s.cmd
	id := s.id
	s.cmd = nil
	s.id = ""
	s.mu.Unlock()

	if cmd == nil || cmd.Process == nil {
		return nil
	}
	if err := terminate(cmd.Process); err != nil {
		s.logger.Debug("sidecar termination signal failed", "id", id, "error", err)
	} else {
		s.logger.Info("sidecar stopped", "id", id)
	}
	return nil
}
