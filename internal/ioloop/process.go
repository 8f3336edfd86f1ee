package ioloop

import (
	"context"
	"io"
	"os/exec"
	"sync"
	"sync/atomic"

	"golang.org/x/sys/unix"
)

// State mirrors the lifecycle a supervised process moves through,
// grounded on internal/integration/process.Process's State enum.
type State int32

const (
	StatePending State = iota
	StateRunning
	StateExited
	StateFailed
)

// Process is one background transfer backed by an *exec.Cmd: spec §5's
// "observe child-process exits" source of completions. Its stdout is
// read incrementally and pushed to the Scheduler as Completion values;
// its final exit status is pushed as one last Completion with EOF set.
type Process struct {
	cmd    *exec.Cmd
	state  atomic.Int32
	cancel context.CancelFunc

	mu       sync.Mutex
	exitCode int
	exitErr  error
}

// StartProcess launches name with args, wiring its stdout through a
// pipe read on the background goroutine. Every chunk read, and the
// final exit, is pushed to sched and reaches cb on the main thread via
// Scheduler.Drain. The process's own stdin is not connected; callers
// needing a prompt `<` redirection into a subprocess use StartPiped instead.
func StartProcess(ctx context.Context, sched *Scheduler, name string, args []string, cb Callback) (*Process, error) {
	cctx, cancel := context.WithCancel(ctx)
	cmd := exec.CommandContext(cctx, name, args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return nil, err
	}

	p := &Process{cmd: cmd, cancel: cancel}
	p.state.Store(int32(StatePending))

	if err := cmd.Start(); err != nil {
		cancel()
		return nil, err
	}
	p.state.Store(int32(StateRunning))

	go p.pump(stdout, sched, cb)
	return p, nil
}

// StartPiped launches name with args and an stdin pipe fed with input,
// used by the prompt refraction's `<` redirection (spec §6) to send
// selected Resource lines to a subprocess. input is written and closed
// on the background goroutine so a slow consumer never blocks the main
// thread.
func StartPiped(ctx context.Context, sched *Scheduler, name string, args []string, input []byte, cb Callback) (*Process, error) {
	cctx, cancel := context.WithCancel(ctx)
	cmd := exec.CommandContext(cctx, name, args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		cancel()
		return nil, err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return nil, err
	}

	p := &Process{cmd: cmd, cancel: cancel}
	p.state.Store(int32(StatePending))

	if err := cmd.Start(); err != nil {
		cancel()
		return nil, err
	}
	p.state.Store(int32(StateRunning))

	go func() {
		_, _ = stdin.Write(input)
		_ = stdin.Close()
	}()
	go p.pump(stdout, sched, cb)
	return p, nil
}

func (p *Process) pump(stdout io.ReadCloser, sched *Scheduler, cb Callback) {
	buf := make([]byte, 4096)
	for {
		n, err := stdout.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			sched.push(cb, Completion{Data: chunk})
		}
		if err != nil {
			break
		}
	}

	waitErr := p.cmd.Wait()
	exitCode := 0
	if waitErr != nil {
		exitCode = exitCodeOf(waitErr)
	} else if p.cmd.ProcessState != nil {
		exitCode = p.cmd.ProcessState.ExitCode()
	}

	p.mu.Lock()
	p.exitCode = exitCode
	p.exitErr = waitErr
	p.mu.Unlock()

	if waitErr != nil {
		p.state.Store(int32(StateFailed))
	} else {
		p.state.Store(int32(StateExited))
	}

	sched.push(cb, Completion{ExitCode: exitCode, Errno: waitErr, EOF: true})
}

// exitCodeOf extracts a POSIX exit status from a *exec.ExitError via
// unix.WaitStatus, falling back to -1 for signals or non-POSIX
// platforms. This is the pipe/signal-primitive use of golang.org/x/sys
// spec §5 calls for: child-exit wait semantics adjacent to SIGCHLD.
func exitCodeOf(err error) int {
	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		return -1
	}
	if ws, ok := exitErr.Sys().(unix.WaitStatus); ok {
		if ws.Exited() {
			return ws.ExitStatus()
		}
		if ws.Signaled() {
			return 128 + int(ws.Signal())
		}
	}
	return exitErr.ExitCode()
}

// State reports the process's current lifecycle state.
func (p *Process) State() State { return State(p.state.Load()) }

// Interrupt sends SIGINT, matching spec §5's "for processes, a kill
// signal is sent" interrupt() semantics. Safe to call multiple times
// or after the process has already exited.
func (p *Process) Interrupt() error {
	if p.cmd.Process == nil {
		return nil
	}
	return p.cmd.Process.Signal(unix.SIGINT)
}

// Kill forces termination and releases the subprocess's resources.
func (p *Process) Kill() error {
	p.cancel()
	return nil
}

// ExitCode and ExitErr report the final status once State is
// StateExited or StateFailed; both are zero-value until then.
func (p *Process) ExitCode() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.exitCode
}

func (p *Process) ExitErr() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.exitErr
}
