// Package process executes external programs and captures their outcome.
//
// The compiler and the benchmark are both driven through the Runner
// interface, so the build and run steps can be tested with a fake that never
// touches the filesystem. Commands are executed directly, never through a
// shell: every argument reaches the child verbatim.
package process

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"time"
)

// LaunchFailureExitCode is reported when the process could not be started at
// all (missing binary, permission denied). Callers treat it like any other
// non-zero exit.
const LaunchFailureExitCode = -1

// Request describes one process invocation.
type Request struct {
	// Args is the program followed by its arguments. It must not be empty.
	Args []string
	// Dir is the working directory. Empty means the current directory.
	Dir string
	// LiveOutput, when set, receives stdout and stderr as they are produced.
	// Both streams are still captured in the Result. Writes from the two
	// streams are serialized; share a LockedWriter across concurrent Runs.
	LiveOutput io.Writer
}

// Result captures the outcome of one process invocation.
type Result struct {
	ExitCode  int
	Stdout    []byte
	Stderr    []byte
	Err       error
	StartedAt time.Time
	Duration  time.Duration
}

// Success reports whether the process ran and exited with code zero.
func (r Result) Success() bool {
	return r.Err == nil && r.ExitCode == 0
}

// Runner executes external processes.
// This allows for testing by injecting fake implementations.
type Runner interface {
	// Run blocks until the process exits or ctx is done.
	Run(ctx context.Context, req Request) Result
}

// DefaultRunner implements Runner using os/exec.
type DefaultRunner struct{}

// ErrNoCommand is returned in Result.Err when Request.Args is empty.
var ErrNoCommand = errors.New("no command given")

// Run starts req.Args[0] with the remaining arguments and waits for it.
func (r *DefaultRunner) Run(ctx context.Context, req Request) Result {
	started := time.Now()
	if len(req.Args) == 0 {
		return Result{
			ExitCode:  LaunchFailureExitCode,
			Stderr:    []byte(ErrNoCommand.Error()),
			Err:       ErrNoCommand,
			StartedAt: started,
		}
	}

	cmd := exec.CommandContext(ctx, req.Args[0], req.Args[1:]...) //nolint:gosec // argv comes from the operator's own config
	cmd.Dir = req.Dir

	var outBuf, errBuf bytes.Buffer
	if req.LiveOutput != nil {
		live := NewLockedWriter(req.LiveOutput)
		cmd.Stdout = io.MultiWriter(&outBuf, live)
		cmd.Stderr = io.MultiWriter(&errBuf, live)
	} else {
		cmd.Stdout = &outBuf
		cmd.Stderr = &errBuf
	}

	err := cmd.Run()
	res := Result{
		Stdout:    outBuf.Bytes(),
		Stderr:    errBuf.Bytes(),
		Err:       err,
		StartedAt: started,
		Duration:  time.Since(started),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
		} else {
			res.ExitCode = LaunchFailureExitCode
			if len(res.Stderr) == 0 {
				res.Stderr = []byte(err.Error())
			}
		}
	}

	return res
}

// Ensure DefaultRunner implements Runner.
var _ Runner = (*DefaultRunner)(nil)
