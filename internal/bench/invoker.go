// Package bench executes a compiled benchmark artifact and captures its outcome.
//
// A run never fails the sweep: a non-zero exit, a launch failure or a timeout
// all come back as an Outcome with Success == false. The only outcome the
// caller must treat differently is Canceled, which means the operator
// interrupted the sweep while the benchmark was running.
package bench

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mrz1836/keysweep/internal/errors"
	"github.com/mrz1836/keysweep/internal/logging"
	"github.com/mrz1836/keysweep/internal/process"
)

// Outcome is the result of one benchmark run. Exactly one of the success
// payload (Stdout) or the failure payload (ExitCode, Stderr) is meaningful.
type Outcome struct {
	Value    int
	Success  bool
	Stdout   string
	ExitCode int
	Stderr   string
	Duration time.Duration
	Canceled bool
}

// Succeeded builds a successful outcome.
func Succeeded(value int, stdout string) Outcome {
	return Outcome{Value: value, Success: true, Stdout: stdout}
}

// Failed builds a failed outcome.
func Failed(value, exitCode int, stderr string) Outcome {
	return Outcome{Value: value, ExitCode: exitCode, Stderr: stderr}
}

// Err returns nil for a successful outcome, and an error matching
// errors.ErrRunFailed otherwise.
func (o Outcome) Err() error {
	if o.Success {
		return nil
	}
	return fmt.Errorf("%w: value %d exited with code %d", errors.ErrRunFailed, o.Value, o.ExitCode)
}

// Invoker runs benchmark artifacts.
type Invoker struct {
	runner     process.Runner
	timeout    time.Duration
	dir        string
	liveOutput io.Writer
}

// Option configures an Invoker.
type Option func(*Invoker)

// WithTimeout bounds every run. Zero means no limit.
func WithTimeout(d time.Duration) Option {
	return func(i *Invoker) {
		i.timeout = d
	}
}

// WithDir sets the working directory of the benchmark.
func WithDir(dir string) Option {
	return func(i *Invoker) {
		i.dir = dir
	}
}

// WithLiveOutput streams benchmark output to w while it runs.
func WithLiveOutput(w io.Writer) Option {
	return func(i *Invoker) {
		i.liveOutput = w
	}
}

// NewInvoker creates an invoker. A nil runner uses process.DefaultRunner.
func NewInvoker(runner process.Runner, opts ...Option) *Invoker {
	if runner == nil {
		runner = &process.DefaultRunner{}
	}
	i := &Invoker{runner: runner}
	for _, o := range opts {
		o(i)
	}
	return i
}

// Run executes artifact with no arguments and blocks until it exits.
func (i *Invoker) Run(ctx context.Context, value int, artifact string) Outcome {
	log := zerolog.Ctx(ctx).With().Str("component", "bench").Int("value", value).Logger()

	runCtx := ctx
	if i.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, i.timeout)
		defer cancel()
	}

	res := i.runner.Run(runCtx, process.Request{
		Args:       []string{executablePath(artifact)},
		Dir:        i.dir,
		LiveOutput: i.liveOutput,
	})

	if ctx.Err() != nil {
		log.Warn().Msg("benchmark run canceled")
		out := Failed(value, res.ExitCode, process.DecodeText(res.Stderr))
		out.Canceled = true
		out.Duration = res.Duration
		return out
	}

	if !res.Success() {
		out := Failed(value, res.ExitCode, process.DecodeText(res.Stderr))
		out.Duration = res.Duration
		event := log.Warn().
			Int("exit_code", res.ExitCode).
			Dur("duration_ms", res.Duration)
		logging.Output(event, "stderr", out.Stderr).Msg("benchmark run failed")
		return out
	}

	out := Succeeded(value, process.DecodeText(res.Stdout))
	out.Duration = res.Duration
	log.Debug().Dur("duration_ms", res.Duration).Int("stdout_bytes", len(res.Stdout)).Msg("benchmark run completed")
	return out
}

// executablePath makes a bare file name explicit relative to the working
// directory, so the artifact is never looked up on PATH.
func executablePath(artifact string) string {
	if filepath.IsAbs(artifact) || strings.ContainsRune(artifact, filepath.Separator) || strings.ContainsRune(artifact, '/') {
		return artifact
	}
	return "." + string(filepath.Separator) + artifact
}
