// Package build compiles one variant of the benchmark per parameter value.
//
// Every build passes the value to the compiler as a preprocessor definition
// (-D<define>=<value>) and writes the artifact to a fixed path. A compiler
// failure is returned as *Failure, which matches errors.ErrBuildFailed; the
// sweep treats it as fatal.
package build

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mrz1836/keysweep/internal/constants"
	"github.com/mrz1836/keysweep/internal/errors"
	"github.com/mrz1836/keysweep/internal/logging"
	"github.com/mrz1836/keysweep/internal/process"
)

// Options describes the compiler invocation.
type Options struct {
	// Compiler is the compiler executable.
	Compiler string
	// Flags are placed before "-o <output>".
	Flags []string
	// Output is the artifact path, reused by every build.
	Output string
	// Sources are placed after the output path.
	Sources []string
	// LinkFlags are placed after the sources.
	LinkFlags []string
	// Define is the preprocessor symbol carrying the parameter value.
	Define string
	// Timeout bounds a single build. Zero means no limit.
	Timeout time.Duration
	// Dir is the working directory of the compiler.
	Dir string
}

// DefaultOptions returns the reference toolchain settings.
func DefaultOptions() Options {
	return Options{
		Compiler:  constants.DefaultCompiler,
		Flags:     constants.DefaultCompilerFlags(),
		Output:    constants.DefaultArtifactPath,
		Sources:   constants.DefaultSources(),
		LinkFlags: constants.DefaultLinkFlags(),
		Define:    constants.DefaultDefineName,
	}
}

// Result describes a successful build.
type Result struct {
	Value    int
	Artifact string
	Duration time.Duration
}

// Failure is a compiler exit other than zero, or a compiler that could not
// be launched.
type Failure struct {
	Value    int
	ExitCode int
	Stderr   string
	Err      error
}

// Error describes the failed build.
func (f *Failure) Error() string {
	return fmt.Sprintf("build of %s %d failed with exit code %d", strings.ToLower(constants.SectionLabel), f.Value, f.ExitCode)
}

// Is makes every Failure match errors.ErrBuildFailed.
func (f *Failure) Is(target error) bool {
	return target == errors.ErrBuildFailed
}

// Unwrap returns the underlying process error.
func (f *Failure) Unwrap() error {
	return f.Err
}

// Builder runs the compiler.
type Builder struct {
	runner     process.Runner
	opts       Options
	isolate    bool
	liveOutput io.Writer
}

// Option configures a Builder.
type Option func(*Builder)

// WithIsolatedArtifacts gives every value its own artifact path so that
// builds can run concurrently.
func WithIsolatedArtifacts() Option {
	return func(b *Builder) {
		b.isolate = true
	}
}

// WithLiveOutput streams compiler output to w while it runs.
func WithLiveOutput(w io.Writer) Option {
	return func(b *Builder) {
		b.liveOutput = w
	}
}

// NewBuilder creates a builder. A nil runner uses process.DefaultRunner.
func NewBuilder(runner process.Runner, opts Options, options ...Option) *Builder {
	if runner == nil {
		runner = &process.DefaultRunner{}
	}
	b := &Builder{runner: runner, opts: opts}
	for _, o := range options {
		o(b)
	}
	return b
}

// ArtifactFor returns the artifact path used for value.
// Without isolation this is always the configured output path.
func (b *Builder) ArtifactFor(value int) string {
	if !b.isolate {
		return b.opts.Output
	}
	ext := filepath.Ext(b.opts.Output)
	stem := strings.TrimSuffix(b.opts.Output, ext)
	return stem + "-" + strconv.Itoa(value) + ext
}

// Args returns the full compiler argv for value.
func (b *Builder) Args(value int) []string {
	args := make([]string, 0, 4+len(b.opts.Flags)+len(b.opts.Sources)+len(b.opts.LinkFlags))
	args = append(args, b.opts.Compiler)
	args = append(args, b.opts.Flags...)
	args = append(args, "-o", b.ArtifactFor(value))
	args = append(args, b.opts.Sources...)
	args = append(args, b.opts.LinkFlags...)
	args = append(args, "-D"+b.opts.Define+"="+strconv.Itoa(value))
	return args
}

// Build compiles the benchmark for value and blocks until the compiler exits.
func (b *Builder) Build(ctx context.Context, value int) (*Result, error) {
	if value < 1 {
		return nil, errors.Wrapf(errors.ErrInvalidParameter, "%s must be positive, got %d", strings.ToLower(constants.SectionLabel), value)
	}
	log := zerolog.Ctx(ctx).With().Str("component", "build").Int("value", value).Logger()

	buildCtx := ctx
	if b.opts.Timeout > 0 {
		var cancel context.CancelFunc
		buildCtx, cancel = context.WithTimeout(ctx, b.opts.Timeout)
		defer cancel()
	}

	args := b.Args(value)
	log.Debug().Strs("args", args).Msg("invoking compiler")

	res := b.runner.Run(buildCtx, process.Request{
		Args:       args,
		Dir:        b.opts.Dir,
		LiveOutput: b.liveOutput,
	})

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if !res.Success() {
		failure := &Failure{
			Value:    value,
			ExitCode: res.ExitCode,
			Stderr:   process.DecodeText(res.Stderr),
			Err:      res.Err,
		}
		event := log.Error().
			Int("exit_code", res.ExitCode).
			Dur("duration_ms", res.Duration)
		logging.Output(event, "stderr", failure.Stderr).Msg("compiler failed")
		return nil, failure
	}

	log.Debug().Dur("duration_ms", res.Duration).Msg("build completed")

	return &Result{
		Value:    value,
		Artifact: b.ArtifactFor(value),
		Duration: res.Duration,
	}, nil
}
