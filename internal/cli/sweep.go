package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mrz1836/keysweep/internal/bench"
	"github.com/mrz1836/keysweep/internal/build"
	"github.com/mrz1836/keysweep/internal/config"
	"github.com/mrz1836/keysweep/internal/constants"
	"github.com/mrz1836/keysweep/internal/errors"
	"github.com/mrz1836/keysweep/internal/flock"
	"github.com/mrz1836/keysweep/internal/process"
	"github.com/mrz1836/keysweep/internal/report"
	"github.com/mrz1836/keysweep/internal/signal"
	"github.com/mrz1836/keysweep/internal/sweep"
	"github.com/mrz1836/keysweep/internal/tui"
)

// runSweep loads the configuration, runs the sweep, and writes the report.
func runSweep(ctx context.Context, cmd *cobra.Command, flags *Flags, env environment) error {
	cfg, err := loadConfig(ctx, cmd, flags)
	if err != nil {
		return errors.NewExitCodeError(ExitInvalidInput, err)
	}

	w := cmd.OutOrStdout()
	if flags.ShowConfig {
		return showConfig(w, cfg, flags.ConfigFile)
	}

	logger := zerolog.Ctx(ctx)
	out := tui.NewOutput(w, env.isTTY(w), flags.Quiet)

	lock, err := flock.Acquire(lockPath(cfg.Build))
	if err != nil {
		return err
	}
	defer func() {
		if releaseErr := lock.Release(); releaseErr != nil {
			logger.Warn().Err(releaseErr).Str("path", lock.Path()).Msg("failed to release artifact lock")
		}
	}()

	guard := signal.Watch(ctx)
	defer guard.Stop()

	var live io.Writer
	if flags.Verbose {
		live = process.NewLockedWriter(cmd.ErrOrStderr())
	}

	builderOpts := []build.Option{build.WithLiveOutput(live)}
	if cfg.Sweep.Workers > 1 {
		builderOpts = append(builderOpts, build.WithIsolatedArtifacts())
	}
	builder := build.NewBuilder(env.runner, buildOptions(cfg.Build), builderOpts...)
	invoker := bench.NewInvoker(env.runner,
		bench.WithTimeout(cfg.Run.Timeout),
		bench.WithDir(cfg.Build.WorkDir),
		bench.WithLiveOutput(live),
	)

	controller := sweep.NewController(builder, invoker, sweep.Config{
		Range:    sweep.Range{Start: cfg.Sweep.Start, End: cfg.Sweep.End},
		Workers:  cfg.Sweep.Workers,
		Progress: progressPrinter(out),
		Clock:    env.clock,
	})

	out.Info(fmt.Sprintf("Sweeping keysize %d..%d with %d worker(s)",
		cfg.Sweep.Start, cfg.Sweep.End, cfg.Sweep.Workers))
	result, err := controller.Run(guard.Context())
	if err != nil {
		if guard.Interrupted() {
			return guard.Cause()
		}
		var failure *build.Failure
		if stderrors.As(err, &failure) {
			out.BuildFailed(failure.Value, failure.ExitCode, failure.Stderr)
		}
		return err
	}

	writer := report.NewWriter(
		report.WithDir(cfg.Report.Dir),
		report.WithPrefix(cfg.Report.Prefix),
		report.WithClock(env.clock),
		report.WithDiagnostics(cfg.Report.PersistDiagnostics),
	)
	path, err := writer.Write(ctx, result)
	if err != nil {
		return err
	}

	out.Success(fmt.Sprintf("%d of %d runs succeeded, report written to %s",
		result.Succeeded(), len(result.Sections), path))
	return nil
}

// loadConfig layers the flag overrides on top of the configuration files.
func loadConfig(ctx context.Context, cmd *cobra.Command, flags *Flags) (*config.Config, error) {
	if err := validateSweepFlags(cmd, flags); err != nil {
		return nil, err
	}

	cfg, err := config.LoadWithOverrides(ctx, flags.ConfigFile, &config.Config{
		Sweep: config.SweepConfig{
			Start:   flags.Start,
			End:     flags.End,
			Workers: flags.Workers,
		},
		Report: config.ReportConfig{
			Dir: flags.ReportDir,
		},
	})
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("persist-diagnostics") {
		cfg.Report.PersistDiagnostics = flags.PersistDiagnostics
	}
	return cfg, nil
}

// validateSweepFlags rejects explicit values that the zero-means-unset
// override rule would otherwise ignore.
func validateSweepFlags(cmd *cobra.Command, flags *Flags) error {
	changed := cmd.Flags().Changed
	if changed("start") && flags.Start < 1 {
		return errors.Wrapf(errors.ErrInvalidRange, "--start must be at least 1, got %d", flags.Start)
	}
	if changed("end") && flags.End < 1 {
		return errors.Wrapf(errors.ErrInvalidRange, "--end must be at least 1, got %d", flags.End)
	}
	if changed("workers") && flags.Workers < 1 {
		return errors.Wrapf(errors.ErrConfigInvalidSweep, "--workers must be at least 1, got %d", flags.Workers)
	}
	if changed("report-dir") && flags.ReportDir == "" {
		return errors.Wrap(errors.ErrConfigInvalidReport, "--report-dir must not be empty")
	}
	return nil
}

// buildOptions converts the build configuration for the builder.
func buildOptions(cfg config.BuildConfig) build.Options {
	return build.Options{
		Compiler:  cfg.Compiler,
		Flags:     cfg.Flags,
		Output:    cfg.Output,
		Sources:   cfg.Sources,
		LinkFlags: cfg.LinkFlags,
		Define:    cfg.Define,
		Timeout:   cfg.Timeout,
		Dir:       cfg.WorkDir,
	}
}

// lockPath is the artifact lock file, resolved against the build directory.
func lockPath(cfg config.BuildConfig) string {
	artifact := cfg.Output
	if cfg.WorkDir != "" && !filepath.IsAbs(artifact) {
		artifact = filepath.Join(cfg.WorkDir, artifact)
	}
	return artifact + constants.LockSuffix
}

// progressPrinter forwards sweep events to the console.
func progressPrinter(out tui.Output) sweep.ProgressFunc {
	return func(e sweep.Event) {
		switch e.Kind {
		case sweep.EventStarting:
			out.Running(e.Value, e.Index, e.Total)
		case sweep.EventFailed:
			if e.Outcome != nil {
				out.RunFailed(e.Value, e.Outcome.ExitCode, e.Outcome.Stderr)
			}
		case sweep.EventCompleted:
		}
	}
}
