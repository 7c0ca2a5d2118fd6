// Package cli provides the command-line interface for keysweep.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/mrz1836/keysweep/internal/clock"
	"github.com/mrz1836/keysweep/internal/process"
	"github.com/mrz1836/keysweep/internal/tui"
)

// BuildInfo contains version information set at build time via ldflags.
type BuildInfo struct {
	// Version is the semantic version (e.g., "1.0.0").
	Version string
	// Commit is the git commit hash.
	Commit string
	// Date is the build date.
	Date string
}

// environment holds the collaborators a sweep needs from the outside world.
// Tests replace them with scripted fakes.
type environment struct {
	runner process.Runner
	clock  clock.Clock
	// logOutput, when set, receives all log output instead of the console
	// and the rotating log file.
	logOutput io.Writer
	// stdout and stderr default to the process streams when nil.
	stdout io.Writer
	stderr io.Writer
	isTTY  func(w io.Writer) bool
}

func defaultEnvironment() environment {
	return environment{
		runner: &process.DefaultRunner{},
		clock:  clock.RealClock{},
		isTTY:  isTerminal,
	}
}

// isTerminal reports whether w is a terminal file.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// newRootCmd creates the keysweep command. The command takes no arguments;
// running it performs one full sweep.
func newRootCmd(flags *Flags, info BuildInfo, env environment) *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "keysweep",
		Short: "Build and benchmark one variant per key size",
		Long: `keysweep compiles the benchmark once per parameter value, passing the
value as a preprocessor definition, runs every build once, and writes the
collected output to a timestamped report file.

A compiler failure stops the sweep and no report is written. A benchmark
failure is recorded in the report and the sweep continues.

Examples:
  keysweep                         # sweep keysize 1..99
  keysweep --start 8 --end 16      # sweep a sub-range
  keysweep --workers 4             # build and run four values at a time
  keysweep --show-config           # print the effective configuration`,
		Version: formatVersion(info),
		Args:    cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := BindGlobalFlags(v, cmd); err != nil {
				return fmt.Errorf("failed to bind flags: %w", err)
			}
			flags.Verbose = v.GetBool("verbose")
			flags.Quiet = v.GetBool("quiet") && !flags.Verbose

			logger := initCommandLogger(env, flags.Verbose, flags.Quiet)
			cmd.SetContext(logger.WithContext(cmd.Context()))
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSweep(cmd.Context(), cmd, flags, env)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	AddGlobalFlags(cmd, flags)
	AddSweepFlags(cmd, flags)

	return cmd
}

// formatVersion creates the version string from build info.
func formatVersion(info BuildInfo) string {
	if info.Version == "" {
		info.Version = "dev"
	}
	if info.Commit == "" {
		info.Commit = "none"
	}
	if info.Date == "" {
		info.Date = "unknown"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", info.Version, info.Commit, info.Date)
}

// Execute runs keysweep and prints any error to stderr.
// Map the returned error to a process exit code with ExitCodeForError.
func Execute(ctx context.Context, info BuildInfo) error {
	return execute(ctx, info, defaultEnvironment(), os.Args[1:])
}

func execute(ctx context.Context, info BuildInfo, env environment, args []string) error {
	defer CloseLogFile()

	flags := &Flags{}
	//nolint:contextcheck // cobra carries the context through cmd.Context()
	cmd := newRootCmd(flags, info, env)
	cmd.SetArgs(args)
	if env.stdout != nil {
		cmd.SetOut(env.stdout)
	}
	if env.stderr != nil {
		cmd.SetErr(env.stderr)
	}

	err := cmd.ExecuteContext(ctx)
	if err != nil {
		stderr := cmd.ErrOrStderr()
		tui.NewOutput(stderr, env.isTTY(stderr), false).Error(err)
	}
	return err
}
