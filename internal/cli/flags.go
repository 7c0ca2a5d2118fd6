package cli

import (
	stderrors "errors"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mrz1836/keysweep/internal/constants"
	"github.com/mrz1836/keysweep/internal/errors"
)

// Exit codes for the CLI.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0
	// ExitError indicates a general error, including an interrupted sweep
	// and a report that could not be written.
	ExitError = 1
	// ExitInvalidInput indicates invalid flags or configuration.
	ExitInvalidInput = 2
	// ExitBuildFailed indicates that the compiler failed for some value.
	ExitBuildFailed = 3
)

// Flags holds every command-line flag.
type Flags struct {
	// Verbose enables debug-level logging and live process output.
	Verbose bool
	// Quiet suppresses progress lines (warn level logging).
	Quiet bool
	// ConfigFile replaces the project config file.
	ConfigFile string
	// ShowConfig prints the effective configuration and exits.
	ShowConfig bool

	Start              int
	End                int
	Workers            int
	ReportDir          string
	PersistDiagnostics bool
}

// AddGlobalFlags adds the logging and configuration flags.
func AddGlobalFlags(cmd *cobra.Command, flags *Flags) {
	cmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "enable debug logs and live compiler/benchmark output")
	cmd.PersistentFlags().BoolVarP(&flags.Quiet, "quiet", "q", false, "suppress progress output")
	cmd.PersistentFlags().StringVar(&flags.ConfigFile, "config", "", "config file (replaces .keysweep/config.yaml)")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
}

// AddSweepFlags adds the flags that override sweep configuration.
// Zero values mean "not set"; explicit invalid values are rejected.
func AddSweepFlags(cmd *cobra.Command, flags *Flags) {
	f := cmd.Flags()
	f.IntVar(&flags.Start, "start", 0, "first keysize (default 1)")
	f.IntVar(&flags.End, "end", 0, "last keysize, inclusive (default 99)")
	f.IntVar(&flags.Workers, "workers", 0, "values built and run concurrently (default 1)")
	f.StringVar(&flags.ReportDir, "report-dir", "", "directory the report is written to (default .)")
	f.BoolVar(&flags.PersistDiagnostics, "persist-diagnostics", false, "write exit code and stderr of failed runs into the report")
	f.BoolVar(&flags.ShowConfig, "show-config", false, "print the effective configuration as YAML and exit")
}

// BindGlobalFlags binds the logging flags to Viper so they can also be set
// through the environment (KEYSWEEP_VERBOSE, KEYSWEEP_QUIET).
func BindGlobalFlags(v *viper.Viper, cmd *cobra.Command) error {
	rootFlags := cmd.Root().PersistentFlags()

	if err := v.BindPFlag("verbose", rootFlags.Lookup("verbose")); err != nil {
		return err
	}
	if err := v.BindPFlag("quiet", rootFlags.Lookup("quiet")); err != nil {
		return err
	}

	v.SetEnvPrefix(constants.EnvPrefix)
	v.AutomaticEnv()

	return nil
}

// invalidInputErrors are the sentinels that mean the operator asked for
// something impossible.
//
//nolint:gochecknoglobals // fixed lookup table
var invalidInputErrors = []error{
	errors.ErrConfigNil,
	errors.ErrConfigInvalidSweep,
	errors.ErrConfigInvalidBuild,
	errors.ErrConfigInvalidRun,
	errors.ErrConfigInvalidReport,
	errors.ErrInvalidRange,
	errors.ErrInvalidParameter,
}

// ExitCodeForError returns the process exit code for err.
//
//   - nil: ExitSuccess
//   - an explicit ExitCodeError: its code
//   - a build failure: ExitBuildFailed
//   - bad configuration, range or flags: ExitInvalidInput
//   - anything else: ExitError
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if code, ok := errors.ExitCode(err); ok {
		return code
	}

	if stderrors.Is(err, errors.ErrBuildFailed) {
		return ExitBuildFailed
	}

	for _, target := range invalidInputErrors {
		if stderrors.Is(err, target) {
			return ExitInvalidInput
		}
	}

	if isInvalidInputError(err.Error()) {
		return ExitInvalidInput
	}

	return ExitError
}

// isInvalidInputError catches cobra's own flag and argument errors.
func isInvalidInputError(errMsg string) bool {
	invalidInputPatterns := []string{
		"unknown flag",
		"unknown shorthand flag",
		"flag needs an argument",
		"invalid argument",
		"if any flags in the group",
		"unknown command",
	}

	for _, pattern := range invalidInputPatterns {
		if strings.Contains(errMsg, pattern) {
			return true
		}
	}
	return false
}
