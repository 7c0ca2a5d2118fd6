package config

import (
	"regexp"
	"strings"

	"github.com/mrz1836/keysweep/internal/constants"
	"github.com/mrz1836/keysweep/internal/errors"
)

// defineNamePattern matches a valid C preprocessor identifier.
var defineNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`) //nolint:gochecknoglobals // compiled once

// Validate checks the configuration for invalid or inconsistent values.
// It returns an error describing the first validation failure found.
//
// Validation rules:
//   - sweep.start must be at least 1 and sweep.end not below it
//   - sweep.workers must be between 1 and 64
//   - build.compiler, build.output and build.sources must be set
//   - build.define must be a valid preprocessor identifier
//   - build.timeout and run.timeout must not be negative
//   - report.dir and report.prefix must be set; the prefix is a file name
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.ErrConfigNil
	}

	if err := validateSweepConfig(&cfg.Sweep); err != nil {
		return err
	}
	if err := validateBuildConfig(&cfg.Build); err != nil {
		return err
	}
	if err := validateRunConfig(&cfg.Run); err != nil {
		return err
	}
	return validateReportConfig(&cfg.Report)
}

func validateSweepConfig(cfg *SweepConfig) error {
	if cfg.Start < 1 {
		return errors.Wrapf(errors.ErrConfigInvalidSweep,
			"sweep.start must be at least 1, got %d", cfg.Start)
	}
	if cfg.End < cfg.Start {
		return errors.Wrapf(errors.ErrConfigInvalidSweep,
			"sweep.end (%d) must not be below sweep.start (%d)", cfg.End, cfg.Start)
	}
	if cfg.Workers < 1 || cfg.Workers > constants.MaxWorkers {
		return errors.Wrapf(errors.ErrConfigInvalidSweep,
			"sweep.workers must be between 1 and %d, got %d", constants.MaxWorkers, cfg.Workers)
	}
	return nil
}

func validateBuildConfig(cfg *BuildConfig) error {
	if strings.TrimSpace(cfg.Compiler) == "" {
		return errors.Wrap(errors.ErrConfigInvalidBuild, "build.compiler must not be empty")
	}
	if strings.TrimSpace(cfg.Output) == "" {
		return errors.Wrap(errors.ErrConfigInvalidBuild, "build.output must not be empty")
	}
	if len(cfg.Sources) == 0 {
		return errors.Wrap(errors.ErrConfigInvalidBuild, "build.sources must list at least one file")
	}
	if !defineNamePattern.MatchString(cfg.Define) {
		return errors.Wrapf(errors.ErrConfigInvalidBuild,
			"build.define must be a preprocessor identifier, got %q", cfg.Define)
	}
	if cfg.Timeout < 0 {
		return errors.Wrapf(errors.ErrConfigInvalidBuild,
			"build.timeout must not be negative, got %s", cfg.Timeout)
	}
	return nil
}

func validateRunConfig(cfg *RunConfig) error {
	if cfg.Timeout < 0 {
		return errors.Wrapf(errors.ErrConfigInvalidRun,
			"run.timeout must not be negative, got %s", cfg.Timeout)
	}
	return nil
}

func validateReportConfig(cfg *ReportConfig) error {
	if strings.TrimSpace(cfg.Dir) == "" {
		return errors.Wrap(errors.ErrConfigInvalidReport, "report.dir must not be empty")
	}
	if strings.TrimSpace(cfg.Prefix) == "" {
		return errors.Wrap(errors.ErrConfigInvalidReport, "report.prefix must not be empty")
	}
	if strings.ContainsAny(cfg.Prefix, `/\`) {
		return errors.Wrapf(errors.ErrConfigInvalidReport,
			"report.prefix must be a file name, got %q", cfg.Prefix)
	}
	return nil
}
