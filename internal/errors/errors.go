// Package errors provides centralized error handling for keysweep.
//
// This package defines sentinel errors used for programmatic error categorization
// throughout the application. All error types can be checked using errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// Sentinel errors for error categorization.
var (
	// ErrBuildFailed indicates that the compiler exited non-zero or could not
	// be launched. It is fatal for the whole sweep.
	ErrBuildFailed = errors.New("build failed")

	// ErrRunFailed indicates that the benchmark exited non-zero or could not
	// be launched. The sweep records it and continues.
	ErrRunFailed = errors.New("benchmark run failed")

	// ErrInvalidParameter indicates a parameter value below 1.
	ErrInvalidParameter = errors.New("invalid parameter value")

	// ErrInvalidRange indicates a sweep range that is empty or starts below 1.
	ErrInvalidRange = errors.New("invalid sweep range")

	// ErrConfigNil indicates that a nil config was passed to validation.
	ErrConfigNil = errors.New("config is nil")

	// ErrConfigInvalidSweep indicates an invalid sweep configuration value.
	ErrConfigInvalidSweep = errors.New("invalid sweep configuration")

	// ErrConfigInvalidBuild indicates an invalid build configuration value.
	ErrConfigInvalidBuild = errors.New("invalid build configuration")

	// ErrConfigInvalidRun indicates an invalid run configuration value.
	ErrConfigInvalidRun = errors.New("invalid run configuration")

	// ErrConfigInvalidReport indicates an invalid report configuration value.
	ErrConfigInvalidReport = errors.New("invalid report configuration")

	// ErrReportWrite indicates that the report file could not be written.
	ErrReportWrite = errors.New("report write failed")

	// ErrLocked indicates that another keysweep process holds the artifact lock.
	ErrLocked = errors.New("artifact is locked by another process")

	// ErrInterrupted indicates that the operator interrupted the sweep.
	ErrInterrupted = errors.New("sweep interrupted")

	// ErrEmptyValue indicates that a required value was empty.
	ErrEmptyValue = errors.New("value cannot be empty")
)

// ExitCodeError wraps an error with the process exit code it should produce.
type ExitCodeError struct {
	Code int
	Err  error
}

// NewExitCodeError wraps err so the CLI exits with code.
func NewExitCodeError(code int, err error) *ExitCodeError {
	return &ExitCodeError{Code: code, Err: err}
}

// Error returns the wrapped error message.
func (e *ExitCodeError) Error() string {
	if e.Err == nil {
		return "exit code error"
	}
	return e.Err.Error()
}

// Unwrap returns the wrapped error.
func (e *ExitCodeError) Unwrap() error {
	return e.Err
}

// ExitCode returns the exit code carried by err, and whether one was found.
func ExitCode(err error) (int, bool) {
	var e *ExitCodeError
	if errors.As(err, &e) {
		return e.Code, true
	}
	return 0, false
}
