// Package testutil provides testing utilities for keysweep.
//
// This package contains mock errors and a scripted process runner shared by
// the build, bench, sweep and cli tests. It should only be imported by test
// files (*_test.go).
package testutil

import "errors"

// Mock errors for testing purposes.
var (
	// ErrMockLaunch simulates a process that could not be started.
	ErrMockLaunch = errors.New("exec: no such file or directory")

	// ErrMockExit simulates the error returned alongside a non-zero exit.
	ErrMockExit = errors.New("exit status 1")
)
