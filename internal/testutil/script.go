package testutil

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/mrz1836/keysweep/internal/process"
)

// OK builds a successful process result with the given stdout.
func OK(stdout string) process.Result {
	return process.Result{Stdout: []byte(stdout)}
}

// Fail builds a failed process result with the given exit code and stderr.
func Fail(code int, stderr string) process.Result {
	return process.Result{
		ExitCode: code,
		Stderr:   []byte(stderr),
		Err:      fmt.Errorf("%w: code %d", ErrMockExit, code),
	}
}

// Script is a process.Runner that plays the role of both the compiler and
// the compiled benchmark.
//
// A request whose argv contains "-o" is treated as a build: the parameter
// value is read from the -D<Define>=<value> argument and the artifact path
// from the argument after -o. Any other request is treated as a run of a
// previously built artifact. Unknown values succeed with empty output.
type Script struct {
	// Define is the preprocessor symbol carrying the value (e.g. "KEYSIZE").
	Define string
	// Builds maps a value to its compiler result.
	Builds map[int]process.Result
	// Runs maps a value to its benchmark result.
	Runs map[int]process.Result

	mu        sync.Mutex
	artifacts map[string]int
	calls     [][]string
	built     []int
	ran       []int
}

// NewScript creates an empty script for the given define symbol.
func NewScript(define string) *Script {
	return &Script{
		Define: define,
		Builds: make(map[int]process.Result),
		Runs:   make(map[int]process.Result),
	}
}

// Run implements process.Runner.
func (s *Script) Run(ctx context.Context, req process.Request) process.Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls = append(s.calls, append([]string(nil), req.Args...))
	if err := ctx.Err(); err != nil {
		return process.Result{ExitCode: process.LaunchFailureExitCode, Err: err}
	}
	if s.artifacts == nil {
		s.artifacts = make(map[string]int)
	}

	if artifact, value, ok := s.parseBuild(req.Args); ok {
		s.built = append(s.built, value)
		res, found := s.Builds[value]
		if !found || res.Success() {
			s.artifacts[filepath.Clean(artifact)] = value
		}
		if req.LiveOutput != nil {
			_, _ = req.LiveOutput.Write(res.Stderr)
		}
		return res
	}

	if len(req.Args) == 0 {
		return process.Result{ExitCode: process.LaunchFailureExitCode, Err: process.ErrNoCommand}
	}
	value, ok := s.artifacts[filepath.Clean(req.Args[0])]
	if !ok {
		return process.Result{
			ExitCode: process.LaunchFailureExitCode,
			Stderr:   []byte(ErrMockLaunch.Error()),
			Err:      ErrMockLaunch,
		}
	}
	s.ran = append(s.ran, value)
	res := s.Runs[value]
	if req.LiveOutput != nil {
		_, _ = req.LiveOutput.Write(res.Stdout)
	}
	return res
}

// parseBuild extracts the artifact path and value from a compiler argv.
func (s *Script) parseBuild(args []string) (artifact string, value int, ok bool) {
	prefix := "-D" + s.Define + "="
	found := false
	for i, arg := range args {
		if arg == "-o" && i+1 < len(args) {
			artifact = args[i+1]
			found = true
		}
		if strings.HasPrefix(arg, prefix) {
			v, err := strconv.Atoi(strings.TrimPrefix(arg, prefix))
			if err == nil {
				value = v
			}
		}
	}
	return artifact, value, found
}

// Calls returns a copy of every argv received, in order.
func (s *Script) Calls() [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][]string, len(s.calls))
	copy(out, s.calls)
	return out
}

// Built returns the values compiled, in call order.
func (s *Script) Built() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.built...)
}

// Ran returns the values whose artifact was executed, in call order.
func (s *Script) Ran() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.ran...)
}

var _ process.Runner = (*Script)(nil)
