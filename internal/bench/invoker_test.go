package bench_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/keysweep/internal/bench"
	kserrors "github.com/mrz1836/keysweep/internal/errors"
	"github.com/mrz1836/keysweep/internal/process"
	"github.com/mrz1836/keysweep/internal/testutil"
)

func testContext() context.Context {
	logger := zerolog.Nop()
	return logger.WithContext(context.Background())
}

type runnerFunc func(ctx context.Context, req process.Request) process.Result

func (f runnerFunc) Run(ctx context.Context, req process.Request) process.Result {
	return f(ctx, req)
}

func TestInvoker_Run_Success(t *testing.T) {
	var got []string
	runner := runnerFunc(func(_ context.Context, req process.Request) process.Result {
		got = req.Args
		return testutil.OK("ok1")
	})
	inv := bench.NewInvoker(runner)

	out := inv.Run(testContext(), 1, "./experiment.o")

	assert.True(t, out.Success)
	assert.Equal(t, 1, out.Value)
	assert.Equal(t, "ok1", out.Stdout)
	assert.Empty(t, out.Stderr)
	require.NoError(t, out.Err())
	assert.Equal(t, []string{"./experiment.o"}, got, "artifact runs with no arguments")
}

func TestInvoker_Run_Failure(t *testing.T) {
	runner := runnerFunc(func(_ context.Context, _ process.Request) process.Result {
		return testutil.Fail(2, "boom")
	})
	inv := bench.NewInvoker(runner)

	out := inv.Run(testContext(), 2, "./experiment.o")

	assert.False(t, out.Success)
	assert.False(t, out.Canceled)
	assert.Equal(t, 2, out.ExitCode)
	assert.Equal(t, "boom", out.Stderr)
	assert.Empty(t, out.Stdout)
	require.ErrorIs(t, out.Err(), kserrors.ErrRunFailed)
}

func TestInvoker_Run_MissingArtifactIsRunFailure(t *testing.T) {
	inv := bench.NewInvoker(nil)
	missing := filepath.Join(t.TempDir(), "experiment.o")

	out := inv.Run(testContext(), 4, missing)

	assert.False(t, out.Success)
	assert.False(t, out.Canceled)
	assert.Equal(t, process.LaunchFailureExitCode, out.ExitCode)
	assert.NotEmpty(t, out.Stderr)
}

func TestInvoker_Run_BareNameIsNotLookedUpOnPath(t *testing.T) {
	var got string
	runner := runnerFunc(func(_ context.Context, req process.Request) process.Result {
		got = req.Args[0]
		return testutil.OK("")
	})
	inv := bench.NewInvoker(runner)

	inv.Run(testContext(), 1, "experiment.o")

	assert.Equal(t, "."+string(filepath.Separator)+"experiment.o", got)
}

func TestInvoker_Run_Timeout(t *testing.T) {
	runner := runnerFunc(func(ctx context.Context, _ process.Request) process.Result {
		<-ctx.Done()
		return process.Result{ExitCode: -1, Err: ctx.Err(), Stderr: []byte("signal: killed")}
	})
	inv := bench.NewInvoker(runner, bench.WithTimeout(time.Millisecond))

	out := inv.Run(testContext(), 9, "./experiment.o")

	assert.False(t, out.Success)
	assert.False(t, out.Canceled, "a timeout is an ordinary run failure")
	assert.Equal(t, "signal: killed", out.Stderr)
}

func TestInvoker_Run_ParentCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(testContext())
	runner := runnerFunc(func(_ context.Context, _ process.Request) process.Result {
		cancel()
		return process.Result{ExitCode: -1, Err: context.Canceled}
	})
	inv := bench.NewInvoker(runner)

	out := inv.Run(ctx, 1, "./experiment.o")

	assert.True(t, out.Canceled)
	assert.False(t, out.Success)
}

func TestInvoker_Run_RealArtifact(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	dir := t.TempDir()
	script := filepath.Join(dir, "experiment.o")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\necho \"inserted 100000\"\n"), 0o755)) //nolint:gosec // test executable

	var live bytes.Buffer
	inv := bench.NewInvoker(nil, bench.WithDir(dir), bench.WithLiveOutput(&live))

	out := inv.Run(testContext(), 1, "experiment.o")

	require.True(t, out.Success, "stderr: %s", out.Stderr)
	assert.Equal(t, "inserted 100000\n", out.Stdout)
	assert.Equal(t, "inserted 100000\n", live.String())
}

func TestOutcome_Constructors(t *testing.T) {
	ok := bench.Succeeded(3, "done\n")
	assert.True(t, ok.Success)
	require.NoError(t, ok.Err())

	failed := bench.Failed(3, 139, "segfault")
	assert.False(t, failed.Success)
	assert.Contains(t, failed.Err().Error(), "code 139")
}
