package testutil_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/keysweep/internal/process"
	"github.com/mrz1836/keysweep/internal/testutil"
)

func compile(s *testutil.Script, value string, output string) process.Result {
	return s.Run(context.Background(), process.Request{
		Args: []string{"g++", "-o", output, "main.c", "-DKEYSIZE=" + value},
	})
}

func TestScript_BuildThenRun(t *testing.T) {
	s := testutil.NewScript("KEYSIZE")
	s.Runs[3] = testutil.OK("ops=42\n")

	require.True(t, compile(s, "3", "./experiment.o").Success())
	res := s.Run(context.Background(), process.Request{Args: []string{"experiment.o"}})

	require.True(t, res.Success())
	assert.Equal(t, "ops=42\n", string(res.Stdout))
	assert.Equal(t, []int{3}, s.Built())
	assert.Equal(t, []int{3}, s.Ran())
	assert.Len(t, s.Calls(), 2)
}

func TestScript_FailedBuildLeavesNoArtifact(t *testing.T) {
	s := testutil.NewScript("KEYSIZE")
	s.Builds[5] = testutil.Fail(1, "error")

	res := compile(s, "5", "./experiment.o")
	require.False(t, res.Success())
	assert.Equal(t, 1, res.ExitCode)
	require.ErrorIs(t, res.Err, testutil.ErrMockExit)

	run := s.Run(context.Background(), process.Request{Args: []string{"./experiment.o"}})
	assert.Equal(t, process.LaunchFailureExitCode, run.ExitCode)
	require.ErrorIs(t, run.Err, testutil.ErrMockLaunch)
	assert.Empty(t, s.Ran())
}

func TestScript_LiveOutputAndCancel(t *testing.T) {
	s := testutil.NewScript("KEYSIZE")
	s.Runs[1] = testutil.OK("live\n")
	require.True(t, compile(s, "1", "./experiment.o").Success())

	var live bytes.Buffer
	s.Run(context.Background(), process.Request{Args: []string{"./experiment.o"}, LiveOutput: &live})
	assert.Equal(t, "live\n", live.String())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := s.Run(ctx, process.Request{Args: []string{"./experiment.o"}})
	require.ErrorIs(t, res.Err, context.Canceled)
	assert.Equal(t, process.LaunchFailureExitCode, res.ExitCode)
}

func TestScript_EmptyArgs(t *testing.T) {
	s := testutil.NewScript("KEYSIZE")

	res := s.Run(context.Background(), process.Request{})

	require.ErrorIs(t, res.Err, process.ErrNoCommand)
}
