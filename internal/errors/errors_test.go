package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kserrors "github.com/mrz1836/keysweep/internal/errors"
)

func TestSentinelErrors_Messages(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"ErrBuildFailed", kserrors.ErrBuildFailed, "build failed"},
		{"ErrRunFailed", kserrors.ErrRunFailed, "benchmark run failed"},
		{"ErrInvalidRange", kserrors.ErrInvalidRange, "invalid sweep range"},
		{"ErrReportWrite", kserrors.ErrReportWrite, "report write failed"},
		{"ErrInterrupted", kserrors.ErrInterrupted, "sweep interrupted"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.err.Error())
		})
	}
}

func TestWrap(t *testing.T) {
	t.Run("nil error stays nil", func(t *testing.T) {
		require.NoError(t, kserrors.Wrap(nil, "context"))
		require.NoError(t, kserrors.Wrapf(nil, "context %d", 1))
	})

	t.Run("wrapped error keeps chain", func(t *testing.T) {
		err := kserrors.Wrapf(kserrors.ErrBuildFailed, "keysize %d", 7)
		require.Error(t, err)
		assert.Equal(t, "keysize 7: build failed", err.Error())
		assert.ErrorIs(t, err, kserrors.ErrBuildFailed)
	})
}

func TestUserMessage(t *testing.T) {
	assert.Empty(t, kserrors.UserMessage(nil))

	wrapped := fmt.Errorf("sweep: %w", kserrors.ErrBuildFailed)
	assert.Contains(t, kserrors.UserMessage(wrapped), "failed to compile")

	plain := stderrors.New("something odd")
	assert.Equal(t, "something odd", kserrors.UserMessage(plain))
}

func TestActionable(t *testing.T) {
	msg, action := kserrors.Actionable(nil)
	assert.Empty(t, msg)
	assert.Empty(t, action)

	msg, action = kserrors.Actionable(kserrors.ErrLocked)
	assert.Contains(t, msg, "Another keysweep process")
	assert.Contains(t, action, "build.output")

	msg, action = kserrors.Actionable(kserrors.ErrInterrupted)
	assert.Contains(t, msg, "interrupted")
	assert.Empty(t, action)
}

func TestExitCodeError(t *testing.T) {
	err := kserrors.NewExitCodeError(3, kserrors.ErrBuildFailed)
	wrapped := fmt.Errorf("run: %w", err)

	code, ok := kserrors.ExitCode(wrapped)
	require.True(t, ok)
	assert.Equal(t, 3, code)
	assert.ErrorIs(t, wrapped, kserrors.ErrBuildFailed)
	assert.Equal(t, "build failed", err.Error())

	_, ok = kserrors.ExitCode(kserrors.ErrRunFailed)
	assert.False(t, ok)

	assert.Equal(t, "exit code error", (&kserrors.ExitCodeError{Code: 1}).Error())
}
