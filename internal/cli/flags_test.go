package cli

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mrz1836/keysweep/internal/build"
	"github.com/mrz1836/keysweep/internal/config"
	"github.com/mrz1836/keysweep/internal/errors"
)

func buildConfig(workDir, output string) config.BuildConfig {
	return config.BuildConfig{WorkDir: workDir, Output: output}
}

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"build failure", &build.Failure{Value: 3, ExitCode: 1}, ExitBuildFailed},
		{"wrapped build failure", fmt.Errorf("sweep: %w", errors.ErrBuildFailed), ExitBuildFailed},
		{"invalid range", errors.Wrap(errors.ErrInvalidRange, "start"), ExitInvalidInput},
		{"invalid config", errors.Wrap(errors.ErrConfigInvalidBuild, "define"), ExitInvalidInput},
		{"explicit code", errors.NewExitCodeError(ExitInvalidInput, assert.AnError), ExitInvalidInput},
		{"cobra unknown flag", fmt.Errorf("unknown flag: --keysize"), ExitInvalidInput},
		{"cobra positional", fmt.Errorf(`unknown command "x" for "keysweep"`), ExitInvalidInput},
		{"report write", errors.Wrap(errors.ErrReportWrite, "x"), ExitError},
		{"interrupt", errors.Wrap(errors.ErrInterrupted, "SIGINT"), ExitError},
		{"canceled", context.Canceled, ExitError},
		{"locked", errors.ErrLocked, ExitError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExitCodeForError(tc.err))
		})
	}
}
