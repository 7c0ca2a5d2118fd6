package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/keysweep/internal/constants"
)

func TestSelectLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, selectLevel(true, false))
	assert.Equal(t, zerolog.WarnLevel, selectLevel(false, true))
	assert.Equal(t, zerolog.InfoLevel, selectLevel(false, false))
	assert.Equal(t, zerolog.DebugLevel, selectLevel(true, true))
}

func TestInitLoggerWithWriter(t *testing.T) {
	var buf bytes.Buffer
	logger := InitLoggerWithWriter(false, true, &buf)

	logger.Info().Msg("hidden")
	logger.Warn().Int("value", 3).Msg("benchmark run failed")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"value":3`)
	assert.Contains(t, out, "benchmark run failed")
}

func TestLogFilePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv(constants.HomeEnvVar, home)

	path, err := LogFilePath()

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "logs", "keysweep.log"), path)
}

func TestInitLogger_WritesRotatingFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv(constants.HomeEnvVar, home)
	defer CloseLogFile()

	logger := InitLogger(false, false)
	logger.Info().Str("sweep_id", "abc").Msg("starting sweep")
	CloseLogFile()

	data, err := os.ReadFile(filepath.Join(home, "logs", "keysweep.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"sweep_id":"abc"`)
}
