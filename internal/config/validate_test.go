package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/keysweep/internal/errors"
)

func TestValidate_DefaultConfigIsValid(t *testing.T) {
	require.NoError(t, Validate(DefaultConfig()))
}

func TestValidate_NilConfig(t *testing.T) {
	require.ErrorIs(t, Validate(nil), errors.ErrConfigNil)
}

func TestValidate_Rules(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
		wantMsg string
	}{
		{"start below one", func(c *Config) { c.Sweep.Start = 0 }, errors.ErrConfigInvalidSweep, "sweep.start"},
		{"end below start", func(c *Config) { c.Sweep.Start, c.Sweep.End = 10, 9 }, errors.ErrConfigInvalidSweep, "sweep.end"},
		{"zero workers", func(c *Config) { c.Sweep.Workers = 0 }, errors.ErrConfigInvalidSweep, "sweep.workers"},
		{"too many workers", func(c *Config) { c.Sweep.Workers = 65 }, errors.ErrConfigInvalidSweep, "sweep.workers"},
		{"empty compiler", func(c *Config) { c.Build.Compiler = " " }, errors.ErrConfigInvalidBuild, "build.compiler"},
		{"empty output", func(c *Config) { c.Build.Output = "" }, errors.ErrConfigInvalidBuild, "build.output"},
		{"no sources", func(c *Config) { c.Build.Sources = nil }, errors.ErrConfigInvalidBuild, "build.sources"},
		{"bad define", func(c *Config) { c.Build.Define = "1KEY" }, errors.ErrConfigInvalidBuild, "build.define"},
		{"define with spaces", func(c *Config) { c.Build.Define = "KEY SIZE" }, errors.ErrConfigInvalidBuild, "build.define"},
		{"negative build timeout", func(c *Config) { c.Build.Timeout = -time.Second }, errors.ErrConfigInvalidBuild, "build.timeout"},
		{"negative run timeout", func(c *Config) { c.Run.Timeout = -time.Second }, errors.ErrConfigInvalidRun, "run.timeout"},
		{"empty report dir", func(c *Config) { c.Report.Dir = "" }, errors.ErrConfigInvalidReport, "report.dir"},
		{"empty prefix", func(c *Config) { c.Report.Prefix = "" }, errors.ErrConfigInvalidReport, "report.prefix"},
		{"prefix with separator", func(c *Config) { c.Report.Prefix = "out/keysize" }, errors.ErrConfigInvalidReport, "report.prefix"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)

			err := Validate(cfg)

			require.ErrorIs(t, err, tc.wantErr)
			assert.Contains(t, err.Error(), tc.wantMsg)
		})
	}
}

func TestValidate_AcceptsBoundaries(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Sweep.Start, cfg.Sweep.End = 5, 5
	cfg.Sweep.Workers = 64
	cfg.Build.Define = "_KEY_SIZE2"

	require.NoError(t, Validate(cfg))
}
