// Package config provides configuration management for keysweep with layered precedence.
//
// Configuration sources are loaded in the following order (highest precedence first):
//  1. CLI flags (passed via LoadWithOverrides)
//  2. Environment variables (KEYSWEEP_* prefix, e.g. KEYSWEEP_SWEEP_END)
//  3. Explicit config file (--config) or project config (.keysweep/config.yaml)
//  4. Global config (~/.keysweep/config.yaml)
//  5. Built-in defaults
//
// IMPORTANT: This package may import internal/constants and internal/errors,
// but MUST NOT import other internal packages.
package config

import "time"

// Config is the root configuration structure for keysweep.
type Config struct {
	// Sweep controls the parameter range and execution mode.
	Sweep SweepConfig `yaml:"sweep" mapstructure:"sweep"`

	// Build describes the compiler invocation.
	Build BuildConfig `yaml:"build" mapstructure:"build"`

	// Run controls benchmark execution.
	Run RunConfig `yaml:"run" mapstructure:"run"`

	// Report controls where and how the report is written.
	Report ReportConfig `yaml:"report" mapstructure:"report"`
}

// SweepConfig controls the parameter range.
type SweepConfig struct {
	// Start is the first parameter value, inclusive.
	// Default: 1
	Start int `yaml:"start" mapstructure:"start"`

	// End is the last parameter value, inclusive.
	// Default: 99
	End int `yaml:"end" mapstructure:"end"`

	// Workers is the number of values processed concurrently.
	// 1 keeps the sweep strictly sequential. Values above 1 give every
	// parameter its own artifact path.
	// Default: 1, Valid range: 1-64
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// BuildConfig describes the compiler invocation:
//
//	<compiler> <flags...> -o <output> <sources...> <link_flags...> -D<define>=<value>
type BuildConfig struct {
	Compiler  string   `yaml:"compiler" mapstructure:"compiler"`
	Flags     []string `yaml:"flags" mapstructure:"flags"`
	Output    string   `yaml:"output" mapstructure:"output"`
	Sources   []string `yaml:"sources" mapstructure:"sources"`
	LinkFlags []string `yaml:"link_flags" mapstructure:"link_flags"`
	Define    string   `yaml:"define" mapstructure:"define"`

	// Timeout bounds a single compile. Zero means no limit.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// WorkDir is the directory the compiler and benchmark run in.
	// Empty means the current directory.
	WorkDir string `yaml:"work_dir" mapstructure:"work_dir"`
}

// RunConfig controls benchmark execution.
type RunConfig struct {
	// Timeout bounds a single benchmark run. Zero means no limit.
	// A run that times out is recorded as a failure.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// ReportConfig controls the persisted report.
type ReportConfig struct {
	// Dir is the directory the report is written to.
	// Default: "."
	Dir string `yaml:"dir" mapstructure:"dir"`

	// Prefix is the report file name prefix.
	// Default: "keysize-experiment"
	Prefix string `yaml:"prefix" mapstructure:"prefix"`

	// PersistDiagnostics writes the exit code and stderr of failed runs
	// into the report below the error marker.
	// Default: false
	PersistDiagnostics bool `yaml:"persist_diagnostics" mapstructure:"persist_diagnostics"`
}
