package config

import (
	"github.com/mrz1836/keysweep/internal/constants"
)

// DefaultConfig returns a new Config reproducing the reference experiment:
// keysizes 1 through 99, built with g++ into ./experiment.o, report in the
// current directory.
func DefaultConfig() *Config {
	return &Config{
		Sweep: SweepConfig{
			Start:   constants.DefaultRangeStart,
			End:     constants.DefaultRangeEnd,
			Workers: constants.DefaultWorkers,
		},
		Build: BuildConfig{
			Compiler:  constants.DefaultCompiler,
			Flags:     constants.DefaultCompilerFlags(),
			Output:    constants.DefaultArtifactPath,
			Sources:   constants.DefaultSources(),
			LinkFlags: constants.DefaultLinkFlags(),
			Define:    constants.DefaultDefineName,
		},
		Report: ReportConfig{
			Dir:    ".",
			Prefix: constants.ReportPrefix,
		},
	}
}
