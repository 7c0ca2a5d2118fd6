// Package constants provides centralized constant values used throughout keysweep.
// This package is the single source of truth for shared constants and MUST NOT
// import any other internal packages.
package constants

// Sweep range defaults. The range is inclusive on both ends.
const (
	// DefaultRangeStart is the first parameter value of a default sweep.
	DefaultRangeStart = 1

	// DefaultRangeEnd is the last parameter value of a default sweep.
	DefaultRangeEnd = 99

	// DefaultWorkers runs the sweep strictly sequentially.
	DefaultWorkers = 1

	// MaxWorkers caps the concurrent sweep pool.
	MaxWorkers = 64
)

// Toolchain defaults reproduce the reference benchmark build.
const (
	// DefaultCompiler is the compiler executable used for every build.
	DefaultCompiler = "g++"

	// DefaultArtifactPath is the fixed, reused output path of the compiled benchmark.
	DefaultArtifactPath = "./experiment.o"

	// DefaultDefineName is the preprocessor symbol that carries the parameter value.
	DefaultDefineName = "KEYSIZE"
)

// DefaultCompilerFlags returns the flags placed before the output path.
func DefaultCompilerFlags() []string {
	return []string{
		"-std=c++17",
		"-m64",
		"-D_REENTRANT",
		"-fno-strict-aliasing",
		"-I./atomic_ops",
		"-DINTEL",
		"-Wno-unused-value",
		"-Wno-format",
	}
}

// DefaultSources returns the benchmark source files.
func DefaultSources() []string {
	return []string{"main-gu-zipfian.c"}
}

// DefaultLinkFlags returns the flags placed after the source list.
func DefaultLinkFlags() []string {
	return []string{"-lpmemobj", "-lpmem", "-Og", "-lpthread"}
}

// Report layout.
const (
	// ReportPrefix is the file name prefix of persisted reports.
	ReportPrefix = "keysize-experiment"

	// ReportExtension is the file extension of persisted reports.
	ReportExtension = ".txt"

	// ReportTimestampLayout formats the report timestamp as YYYYMMDD-HHMMSS.
	ReportTimestampLayout = "20060102-150405"

	// SectionLabel names the parameter in every section header.
	SectionLabel = "Keysize"

	// ErrorMarker replaces the body of a section whose run failed.
	ErrorMarker = "    Error!"

	// DiagnosticIndent prefixes persisted diagnostic lines.
	DiagnosticIndent = "    "

	// ReportFileMode is the permission mode of written reports.
	ReportFileMode = 0o644
)

// Directory and file names used by keysweep for its own data.
const (
	// KeysweepHome is the hidden directory name where keysweep stores its data.
	KeysweepHome = ".keysweep"

	// HomeEnvVar overrides the keysweep home directory.
	HomeEnvVar = "KEYSWEEP_HOME"

	// EnvPrefix is the prefix of environment variable overrides.
	EnvPrefix = "KEYSWEEP"

	// ConfigFileName is the name of global and project configuration files.
	ConfigFileName = "config.yaml"

	// LogsDir is the directory name where log files are stored.
	LogsDir = "logs"

	// CLILogFileName is the name of the rotating CLI log file.
	CLILogFileName = "keysweep.log"

	// LockSuffix is appended to the artifact path to name its lock file.
	LockSuffix = ".lock"
)

// Log rotation settings.
const (
	// LogMaxSizeMB is the size at which the CLI log rotates.
	LogMaxSizeMB = 10

	// LogMaxBackups is the number of rotated log files kept.
	LogMaxBackups = 3

	// LogMaxAgeDays is the age after which rotated logs are removed.
	LogMaxAgeDays = 28

	// LogCompress gzips rotated logs.
	LogCompress = true
)

// LogOutputMaxBytes caps captured process output copied into log fields.
const LogOutputMaxBytes = 4096
