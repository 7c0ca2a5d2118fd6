package cli

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/mrz1836/keysweep/internal/config"
	"github.com/mrz1836/keysweep/internal/constants"
	"github.com/mrz1836/keysweep/internal/errors"
)

//nolint:gochecknoglobals // the open log file is closed once on shutdown
var (
	logFileWriter   io.WriteCloser
	logFileWriterMu sync.Mutex
	zerologGlobalMu sync.Mutex
)

// initCommandLogger builds the logger for one command invocation.
func initCommandLogger(env environment, verbose, quiet bool) zerolog.Logger {
	if env.logOutput != nil {
		return InitLoggerWithWriter(verbose, quiet, env.logOutput)
	}
	return InitLogger(verbose, quiet)
}

// InitLogger creates the CLI logger.
//
// Log levels:
//   - verbose=true: Debug
//   - quiet=true: Warn
//   - default: Info
//
// Console output is human-readable when stderr is a terminal and NO_COLOR is
// unset, JSON otherwise. Logs are also appended to
// ~/.keysweep/logs/keysweep.log with rotation. If that file cannot be opened
// the logger continues with console output only.
func InitLogger(verbose, quiet bool) zerolog.Logger {
	var writer io.Writer = selectOutput()

	if fileWriter, err := createLogFileWriter(); err == nil {
		logFileWriterMu.Lock()
		logFileWriter = fileWriter
		logFileWriterMu.Unlock()
		writer = zerolog.MultiLevelWriter(writer, fileWriter)
	}

	logger := zerolog.New(writer).Level(selectLevel(verbose, quiet)).With().Timestamp().Logger()
	setGlobalLogger(logger)
	return logger
}

// InitLoggerWithWriter creates a logger writing only to w.
func InitLoggerWithWriter(verbose, quiet bool, w io.Writer) zerolog.Logger {
	logger := zerolog.New(w).Level(selectLevel(verbose, quiet)).With().Timestamp().Logger()
	setGlobalLogger(logger)
	return logger
}

// setGlobalLogger points the zerolog/log package at the CLI logger.
func setGlobalLogger(logger zerolog.Logger) {
	zerologGlobalMu.Lock()
	defer zerologGlobalMu.Unlock()
	log.Logger = logger
}

// CloseLogFile closes the rotating log file if it was opened.
func CloseLogFile() {
	logFileWriterMu.Lock()
	defer logFileWriterMu.Unlock()
	if logFileWriter != nil {
		_ = logFileWriter.Close()
		logFileWriter = nil
	}
}

// selectLevel determines the log level from the verbosity flags.
func selectLevel(verbose, quiet bool) zerolog.Level {
	switch {
	case verbose:
		return zerolog.DebugLevel
	case quiet:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}

// selectOutput picks the console log writer.
func selectOutput() io.Writer {
	if term.IsTerminal(int(os.Stderr.Fd())) && os.Getenv("NO_COLOR") == "" {
		return zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.Kitchen,
		}
	}
	return os.Stderr
}

// createLogFileWriter opens the rotating CLI log file.
func createLogFileWriter() (io.WriteCloser, error) {
	logPath, err := LogFilePath()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0o750); err != nil {
		return nil, errors.Wrap(err, "failed to create log directory")
	}

	return &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    constants.LogMaxSizeMB,
		MaxBackups: constants.LogMaxBackups,
		MaxAge:     constants.LogMaxAgeDays,
		Compress:   constants.LogCompress,
	}, nil
}

// LogFilePath returns the path of the rotating CLI log file.
func LogFilePath() (string, error) {
	home, err := config.HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, constants.LogsDir, constants.CLILogFileName), nil
}
