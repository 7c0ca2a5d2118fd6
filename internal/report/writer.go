// Package report persists a finished sweep to a timestamped text file.
package report

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/mrz1836/keysweep/internal/clock"
	"github.com/mrz1836/keysweep/internal/constants"
	"github.com/mrz1836/keysweep/internal/errors"
	"github.com/mrz1836/keysweep/internal/sweep"
)

// Writer writes reports as <dir>/<prefix>-<YYYYMMDD-HHMMSS>.txt.
type Writer struct {
	dir    string
	prefix string
	clock  clock.Clock
	text   sweep.TextOptions
}

// Option configures a Writer.
type Option func(*Writer)

// WithDir sets the directory reports are written to.
func WithDir(dir string) Option {
	return func(w *Writer) {
		w.dir = dir
	}
}

// WithPrefix sets the file name prefix.
func WithPrefix(prefix string) Option {
	return func(w *Writer) {
		w.prefix = prefix
	}
}

// WithClock sets the clock used for the file name timestamp.
func WithClock(c clock.Clock) Option {
	return func(w *Writer) {
		w.clock = c
	}
}

// WithDiagnostics persists run-failure diagnostics below the error marker.
func WithDiagnostics(enabled bool) Option {
	return func(w *Writer) {
		w.text.PersistDiagnostics = enabled
	}
}

// NewWriter creates a writer for the current directory with the default prefix.
func NewWriter(opts ...Option) *Writer {
	w := &Writer{
		dir:    ".",
		prefix: constants.ReportPrefix,
		clock:  clock.RealClock{},
	}
	for _, o := range opts {
		o(w)
	}
	return w
}

// FileName returns the report file name for a timestamp.
func (w *Writer) FileName(t time.Time) string {
	return w.prefix + "-" + t.Format(constants.ReportTimestampLayout) + constants.ReportExtension
}

// Write renders r and writes it in a single call, creating or truncating the
// file. The timestamp is read once, after the report has been assembled.
// It returns the path written.
func (w *Writer) Write(ctx context.Context, r *sweep.Report) (string, error) {
	if r == nil {
		return "", errors.Wrap(errors.ErrEmptyValue, "report is nil")
	}

	path := filepath.Join(w.dir, w.FileName(w.clock.Now()))
	body := r.Text(w.text)

	if err := os.WriteFile(path, []byte(body), constants.ReportFileMode); err != nil {
		return "", errors.Wrapf(errors.ErrReportWrite, "%s: %v", path, err)
	}

	zerolog.Ctx(ctx).Info().
		Str("component", "report").
		Str("sweep_id", r.ID).
		Str("path", path).
		Int("bytes", len(body)).
		Int("sections", len(r.Sections)).
		Msg("report written")

	return path, nil
}
