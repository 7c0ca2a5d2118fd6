package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/mrz1836/keysweep/internal/errors"
)

// Output is the sweep's console surface.
type Output interface {
	// Running announces that a value is about to be built and run.
	// index is 1-based.
	Running(value, index, total int)
	// RunFailed reports a failed benchmark run.
	RunFailed(value, exitCode int, stderr string)
	// BuildFailed prints the compiler's diagnostics.
	BuildFailed(value, exitCode int, stderr string)
	// Success prints a success message.
	Success(msg string)
	// Info prints an informational message.
	Info(msg string)
	// Error prints a fatal error with its suggested action.
	Error(err error)
}

// NewOutput picks the output variant. Quiet suppresses progress and
// informational lines but keeps failures and errors.
func NewOutput(w io.Writer, tty, quiet bool) Output {
	var out Output
	if tty {
		out = NewTTYOutput(w)
	} else {
		out = NewPlainOutput(w)
	}
	if quiet {
		return quietOutput{Output: out}
	}
	return out
}

// TTYOutput styles messages with lipgloss and draws a progress bar.
type TTYOutput struct {
	w      io.Writer
	styles *OutputStyles
	bar    *ProgressBar
}

// NewTTYOutput creates a TTYOutput. It honors NO_COLOR.
func NewTTYOutput(w io.Writer) *TTYOutput {
	CheckNoColor()
	return &TTYOutput{
		w:      w,
		styles: NewOutputStyles(),
		bar:    NewProgressBar(DefaultProgressWidth),
	}
}

// Running prints "Running keysize N" followed by the progress bar.
func (o *TTYOutput) Running(value, index, total int) {
	_, _ = fmt.Fprintf(o.w, "%s %s\n",
		o.styles.Running.Render(fmt.Sprintf("Running keysize %d", value)),
		o.styles.Dim.Render(Counter(index, total)))
	_, _ = fmt.Fprintln(o.w, o.bar.Render(Fraction(index, total)))
}

// RunFailed prints the failure status and the captured stderr.
func (o *TTYOutput) RunFailed(_, exitCode int, stderr string) {
	_, _ = fmt.Fprintln(o.w, o.styles.Failure.Render(fmt.Sprintf("Status : FAIL %d", exitCode)))
	_, _ = fmt.Fprintln(o.w, o.styles.Dim.Render("stderr: "+strings.TrimRight(stderr, "\n")))
}

// BuildFailed prints the compiler's exit code and stderr.
func (o *TTYOutput) BuildFailed(value, exitCode int, stderr string) {
	_, _ = fmt.Fprintln(o.w, o.styles.Error.Render(
		fmt.Sprintf("✗ build of keysize %d failed with exit code %d", value, exitCode)))
	if s := strings.TrimRight(stderr, "\n"); s != "" {
		_, _ = fmt.Fprintln(o.w, s)
	}
}

// Success prints a green check line.
func (o *TTYOutput) Success(msg string) {
	_, _ = fmt.Fprintln(o.w, o.styles.Success.Render("✓ "+msg))
}

// Info prints a plain informational line.
func (o *TTYOutput) Info(msg string) {
	_, _ = fmt.Fprintln(o.w, o.styles.Info.Render(msg))
}

// Error prints the user-facing message, the suggested action, and the
// underlying error when it adds detail.
func (o *TTYOutput) Error(err error) {
	if err == nil {
		return
	}
	msg, action := errors.Actionable(err)
	_, _ = fmt.Fprintln(o.w, o.styles.Error.Render("✗ "+msg))
	if detail := err.Error(); detail != msg {
		_, _ = fmt.Fprintln(o.w, o.styles.Dim.Render("  "+detail))
	}
	if action != "" {
		_, _ = fmt.Fprintln(o.w, o.styles.Dim.Render("  ▸ Try: "+action))
	}
}

// PlainOutput writes unstyled lines, for pipes and CI logs.
type PlainOutput struct {
	w io.Writer
}

// NewPlainOutput creates a PlainOutput.
func NewPlainOutput(w io.Writer) *PlainOutput {
	return &PlainOutput{w: w}
}

// Running prints "Running keysize N (index/total)".
func (o *PlainOutput) Running(value, index, total int) {
	_, _ = fmt.Fprintf(o.w, "Running keysize %d (%s)\n", value, Counter(index, total))
}

// RunFailed prints the failure status and the captured stderr.
func (o *PlainOutput) RunFailed(_, exitCode int, stderr string) {
	_, _ = fmt.Fprintf(o.w, "Status : FAIL %d\n", exitCode)
	_, _ = fmt.Fprintf(o.w, "stderr: %s\n", strings.TrimRight(stderr, "\n"))
}

// BuildFailed prints the compiler's exit code and stderr.
func (o *PlainOutput) BuildFailed(value, exitCode int, stderr string) {
	_, _ = fmt.Fprintf(o.w, "build of keysize %d failed with exit code %d\n", value, exitCode)
	if s := strings.TrimRight(stderr, "\n"); s != "" {
		_, _ = fmt.Fprintln(o.w, s)
	}
}

// Success prints msg.
func (o *PlainOutput) Success(msg string) {
	_, _ = fmt.Fprintln(o.w, msg)
}

// Info prints msg.
func (o *PlainOutput) Info(msg string) {
	_, _ = fmt.Fprintln(o.w, msg)
}

// Error prints the user-facing message, the underlying error when it adds
// detail, and the suggested action.
func (o *PlainOutput) Error(err error) {
	if err == nil {
		return
	}
	msg, action := errors.Actionable(err)
	_, _ = fmt.Fprintf(o.w, "error: %s\n", msg)
	if detail := err.Error(); detail != msg {
		_, _ = fmt.Fprintf(o.w, "  %s\n", detail)
	}
	if action != "" {
		_, _ = fmt.Fprintf(o.w, "hint: %s\n", action)
	}
}

// quietOutput drops progress and info lines.
type quietOutput struct {
	Output
}

func (quietOutput) Running(int, int, int) {}

func (quietOutput) Info(string) {}
