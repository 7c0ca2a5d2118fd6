package sweep

import (
	"strconv"
	"strings"
	"time"

	"github.com/mrz1836/keysweep/internal/bench"
	"github.com/mrz1836/keysweep/internal/constants"
)

// Section is the report block for one parameter value.
type Section struct {
	Value   int
	Outcome bench.Outcome
}

// Report is the ordered collection of sections produced by one sweep.
// Sections are always in ascending value order.
type Report struct {
	ID          string
	Range       Range
	Sections    []Section
	StartedAt   time.Time
	CompletedAt time.Time
}

// TextOptions controls how a Report is rendered.
type TextOptions struct {
	// PersistDiagnostics appends the exit code and stderr of failed runs
	// below the error marker. Off by default, which keeps the output
	// identical to the reference format.
	PersistDiagnostics bool
}

// Succeeded returns the number of successful runs.
func (r *Report) Succeeded() int {
	n := 0
	for _, s := range r.Sections {
		if s.Outcome.Success {
			n++
		}
	}
	return n
}

// Failed returns the number of failed runs.
func (r *Report) Failed() int {
	return len(r.Sections) - r.Succeeded()
}

// Duration returns the wall time of the sweep.
func (r *Report) Duration() time.Duration {
	return r.CompletedAt.Sub(r.StartedAt)
}

// Text renders the report body.
//
// Each section is a blank line, the header "Keysize = <v>", and either the
// benchmark stdout verbatim or the error marker line.
func (r *Report) Text(opts TextOptions) string {
	var sb strings.Builder
	for _, s := range r.Sections {
		writeSection(&sb, s, opts)
	}
	return sb.String()
}

func writeSection(sb *strings.Builder, s Section, opts TextOptions) {
	sb.WriteString("\n")
	sb.WriteString(Header(s.Value))
	sb.WriteString("\n")

	if s.Outcome.Success {
		sb.WriteString(s.Outcome.Stdout)
		return
	}

	sb.WriteString(constants.ErrorMarker)
	sb.WriteString("\n")
	if !opts.PersistDiagnostics {
		return
	}

	sb.WriteString(constants.DiagnosticIndent)
	sb.WriteString("exit code: ")
	sb.WriteString(strconv.Itoa(s.Outcome.ExitCode))
	sb.WriteString("\n")

	stderr := strings.TrimRight(s.Outcome.Stderr, "\n")
	if stderr == "" {
		return
	}
	for _, line := range strings.Split(stderr, "\n") {
		sb.WriteString(constants.DiagnosticIndent)
		sb.WriteString(line)
		sb.WriteString("\n")
	}
}

// Header returns the section header for value, without line breaks.
func Header(value int) string {
	return constants.SectionLabel + " = " + strconv.Itoa(value)
}
