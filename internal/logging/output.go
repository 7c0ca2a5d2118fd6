// Package logging prepares captured compiler and benchmark output for log
// fields.
//
// Compilers colorize diagnostics and template errors can run to thousands of
// lines. Escape sequences are stripped and the text is capped so one failed
// build cannot flood the rotating log file. The report file always receives
// the untouched output; this package only affects logs.
package logging

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
	"github.com/rs/zerolog"

	"github.com/mrz1836/keysweep/internal/constants"
)

// CleanOutput strips terminal escape sequences and trailing newlines, then
// truncates s to constants.LogOutputMaxBytes.
func CleanOutput(s string) string {
	return Truncate(strings.TrimRight(ansi.Strip(s), "\r\n"), constants.LogOutputMaxBytes)
}

// Truncate cuts s to at most limit bytes on a rune boundary and notes how
// much was dropped. A limit of zero or less disables truncation.
func Truncate(s string, limit int) string {
	if limit <= 0 || len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return fmt.Sprintf("%s... (%d bytes truncated)", s[:cut], len(s)-cut)
}

// Output adds a cleaned process output field to e.
func Output(e *zerolog.Event, key, s string) *zerolog.Event {
	return e.Str(key, CleanOutput(s))
}
