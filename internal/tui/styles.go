// Package tui renders keysweep's console output.
//
// Styles use lipgloss AdaptiveColor so they read on light and dark
// terminals. NO_COLOR (any value) and TERM=dumb switch lipgloss to the
// ASCII profile; call CheckNoColor before rendering.
package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

//nolint:gochecknoglobals // package-level palette
var (
	// ColorPrimary marks progress and headings.
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#0087AF", Dark: "#00D7FF"}

	// ColorSuccess marks completed sweeps.
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#008700", Dark: "#00FF87"}

	// ColorWarning marks failed benchmark runs.
	ColorWarning = lipgloss.AdaptiveColor{Light: "#AF8700", Dark: "#FFD700"}

	// ColorError marks fatal errors.
	ColorError = lipgloss.AdaptiveColor{Light: "#AF0000", Dark: "#FF5F5F"}

	// ColorMuted is for captured process output and hints.
	ColorMuted = lipgloss.AdaptiveColor{Light: "#585858", Dark: "#6C6C6C"}
)

// OutputStyles holds the styles used by TTYOutput.
type OutputStyles struct {
	Running lipgloss.Style
	Success lipgloss.Style
	Failure lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style
	Dim     lipgloss.Style
}

// NewOutputStyles creates the console styles.
func NewOutputStyles() *OutputStyles {
	return &OutputStyles{
		Running: lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true),
		Success: lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true),
		Failure: lipgloss.NewStyle().Foreground(ColorWarning).Bold(true),
		Error:   lipgloss.NewStyle().Foreground(ColorError).Bold(true),
		Info:    lipgloss.NewStyle().Foreground(ColorPrimary),
		Dim:     lipgloss.NewStyle().Foreground(ColorMuted),
	}
}

// CheckNoColor drops to the ASCII color profile when colors are unwanted.
func CheckNoColor() {
	if !HasColorSupport() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// HasColorSupport reports false when NO_COLOR is present (even empty) or
// TERM is dumb. See https://no-color.org/.
func HasColorSupport() bool {
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return false
	}
	return os.Getenv("TERM") != "dumb"
}
