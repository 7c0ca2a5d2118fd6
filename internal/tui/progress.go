package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
)

// DefaultProgressWidth is the bar width used by TTYOutput.
const DefaultProgressWidth = 40

// ProgressBar renders a static sweep progress bar.
type ProgressBar struct {
	bar progress.Model
}

// NewProgressBar creates a bar of the given width. Without color support
// the bar uses a solid fill.
func NewProgressBar(width int) *ProgressBar {
	fill := progress.WithScaledGradient("#0087AF", "#00D7FF")
	if !HasColorSupport() {
		fill = progress.WithSolidFill("#808080")
	}
	return &ProgressBar{
		bar: progress.New(progress.WithWidth(width), fill),
	}
}

// Render returns the bar for percent, clamped to [0, 1].
func (pb *ProgressBar) Render(percent float64) string {
	return pb.bar.ViewAs(clamp(percent))
}

// Width returns the bar width.
func (pb *ProgressBar) Width() int {
	return pb.bar.Width
}

// Fraction returns the share of work finished before the index-th value
// (1-based) of total starts.
func Fraction(index, total int) float64 {
	if total <= 0 {
		return 0
	}
	return clamp(float64(index-1) / float64(total))
}

// Counter formats a 1-based position as "index/total".
func Counter(index, total int) string {
	return fmt.Sprintf("%d/%d", index, total)
}

func clamp(percent float64) float64 {
	switch {
	case percent < 0:
		return 0
	case percent > 1:
		return 1
	default:
		return percent
	}
}
