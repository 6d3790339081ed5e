package components

import (
	"strings"

	"github.com/abhisek/certprep/internal/ui/theme"
)

// ScoreBar draws a fraction as a fixed-width bar of block characters.
type ScoreBar struct {
	Percent float64
	Width   int
}

// NewScoreBar creates a score bar.
func NewScoreBar(percent float64, width int) ScoreBar {
	return ScoreBar{Percent: percent, Width: width}
}

// Cells returns how many of the Width cells are filled.
func (b ScoreBar) Cells() int {
	width := b.Width
	if width < 4 {
		width = 4
	}
	filled := int(float64(width) * b.Percent)
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return filled
}

// View renders the bar.
func (b ScoreBar) View() string {
	width := max(b.Width, 4)
	filled := b.Cells()
	return theme.BarFilled.Render(strings.Repeat("█", filled)) +
		theme.BarEmpty.Render(strings.Repeat("░", width-filled))
}
