package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordpair/internal/ui/theme"
)

// ProgressBar displays a horizontal bar. Percent is clamped to [0, 1].
type ProgressBar struct {
	Label   string
	Percent float64
	Suffix  string
	Width   int
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, percent float64, width int) ProgressBar {
	return ProgressBar{Label: label, Percent: percent, Width: width}
}

// Countdown returns a bar that drains as remaining approaches zero, labelled
// with the whole seconds left.
func Countdown(remainingSecs, totalSecs float64, width int) ProgressBar {
	pct := 0.0
	if totalSecs > 0 {
		pct = remainingSecs / totalSecs
	}
	secs := int(remainingSecs + 0.999)
	if secs < 0 {
		secs = 0
	}
	return ProgressBar{Percent: pct, Suffix: fmt.Sprintf("%ds", secs), Width: width}
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string
	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	suffix := ""
	if p.Suffix != "" {
		suffix = lipgloss.NewStyle().Foreground(theme.TextDim).Render("  " + p.Suffix)
	}

	barWidth := p.Width - lipgloss.Width(result) - lipgloss.Width(suffix)
	if barWidth < 4 {
		barWidth = 4
	}

	pct := p.Percent
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}
	filled := int(float64(barWidth) * pct)

	result += lipgloss.NewStyle().Background(theme.Secondary).Render(strings.Repeat(" ", filled))
	result += lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled))
	return result + suffix
}
