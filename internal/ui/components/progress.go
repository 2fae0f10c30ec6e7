package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/masterly/internal/ui/theme"
)

// ProgressBar is a one-line horizontal bar.
type ProgressBar struct {
	Label       string
	Percent     float64 // 0..1
	ShowPercent bool
	Width       int
}

func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{Label: label, Percent: percent, ShowPercent: showPercent, Width: width}
}

func (p ProgressBar) View() string {
	var out string
	if p.Label != "" {
		out = theme.Body.Render(p.Label) + "  "
	}
	suffix := ""
	if p.ShowPercent {
		suffix = theme.Subtitle.Render(fmt.Sprintf("  %3d%%", int(p.Percent*100+0.5)))
	}

	barWidth := max(p.Width-lipgloss.Width(out)-lipgloss.Width(suffix), 4)
	filled := min(max(int(float64(barWidth)*p.Percent+0.5), 0), barWidth)

	out += lipgloss.NewStyle().Background(theme.Secondary).Render(strings.Repeat(" ", filled))
	out += lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled))
	return out + suffix
}
