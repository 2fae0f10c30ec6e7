package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/masterly/internal/ui/theme"
)

// ButtonRow is a horizontal set of buttons with one focused, moved with
// left/right or tab.
type ButtonRow struct {
	Labels  []string
	Focused int
}

func NewButtonRow(labels ...string) ButtonRow {
	return ButtonRow{Labels: labels}
}

// Move shifts focus by dir, wrapping around.
func (b *ButtonRow) Move(dir int) {
	n := len(b.Labels)
	if n == 0 {
		return
	}
	b.Focused = ((b.Focused+dir)%n + n) % n
}

func (b ButtonRow) View() string {
	parts := make([]string, len(b.Labels))
	for i, l := range b.Labels {
		if i == b.Focused {
			parts[i] = theme.ButtonActive.Render(l)
		} else {
			parts[i] = theme.ButtonInactive.Render(l)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, strings.Join(parts, "  "))
}
