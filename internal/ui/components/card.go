package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/masterly/internal/ui/theme"
)

// Card draws content in a rounded box of the given outer width.
func Card(content string, width int) string {
	return theme.Card.Width(width).Render(content)
}

// Centered places content in the middle of a width x height area.
func Centered(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// Status is a one-line message under a form or menu.
type Status struct {
	Text  string
	Error bool
}

// StatusFor turns err into an error status, or clears it when err is nil.
func StatusFor(err error, ok string) Status {
	if err != nil {
		return Status{Text: err.Error(), Error: true}
	}
	return Status{Text: ok}
}

func (s Status) View() string {
	switch {
	case s.Text == "":
		return ""
	case s.Error:
		return theme.Incorrect.Render("✗ " + s.Text)
	default:
		return theme.Correct.Render("✓ " + s.Text)
	}
}
