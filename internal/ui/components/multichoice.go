package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/masterly/internal/catalog"
	"github.com/abhisek/masterly/internal/ui/theme"
)

// MultiChoice picks one of the options A-D, either with the arrow keys
// and Enter or by typing the letter.
type MultiChoice struct {
	Options  catalog.Choices
	Selected int
}

func NewMultiChoice(opts catalog.Choices) MultiChoice {
	return MultiChoice{Options: opts}
}

// Update returns the chosen option once the learner commits, else "".
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, catalog.Option) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, ""
	}
	switch s := key.String(); s {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(catalog.AllOptions)-1 {
			m.Selected++
		}
	case "enter":
		return m, catalog.AllOptions[m.Selected]
	default:
		if o, err := catalog.ParseOption(s); err == nil {
			for i, opt := range catalog.AllOptions {
				if opt == o {
					m.Selected = i
				}
			}
			return m, o
		}
	}
	return m, ""
}

func (m MultiChoice) View() string {
	var b strings.Builder
	for i, o := range catalog.AllOptions {
		line := fmt.Sprintf("%s)  %s", o, m.Options.Text(o))
		if i == m.Selected {
			b.WriteString(theme.Selected.Render("▸ " + line))
		} else {
			b.WriteString(theme.Unselected.Render("  " + line))
		}
		b.WriteString("\n")
	}
	return b.String()
}
