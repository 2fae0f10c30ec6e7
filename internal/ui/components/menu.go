package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/masterly/internal/ui/theme"
)

// MenuItem is one selectable line.
type MenuItem struct {
	Label    string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical list navigated with the arrow keys.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu selects the first enabled item.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items}
	m.Selected = m.next(-1, 1)
	if m.Selected < 0 {
		m.Selected = 0
	}
	return m
}

// SetItems replaces the items, keeping the cursor on the same label when
// it is still present and enabled.
func (m *Menu) SetItems(items []MenuItem) {
	label := ""
	if m.Selected >= 0 && m.Selected < len(m.Items) {
		label = m.Items[m.Selected].Label
	}
	m.Items = items
	for i, it := range items {
		if it.Label == label && !it.Disabled {
			m.Selected = i
			return
		}
	}
	m.Selected = max(m.next(-1, 1), 0)
}

// next walks from i in direction dir to the next enabled item, or -1.
func (m Menu) next(i, dir int) int {
	for j := i + dir; j >= 0 && j < len(m.Items); j += dir {
		if !m.Items[j].Disabled {
			return j
		}
	}
	return -1
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "up", "k":
		if j := m.next(m.Selected, -1); j >= 0 {
			m.Selected = j
		}
	case "down", "j":
		if j := m.next(m.Selected, 1); j >= 0 {
			m.Selected = j
		}
	case "enter":
		if m.Selected < 0 || m.Selected >= len(m.Items) {
			return m, nil
		}
		if it := m.Items[m.Selected]; it.Action != nil && !it.Disabled {
			return m, it.Action()
		}
	}
	return m, nil
}

func (m Menu) View() string {
	var b strings.Builder
	for i, it := range m.Items {
		switch {
		case it.Disabled:
			b.WriteString(theme.Disabled.Render("    " + it.Label))
		case i == m.Selected:
			b.WriteString(theme.Selected.Render("  ▸ " + it.Label))
		default:
			b.WriteString(theme.Unselected.Render("    " + it.Label))
		}
		b.WriteString("\n")
	}
	return b.String()
}
