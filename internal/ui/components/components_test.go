package components

import (
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"

	"github.com/abhisek/masterly/internal/apperr"
	"github.com/abhisek/masterly/internal/catalog"
)

func key(s string) tea.KeyPressMsg {
	switch s {
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

func TestMenuSkipsDisabled(t *testing.T) {
	fired := ""
	act := func(name string) func() tea.Cmd {
		return func() tea.Cmd { fired = name; return nil }
	}
	m := NewMenu([]MenuItem{
		{Label: "Resume", Disabled: true},
		{Label: "Start", Action: act("start")},
		{Label: "Hidden", Disabled: true},
		{Label: "Quit", Action: act("quit")},
	})
	assert.Equal(t, 1, m.Selected)

	m, _ = m.Update(key("down"))
	assert.Equal(t, 3, m.Selected)
	m, _ = m.Update(key("down"))
	assert.Equal(t, 3, m.Selected)
	m, _ = m.Update(key("up"))
	assert.Equal(t, 1, m.Selected)
	m, _ = m.Update(key("up"))
	assert.Equal(t, 1, m.Selected)

	m.Update(key("enter"))
	assert.Equal(t, "start", fired)
	assert.Contains(t, m.View(), "▸ Start")
}

func TestMenuSetItemsKeepsCursor(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "A"}, {Label: "B"}, {Label: "C"}})
	m.Selected = 2
	m.SetItems([]MenuItem{{Label: "New"}, {Label: "A"}, {Label: "B"}, {Label: "C"}})
	assert.Equal(t, 3, m.Selected)

	m.SetItems([]MenuItem{{Label: "X", Disabled: true}, {Label: "Y"}})
	assert.Equal(t, 1, m.Selected)
}

func TestMultiChoice(t *testing.T) {
	mc := NewMultiChoice(catalog.Choices{A: "Paris", B: "Rome", C: "Oslo", D: "Bern"})

	mc, got := mc.Update(key("down"))
	assert.Equal(t, catalog.Option(""), got)
	mc, got = mc.Update(key("enter"))
	assert.Equal(t, catalog.OptionB, got)

	mc, got = mc.Update(key("d"))
	assert.Equal(t, catalog.OptionD, got)
	assert.Equal(t, 3, mc.Selected)

	_, got = mc.Update(key("x"))
	assert.Equal(t, catalog.Option(""), got)
	assert.Contains(t, mc.View(), "D)  Bern")
}

func TestTextInputNumericOnly(t *testing.T) {
	ti := NewTextInput("Effort", "10-300", true, 3)
	ti.Focus()
	for _, k := range []string{"1", "x", "2", "0"} {
		ti, _ = ti.Update(key(k))
	}
	assert.Equal(t, "120", ti.Value())
	n, err := ti.Int()
	assert.NoError(t, err)
	assert.Equal(t, 120, n)
}

func TestProgressBarWidth(t *testing.T) {
	bar := NewProgressBar("", 0.5, false, 10).View()
	assert.Equal(t, 10, len([]rune(stripANSI(bar))))
}

func TestButtonRowWraps(t *testing.T) {
	b := NewButtonRow("Cancel", "Reset")
	b.Move(-1)
	assert.Equal(t, 1, b.Focused)
	b.Move(1)
	assert.Equal(t, 0, b.Focused)
}

func TestStatus(t *testing.T) {
	assert.Empty(t, Status{}.View())
	assert.Contains(t, StatusFor(nil, "saved").View(), "saved")

	s := StatusFor(apperr.IO("could not save", errors.New("disk full")), "")
	assert.True(t, s.Error)
	assert.Equal(t, "could not save: disk full", s.Text)
	assert.Contains(t, s.View(), "✗ could not save")

	s = StatusFor(apperr.Duplicate("name %q taken", "ana"), "")
	assert.Equal(t, `name "ana" taken`, s.Text)
}

func stripANSI(s string) string {
	var b strings.Builder
	esc := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			esc = true
		case esc && (r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'):
			esc = false
		case !esc:
			b.WriteRune(r)
		}
	}
	return b.String()
}
