package reset

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/masterly/internal/router"
	"github.com/abhisek/masterly/internal/screen"
	"github.com/abhisek/masterly/internal/tracker"
	"github.com/abhisek/masterly/internal/ui/components"
	"github.com/abhisek/masterly/internal/ui/layout"
	"github.com/abhisek/masterly/internal/ui/theme"
)

const (
	buttonCancel = iota
	buttonReset
)

// ResetScreen asks before wiping every user, topic and question.
type ResetScreen struct {
	svc     *tracker.Service
	buttons components.ButtonRow
}

var _ screen.Screen = (*ResetScreen)(nil)

func New(svc *tracker.Service) *ResetScreen {
	return &ResetScreen{svc: svc, buttons: components.NewButtonRow("Cancel", "Reset")}
}

func (s *ResetScreen) Init() tea.Cmd {
	return nil
}

func (s *ResetScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	switch key.String() {
	case "left", "h", "shift+tab":
		s.buttons.Move(-1)
	case "right", "l", "tab":
		s.buttons.Move(1)
	case "n":
		return s, router.Pop()
	case "enter":
		if s.buttons.Focused == buttonCancel {
			return s, router.Pop()
		}
		err := s.svc.Reset(context.Background())
		return s, router.PopWith(screen.NoticeMsg{Text: "Everything was reset", Err: err})
	}
	return s, nil
}

func (s *ResetScreen) View(width, height int) string {
	body := theme.Title.Render("Reset everything?") + "\n\n" +
		theme.Body.Render("This deletes every user, topic and question,\nincluding all learning progress.") + "\n" +
		theme.Hint.Render("Save your data first if you may want it back.") + "\n\n" +
		s.buttons.View()
	return components.Centered(components.Card(body, layout.ContentWidth(width)), width, height)
}

func (s *ResetScreen) Title() string {
	return "Reset"
}

func (s *ResetScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Choose"},
		{Key: "Enter", Description: "Confirm"},
		{Key: "Esc", Description: "Cancel"},
	}
}
