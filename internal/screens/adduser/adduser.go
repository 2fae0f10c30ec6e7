package adduser

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/masterly/internal/apperr"
	"github.com/abhisek/masterly/internal/router"
	"github.com/abhisek/masterly/internal/screen"
	"github.com/abhisek/masterly/internal/tracker"
	"github.com/abhisek/masterly/internal/ui/components"
	"github.com/abhisek/masterly/internal/ui/layout"
	"github.com/abhisek/masterly/internal/ui/theme"
)

const maxNameLen = 40

// AddUserScreen asks for a name, creates the user and makes it active.
type AddUserScreen struct {
	svc    *tracker.Service
	input  components.TextInput
	status components.Status
}

var _ screen.Screen = (*AddUserScreen)(nil)

func New(svc *tracker.Service) *AddUserScreen {
	return &AddUserScreen{
		svc:   svc,
		input: components.NewTextInput("Username", "e.g. Ana", false, maxNameLen),
	}
}

func (s *AddUserScreen) Init() tea.Cmd {
	return s.input.Focus()
}

func (s *AddUserScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if key, ok := msg.(tea.KeyPressMsg); ok && key.String() == "enter" {
		return s, s.submit()
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *AddUserScreen) submit() tea.Cmd {
	ctx := context.Background()
	u, err := s.svc.CreateUser(ctx, s.input.Value())
	if err != nil && !apperr.Is(err, apperr.KindIO) {
		s.status = components.StatusFor(err, "")
		return nil
	}
	if serr := s.svc.SelectUser(ctx, u.ID); serr != nil && err == nil {
		err = serr
	}
	if err != nil {
		return router.PopWith(screen.NoticeMsg{Err: err})
	}
	return router.PopWith(screen.NoticeMsg{Text: fmt.Sprintf("Welcome, %s!", u.Username)})
}

func (s *AddUserScreen) View(width, height int) string {
	body := theme.Title.Render("New user") + "\n\n" +
		theme.Label.Render(s.input.Label) + "\n" + s.input.View()
	if st := s.status.View(); st != "" {
		body += "\n\n" + st
	}
	return components.Centered(components.Card(body, layout.ContentWidth(width)), width, height)
}

func (s *AddUserScreen) Title() string {
	return "Add User"
}

func (s *AddUserScreen) CapturesInput() bool {
	return true
}

func (s *AddUserScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Create"},
		{Key: "Esc", Description: "Cancel"},
	}
}
