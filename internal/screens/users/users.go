package users

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

// UsersScreen lists the learners; Enter makes the highlighted one active.
type UsersScreen struct {
	svc    *tracker.Service
	menu   components.Menu
	status components.Status
}

var _ screen.Screen = (*UsersScreen)(nil)

func New(svc *tracker.Service) *UsersScreen {
	s := &UsersScreen{svc: svc}
	active, _ := svc.ActiveUser()

	var items []components.MenuItem
	selected := 0
	for i, u := range svc.ListUsers() {
		label := u.Username
		if u.ID == active.ID {
			label += "  (active)"
		}
		items = append(items, components.MenuItem{Label: label, Action: func() tea.Cmd {
			return s.choose(u.ID, u.Username)
		}})
		if u.ID == active.ID {
			selected = i
		}
	}
	s.menu = components.NewMenu(items)
	s.menu.Selected = selected
	return s
}

func (s *UsersScreen) choose(id, name string) tea.Cmd {
	err := s.svc.SelectUser(context.Background(), id)
	switch {
	case apperr.Is(err, apperr.KindIO):
		// Selected, but not saved.
		return router.PopWith(screen.NoticeMsg{Err: err})
	case err != nil:
		s.status = components.StatusFor(err, "")
		return nil
	}
	return router.PopWith(screen.NoticeMsg{Text: fmt.Sprintf("Now learning as %s", name)})
}

func (s *UsersScreen) Init() tea.Cmd {
	return nil
}

func (s *UsersScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *UsersScreen) View(width, height int) string {
	body := theme.Title.Render("Who is learning?") + "\n\n"
	if len(s.menu.Items) == 0 {
		body += theme.Hint.Render("No users yet.")
	} else {
		body += s.menu.View()
	}
	if st := s.status.View(); st != "" {
		body += "\n" + st
	}
	return components.Centered(components.Card(body, layout.ContentWidth(width)), width, height)
}

func (s *UsersScreen) Title() string {
	return "Select User"
}
