package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/masterly/internal/router"
	"github.com/abhisek/masterly/internal/screen"
	"github.com/abhisek/masterly/internal/screens/addquestion"
	"github.com/abhisek/masterly/internal/screens/adduser"
	"github.com/abhisek/masterly/internal/screens/progress"
	"github.com/abhisek/masterly/internal/screens/quiz"
	"github.com/abhisek/masterly/internal/screens/reset"
	"github.com/abhisek/masterly/internal/screens/transfer"
	"github.com/abhisek/masterly/internal/screens/users"
	"github.com/abhisek/masterly/internal/tracker"
	"github.com/abhisek/masterly/internal/ui/components"
	"github.com/abhisek/masterly/internal/ui/layout"
	"github.com/abhisek/masterly/internal/ui/theme"
)

// Menu labels.
const (
	LabelResume      = "Resume Quiz"
	LabelStart       = "Start Quiz"
	LabelSelectUser  = "Select User"
	LabelAddUser     = "Add User"
	LabelAddQuestion = "Add Question"
	LabelProgress    = "View Progress"
	LabelTransfer    = "Save / Load Data"
	LabelReset       = "Reset Everything"
	LabelQuit        = "Quit"
)

// HomeScreen is the main menu. Its items are rebuilt from the tracker
// state before every update and render, so they follow changes made by
// the screens it opens.
type HomeScreen struct {
	svc    *tracker.Service
	menu   components.Menu
	status components.Status
}

var _ screen.Screen = (*HomeScreen)(nil)

func New(svc *tracker.Service) *HomeScreen {
	h := &HomeScreen{svc: svc}
	h.menu = components.NewMenu(h.items())
	return h
}

func (h *HomeScreen) items() []components.MenuItem {
	_, hasUser := h.svc.ActiveUser()
	noUsers := len(h.svc.ListUsers()) == 0

	var items []components.MenuItem
	if h.svc.QuizInProgress() {
		items = append(items, components.MenuItem{Label: LabelResume, Action: h.resume})
	} else {
		items = append(items, components.MenuItem{Label: LabelStart, Action: h.start})
	}
	return append(items,
		components.MenuItem{Label: LabelSelectUser, Disabled: noUsers, Action: func() tea.Cmd {
			return router.Push(users.New(h.svc))
		}},
		components.MenuItem{Label: LabelAddUser, Action: func() tea.Cmd {
			return router.Push(adduser.New(h.svc))
		}},
		components.MenuItem{Label: LabelAddQuestion, Action: func() tea.Cmd {
			return router.Push(addquestion.New(h.svc))
		}},
		components.MenuItem{Label: LabelProgress, Disabled: !hasUser, Action: func() tea.Cmd {
			return router.Push(progress.New(h.svc))
		}},
		components.MenuItem{Label: LabelTransfer, Action: func() tea.Cmd {
			return router.Push(transfer.New(h.svc))
		}},
		components.MenuItem{Label: LabelReset, Action: func() tea.Cmd {
			return router.Push(reset.New(h.svc))
		}},
		components.MenuItem{Label: LabelQuit, Action: func() tea.Cmd {
			return tea.Quit
		}},
	)
}

func (h *HomeScreen) start() tea.Cmd {
	// A failed save still leaves the quiz running.
	_, err := h.svc.StartQuiz(context.Background())
	h.status = components.StatusFor(err, "")
	if !h.svc.QuizInProgress() {
		return nil
	}
	return router.Push(quiz.New(h.svc))
}

func (h *HomeScreen) resume() tea.Cmd {
	h.status = components.Status{}
	return router.Push(quiz.New(h.svc))
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	h.menu.SetItems(h.items())
	switch msg := msg.(type) {
	case screen.NoticeMsg:
		h.status = components.StatusFor(msg.Err, msg.Text)
		h.menu.SetItems(h.items())
		return h, nil
	case tea.KeyPressMsg:
		var cmd tea.Cmd
		h.menu, cmd = h.menu.Update(msg)
		return h, cmd
	}
	return h, nil
}

func (h *HomeScreen) View(width, height int) string {
	h.menu.SetItems(h.items())
	cw := layout.ContentWidth(width)

	sections := []string{h.summary(), "", h.menu.View()}
	if s := h.status.View(); s != "" {
		sections = append(sections, s)
	}
	card := components.Card(strings.Join(sections, "\n"), cw)
	return components.Centered(card, width, height)
}

// summary is the line above the menu: who is learning and how far along.
func (h *HomeScreen) summary() string {
	u, ok := h.svc.ActiveUser()
	if !ok {
		if len(h.svc.ListUsers()) == 0 {
			return theme.Hint.Render("Add a user to get started.")
		}
		return theme.Hint.Render("Select a user to start a quiz.")
	}
	stats, err := h.svc.Stats(u.ID)
	if err != nil {
		return theme.Title.Render(u.Username)
	}
	line := lipgloss.JoinHorizontal(lipgloss.Top,
		theme.Title.Render(u.Username),
		theme.Subtitle.Render(fmt.Sprintf("   %d correct · %d wrong · %d to go",
			stats.Correct.Count, stats.Wrong.Count, stats.NotAnswered.Count)),
	)
	if h.svc.QuizInProgress() {
		if v, ok := h.svc.CurrentQuestion(); ok {
			line += "\n" + theme.Notice.Render(fmt.Sprintf("Quiz paused at question %d of %d", v.Index+1, v.Total))
		}
	}
	return line
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "q", Description: "Quit"},
	}
}
