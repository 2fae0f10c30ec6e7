package home

import (
	"context"
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/masterly/internal/router"
	"github.com/abhisek/masterly/internal/screen"
	"github.com/abhisek/masterly/internal/screens/adduser"
	"github.com/abhisek/masterly/internal/screens/quiz"
	"github.com/abhisek/masterly/internal/tracker/trackertest"
	"github.com/abhisek/masterly/internal/ui/components"
)

func labels(h *HomeScreen) []string {
	var out []string
	for _, it := range h.menu.Items {
		if !it.Disabled {
			out = append(out, it.Label)
		}
	}
	return out
}

func selectLabel(t *testing.T, h *HomeScreen, label string) tea.Cmd {
	t.Helper()
	h.Update(nil)
	for i, it := range h.menu.Items {
		if it.Label == label {
			h.menu.Selected = i
			_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
			return cmd
		}
	}
	t.Fatalf("no menu item %q", label)
	return nil
}

func TestMenuWithoutUsers(t *testing.T) {
	svc, _ := trackertest.New(t)
	h := New(svc)
	assert.Equal(t,
		[]string{LabelStart, LabelAddUser, LabelAddQuestion, LabelTransfer, LabelReset, LabelQuit},
		labels(h))
	assert.Contains(t, h.View(100, 30), "Add a user to get started.")
}

func TestStartQuizWithoutUserShowsError(t *testing.T) {
	svc, _ := trackertest.New(t)
	h := New(svc)
	assert.Nil(t, selectLabel(t, h, LabelStart))
	assert.True(t, h.status.Error)
	assert.Contains(t, h.View(100, 30), "no active user")
}

func TestStartThenResume(t *testing.T) {
	svc := trackertest.WithUser(t, "Ana")
	h := New(svc)
	assert.Contains(t, labels(h), LabelProgress)

	cmd := selectLabel(t, h, LabelStart)
	require.NotNil(t, cmd)
	push, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	assert.IsType(t, &quiz.QuizScreen{}, push.Screen)
	assert.True(t, svc.QuizInProgress())

	h.Update(nil)
	assert.Contains(t, labels(h), LabelResume)
	assert.NotContains(t, labels(h), LabelStart)
	assert.Contains(t, h.View(100, 30), "Quiz paused at question 1 of 6")

	cmd = selectLabel(t, h, LabelResume)
	require.NotNil(t, cmd)
	assert.IsType(t, &quiz.QuizScreen{}, cmd().(router.PushScreenMsg).Screen)
}

func TestAddUserOpensForm(t *testing.T) {
	svc, _ := trackertest.New(t)
	h := New(svc)
	cmd := selectLabel(t, h, LabelAddUser)
	require.NotNil(t, cmd)
	assert.IsType(t, &adduser.AddUserScreen{}, cmd().(router.PushScreenMsg).Screen)
}

func TestNoticeShowsStatusAndRefreshesMenu(t *testing.T) {
	svc, _ := trackertest.New(t)
	h := New(svc)

	u, err := svc.CreateUser(context.Background(), "Ana")
	require.NoError(t, err)
	require.NoError(t, svc.SelectUser(context.Background(), u.ID))

	h.Update(screen.NoticeMsg{Text: "Welcome, Ana!"})
	assert.Equal(t, components.Status{Text: "Welcome, Ana!"}, h.status)
	assert.Contains(t, labels(h), LabelSelectUser)
	assert.Contains(t, labels(h), LabelProgress)
	assert.Contains(t, h.View(100, 30), "0 correct · 0 wrong · 6 to go")

	h.Update(screen.NoticeMsg{Err: errors.New("disk full")})
	assert.True(t, h.status.Error)
}

func TestQuit(t *testing.T) {
	svc, _ := trackertest.New(t)
	h := New(svc)
	cmd := selectLabel(t, h, LabelQuit)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}
