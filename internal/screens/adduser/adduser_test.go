package adduser

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/masterly/internal/router"
	"github.com/abhisek/masterly/internal/screen"
	"github.com/abhisek/masterly/internal/tracker/trackertest"
)

func typeText(s *AddUserScreen, text string) {
	for _, r := range text {
		s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func enter(s *AddUserScreen) tea.Cmd {
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	return cmd
}

func TestCreateSelectsUser(t *testing.T) {
	svc, _ := trackertest.New(t)
	s := New(svc)
	s.Init()
	typeText(s, "  Ana ")

	cmd := enter(s)
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.PopScreenMsg)
	require.True(t, ok)
	assert.Equal(t, screen.NoticeMsg{Text: "Welcome, Ana!"}, msg.Then)

	u, ok := svc.ActiveUser()
	require.True(t, ok)
	assert.Equal(t, "Ana", u.Username)
}

func TestDuplicateStaysOnScreen(t *testing.T) {
	svc, _ := trackertest.New(t)
	_, err := svc.CreateUser(context.Background(), "ana")
	require.NoError(t, err)

	s := New(svc)
	s.Init()
	typeText(s, "ANA")
	assert.Nil(t, enter(s))
	assert.True(t, s.status.Error)
	assert.Contains(t, s.View(80, 24), "already taken")
	assert.Len(t, svc.ListUsers(), 1)
}

func TestEmptyName(t *testing.T) {
	svc, _ := trackertest.New(t)
	s := New(svc)
	s.Init()
	assert.Nil(t, enter(s))
	assert.Contains(t, s.status.Text, "please enter a username")
	assert.True(t, s.CapturesInput())
}
