package welcome

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/masterly/internal/router"
	"github.com/abhisek/masterly/internal/screen"
)

type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "home" }
func (s *stubScreen) Title() string                           { return "Home" }

func newTestWelcome() (*WelcomeScreen, *int) {
	calls := 0
	return New(func() screen.Screen {
		calls++
		return &stubScreen{}
	}), &calls
}

func sendTicks(w *WelcomeScreen, n int) tea.Cmd {
	var cmd tea.Cmd
	for i := 0; i < n; i++ {
		_, cmd = w.Update(tickMsg(time.Now()))
	}
	return cmd
}

func TestRevealPhases(t *testing.T) {
	w, _ := newTestWelcome()
	assert.NotContains(t, w.View(100, 30), tagline)

	sendTicks(w, 3)
	assert.Contains(t, w.View(100, 30), "███")
	assert.NotContains(t, w.View(100, 30), tagline)

	sendTicks(w, 6)
	assert.Contains(t, w.View(100, 30), tagline)
	assert.NotContains(t, w.View(100, 30), "press any key")

	sendTicks(w, 6)
	assert.Contains(t, w.View(100, 30), "press any key")
}

func TestTicksStopAfterAnimation(t *testing.T) {
	w, calls := newTestWelcome()
	assert.Nil(t, sendTicks(w, 40))
	assert.Equal(t, totalDur, w.elapsed)
	assert.Zero(t, *calls)
}

func TestKeypressReplacesOnce(t *testing.T) {
	w, calls := newTestWelcome()
	sendTicks(w, 2)

	_, cmd := w.Update(tea.KeyPressMsg{Code: ' ', Text: " "})
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.ReplaceScreenMsg)
	require.True(t, ok)
	assert.NotNil(t, msg.Screen)

	_, cmd = w.Update(tea.KeyPressMsg{Code: 'a', Text: "a"})
	assert.Nil(t, cmd)
	assert.Equal(t, 1, *calls)
}

func TestCompactBanner(t *testing.T) {
	assert.Contains(t, RenderBanner(60), "M A S T E R L Y")
	assert.Empty(t, (&WelcomeScreen{}).Title())
}
