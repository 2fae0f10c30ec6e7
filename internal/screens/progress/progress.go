package progress

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/masterly/internal/mastery"
	"github.com/abhisek/masterly/internal/screen"
	"github.com/abhisek/masterly/internal/store"
	"github.com/abhisek/masterly/internal/tracker"
	"github.com/abhisek/masterly/internal/ui/components"
	"github.com/abhisek/masterly/internal/ui/layout"
	"github.com/abhisek/masterly/internal/ui/theme"
)

const historyLimit = 8

type historyLoadedMsg struct {
	Events []store.QuizEvent
	Err    error
}

// ProgressScreen shows the active user's ledger summary and recent quizzes.
type ProgressScreen struct {
	svc      *tracker.Service
	userID   string
	username string
	stats    mastery.Stats
	err      error

	events  []store.QuizEvent
	loaded  bool
	loadErr error
}

var _ screen.Screen = (*ProgressScreen)(nil)
var _ screen.KeyHintProvider = (*ProgressScreen)(nil)

func New(svc *tracker.Service) *ProgressScreen {
	s := &ProgressScreen{svc: svc}
	u, ok := svc.ActiveUser()
	if !ok {
		return s
	}
	s.userID, s.username = u.ID, u.Username
	s.stats, s.err = svc.Stats(u.ID)
	return s
}

func (s *ProgressScreen) Init() tea.Cmd {
	if s.userID == "" {
		return nil
	}
	return func() tea.Msg {
		events, err := s.svc.History(context.Background(), s.userID, historyLimit*2)
		return historyLoadedMsg{Events: events, Err: err}
	}
}

func (s *ProgressScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(historyLoadedMsg); ok {
		s.loaded = true
		s.loadErr = msg.Err
		for _, ev := range msg.Events {
			if ev.Action == store.QuizActionFinish && len(s.events) < historyLimit {
				s.events = append(s.events, ev)
			}
		}
	}
	return s, nil
}

func (s *ProgressScreen) View(width, height int) string {
	cw := layout.ContentWidth(width)
	if s.userID == "" {
		return components.Centered(theme.Hint.Render("Select a user to see progress."), width, height)
	}
	if s.err != nil {
		return components.Centered(components.StatusFor(s.err, "").View(), width, height)
	}

	var b strings.Builder
	b.WriteString(theme.Title.Render(s.username) + "\n\n")

	total := s.stats.Total()
	ratio := func(n int) float64 {
		if total == 0 {
			return 0
		}
		return float64(n) / float64(total)
	}
	rows := []struct {
		label  string
		bucket mastery.BucketStats
	}{
		{"Correct    ", s.stats.Correct},
		{"Wrong      ", s.stats.Wrong},
		{"Not yet    ", s.stats.NotAnswered},
	}
	for _, r := range rows {
		b.WriteString(components.NewProgressBar(r.label, ratio(r.bucket.Count), false, cw-30).View())
		b.WriteString(theme.Body.Render(fmt.Sprintf("  %3d", r.bucket.Count)))
		b.WriteString(theme.Subtitle.Render(fmt.Sprintf("   avg score %.2f", r.bucket.AverageScore)))
		b.WriteString("\n")
	}

	b.WriteString("\n" + theme.Label.Render("Recent quizzes") + "\n")
	switch {
	case !s.loaded:
		b.WriteString(theme.Hint.Render("loading…"))
	case s.loadErr != nil:
		b.WriteString(theme.Incorrect.Render("could not load history"))
	case len(s.events) == 0:
		b.WriteString(theme.Hint.Render("No finished quizzes yet."))
	default:
		for _, ev := range s.events {
			line := fmt.Sprintf("%s   %d/%d correct", ev.Timestamp.Local().Format("Jan 02 15:04"), ev.Correct, ev.Answered)
			if ev.Early {
				line += fmt.Sprintf("  (stopped at %d of %d)", ev.Answered, ev.PoolSize)
			}
			b.WriteString(theme.Body.Render(line) + "\n")
		}
	}
	return components.Centered(components.Card(b.String(), cw), width, height)
}

func (s *ProgressScreen) Title() string {
	return "Progress"
}

func (s *ProgressScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
}
