package quiz

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/masterly/internal/catalog"
	"github.com/abhisek/masterly/internal/router"
	"github.com/abhisek/masterly/internal/screen"
	"github.com/abhisek/masterly/internal/screens/results"
	"github.com/abhisek/masterly/internal/session"
	"github.com/abhisek/masterly/internal/tracker"
	"github.com/abhisek/masterly/internal/ui/components"
	"github.com/abhisek/masterly/internal/ui/layout"
	"github.com/abhisek/masterly/internal/ui/theme"
)

// QuizScreen asks the questions of the running quiz one at a time. No
// feedback is shown until the quiz ends. Leaving with Esc keeps the quiz
// so it can be resumed from the home screen.
type QuizScreen struct {
	svc    *tracker.Service
	view   tracker.QuizView
	choice components.MultiChoice
	status components.Status
	topics map[string]string
}

var _ screen.Screen = (*QuizScreen)(nil)

// New shows the current question of the quiz in progress.
func New(svc *tracker.Service) *QuizScreen {
	s := &QuizScreen{svc: svc, topics: make(map[string]string)}
	for _, t := range svc.ListTopics() {
		s.topics[t.ID] = t.Name
	}
	if v, ok := svc.CurrentQuestion(); ok {
		s.show(v)
	}
	return s
}

func (s *QuizScreen) show(v tracker.QuizView) {
	s.view = v
	s.choice = components.NewMultiChoice(v.Question.Options)
}

func (s *QuizScreen) Init() tea.Cmd {
	return nil
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	if !s.svc.QuizInProgress() {
		return s, router.Pop()
	}
	if key.String() == "f" {
		return s, s.finishEarly()
	}

	var picked catalog.Option
	s.choice, picked = s.choice.Update(msg)
	if picked == "" {
		return s, nil
	}
	return s, s.answer(picked)
}

func (s *QuizScreen) answer(o catalog.Option) tea.Cmd {
	step, err := s.svc.SubmitAnswer(context.Background(), string(o))
	if step.Done() {
		return s.finish(step.Outcome, err)
	}
	s.status = components.StatusFor(err, "")
	if v, ok := s.svc.CurrentQuestion(); ok {
		s.show(v)
	}
	return nil
}

func (s *QuizScreen) finishEarly() tea.Cmd {
	out, err := s.svc.FinishEarly(context.Background())
	if out == nil {
		s.status = components.StatusFor(err, "")
		return nil
	}
	return s.finish(out, err)
}

func (s *QuizScreen) finish(out *session.Outcome, saveErr error) tea.Cmd {
	return router.Replace(results.New(out, saveErr))
}

func (s *QuizScreen) View(width, height int) string {
	cw := layout.ContentWidth(width)
	if !s.svc.QuizInProgress() {
		return components.Centered(theme.Hint.Render("No quiz in progress."), width, height)
	}

	q := s.view.Question
	head := theme.Subtitle.Render(fmt.Sprintf("Question %d of %d", s.view.Index+1, s.view.Total))
	if name := s.topics[q.TopicID]; name != "" {
		head += theme.Subtitle.Render("  ·  " + name)
	}
	bar := components.NewProgressBar("", float64(s.view.Index)/float64(s.view.Total), false, cw-6).View()

	body := head + "\n" + bar + "\n\n" +
		theme.Body.Bold(true).Width(cw-6).Render(q.Text) + "\n\n" +
		s.choice.View()
	if st := s.status.View(); st != "" {
		body += "\n" + st
	}
	return components.Centered(components.Card(body, cw), width, height)
}

func (s *QuizScreen) Title() string {
	return "Quiz"
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "A-D", Description: "Answer"},
		{Key: "↑↓ Enter", Description: "Choose"},
		{Key: "f", Description: "Finish now"},
		{Key: "Esc", Description: "Pause"},
	}
}
