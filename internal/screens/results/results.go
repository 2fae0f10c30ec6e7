package results

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/masterly/internal/router"
	"github.com/abhisek/masterly/internal/screen"
	"github.com/abhisek/masterly/internal/session"
	"github.com/abhisek/masterly/internal/ui/components"
	"github.com/abhisek/masterly/internal/ui/layout"
	"github.com/abhisek/masterly/internal/ui/theme"
)

// ResultsScreen shows how a finished quiz went, question by question.
type ResultsScreen struct {
	out     *session.Outcome
	saveErr error
	offset  int
}

var _ screen.Screen = (*ResultsScreen)(nil)

// New shows out. saveErr is the storage failure, if any, from recording it.
func New(out *session.Outcome, saveErr error) *ResultsScreen {
	return &ResultsScreen{out: out, saveErr: saveErr}
}

func (s *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	switch key.String() {
	case "up", "k":
		s.offset = max(s.offset-1, 0)
	case "down", "j":
		s.offset++
	case "enter", "q":
		return s, router.PopWith(screen.NoticeMsg{Err: s.saveErr})
	}
	return s, nil
}

// Headline is the one-line summary, e.g. "3 of 5 correct".
func (s *ResultsScreen) Headline() string {
	answered := len(s.out.Details)
	if s.out.Early {
		return fmt.Sprintf("%d of %d correct (%d of %d answered)", s.out.Correct, answered, answered, s.out.PoolSize)
	}
	return fmt.Sprintf("%d of %d correct", s.out.Correct, s.out.PoolSize)
}

func (s *ResultsScreen) lines(width int) []string {
	var lines []string
	for i, d := range s.out.Details {
		mark := theme.Correct.Render("✓")
		if !d.IsCorrect {
			mark = theme.Incorrect.Render("✗")
		}
		lines = append(lines, fmt.Sprintf("%s %s", mark,
			theme.Body.Bold(true).Render(truncate(fmt.Sprintf("%d. %s", i+1, d.Text), width-2))))

		answer := fmt.Sprintf("    you: %s) %s", d.Chosen, d.ChosenText)
		if !d.IsCorrect {
			answer += fmt.Sprintf("   answer: %s) %s", d.CorrectOption, d.CorrectText)
		}
		lines = append(lines,
			theme.Subtitle.Render(truncate(answer, width)),
			theme.Hint.Render(fmt.Sprintf("    score %.2f", d.Score)))
	}
	if len(s.out.Unanswered) > 0 {
		lines = append(lines, "", theme.Notice.Render("Not reached:"))
		for _, text := range s.out.Unanswered {
			lines = append(lines, theme.Subtitle.Render(truncate("  · "+text, width)))
		}
	}
	return lines
}

func (s *ResultsScreen) View(width, height int) string {
	cw := layout.ContentWidth(width)
	inner := cw - 6

	title := "Quiz complete"
	if s.out.Early {
		title = "Quiz finished early"
	}
	head := theme.Title.Render(title) + "  " + theme.Subtitle.Render(s.out.Username) + "\n" +
		theme.Body.Render(s.Headline())

	st := s.out.Stats
	total := st.Total()
	pct := 0.0
	if total > 0 {
		pct = float64(st.Correct.Count) / float64(total)
	}
	mastery := components.NewProgressBar("Mastered", pct, true, inner).View() + "\n" +
		theme.Subtitle.Render(fmt.Sprintf("%d correct · %d wrong · %d not answered",
			st.Correct.Count, st.Wrong.Count, st.NotAnswered.Count))

	footer := ""
	if s.saveErr != nil {
		footer = "\n\n" + components.StatusFor(s.saveErr, "").View()
	}

	// Details scroll in whatever height is left.
	fixed := lipgloss.Height(head) + lipgloss.Height(mastery) + lipgloss.Height(footer) + 8
	room := max(height-fixed, 3)
	lines := s.lines(inner)
	s.offset = min(s.offset, max(len(lines)-room, 0))
	visible := lines[s.offset:min(s.offset+room, len(lines))]

	body := head + "\n\n" + strings.Join(visible, "\n") + "\n\n" + mastery + footer
	return components.Centered(components.Card(body, cw), width, height)
}

func (s *ResultsScreen) Title() string {
	return "Results"
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Enter", Description: "Done"},
	}
}

func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 1 || len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}
