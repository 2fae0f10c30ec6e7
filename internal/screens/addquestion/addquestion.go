package addquestion

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/masterly/internal/apperr"
	"github.com/abhisek/masterly/internal/catalog"
	"github.com/abhisek/masterly/internal/router"
	"github.com/abhisek/masterly/internal/scoring"
	"github.com/abhisek/masterly/internal/screen"
	"github.com/abhisek/masterly/internal/tracker"
	"github.com/abhisek/masterly/internal/ui/components"
	"github.com/abhisek/masterly/internal/ui/layout"
	"github.com/abhisek/masterly/internal/ui/theme"
)

// Form rows. rowTopic is the topic picker; the rest are text fields.
const (
	rowTopic = iota
	rowNewTopic
	rowText
	rowA
	rowB
	rowC
	rowD
	rowCorrect
	rowDifficulty
	rowEffort
	rowCount
)

const newTopicLabel = "+ New topic"

// AddQuestionScreen is the authoring form.
type AddQuestionScreen struct {
	svc    *tracker.Service
	topics []catalog.Topic
	topic  int // index into topics; len(topics) means a new topic
	fields [rowCount]components.TextInput
	focus  int
	status components.Status
}

var _ screen.Screen = (*AddQuestionScreen)(nil)

func New(svc *tracker.Service) *AddQuestionScreen {
	s := &AddQuestionScreen{svc: svc, topics: svc.ListTopics()}
	s.fields[rowNewTopic] = components.NewTextInput("New topic", "e.g. Chemistry", false, 60)
	s.fields[rowText] = components.NewTextInput("Question", "", false, 300)
	for i, o := range catalog.AllOptions {
		s.fields[rowA+i] = components.NewTextInput("Option "+string(o), "", false, 120)
	}
	s.fields[rowCorrect] = components.NewTextInput("Correct option", "A, B, C or D", false, 1)
	s.fields[rowDifficulty] = components.NewTextInput("Difficulty",
		fmt.Sprintf("%d-%d", scoring.MinDifficulty, scoring.MaxDifficulty), true, 1)
	s.fields[rowEffort] = components.NewTextInput("Effort (seconds)",
		fmt.Sprintf("%d-%d", scoring.MinEffort, scoring.MaxEffort), true, 3)
	return s
}

func (s *AddQuestionScreen) newTopic() bool {
	return s.topic == len(s.topics)
}

// skip reports whether row is hidden in the current topic mode.
func (s *AddQuestionScreen) skip(row int) bool {
	return row == rowNewTopic && !s.newTopic()
}

func (s *AddQuestionScreen) Init() tea.Cmd {
	return nil
}

func (s *AddQuestionScreen) move(dir int) tea.Cmd {
	next := s.focus
	for {
		next = (next + dir + rowCount) % rowCount
		if !s.skip(next) {
			break
		}
	}
	return s.setFocus(next)
}

func (s *AddQuestionScreen) setFocus(row int) tea.Cmd {
	if s.focus != rowTopic {
		s.fields[s.focus].Blur()
	}
	s.focus = row
	if row == rowTopic {
		return nil
	}
	return s.fields[row].Focus()
}

func (s *AddQuestionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	switch key.String() {
	case "tab", "down":
		return s, s.move(1)
	case "shift+tab", "up":
		return s, s.move(-1)
	case "ctrl+s":
		return s, s.submit()
	case "enter":
		if s.focus == rowEffort {
			return s, s.submit()
		}
		return s, s.move(1)
	}

	if s.focus == rowTopic {
		switch key.String() {
		case "left", "h":
			s.topic = (s.topic + len(s.topics)) % (len(s.topics) + 1)
		case "right", "l", "space":
			s.topic = (s.topic + 1) % (len(s.topics) + 1)
		}
		return s, nil
	}

	var cmd tea.Cmd
	s.fields[s.focus], cmd = s.fields[s.focus].Update(msg)
	return s, cmd
}

func (s *AddQuestionScreen) input() tracker.QuestionInput {
	in := tracker.QuestionInput{
		Text: s.fields[rowText].Value(),
		Options: catalog.Choices{
			A: s.fields[rowA].Value(),
			B: s.fields[rowB].Value(),
			C: s.fields[rowC].Value(),
			D: s.fields[rowD].Value(),
		},
		Correct: s.fields[rowCorrect].Value(),
	}
	// Blank numbers become zero and fail the range check.
	in.Difficulty, _ = s.fields[rowDifficulty].Int()
	in.Effort, _ = s.fields[rowEffort].Int()
	if s.newTopic() {
		in.NewTopic = s.fields[rowNewTopic].Value()
	} else {
		in.TopicID = s.topics[s.topic].ID
	}
	return in
}

func (s *AddQuestionScreen) submit() tea.Cmd {
	in := s.input()
	if s.newTopic() && in.NewTopic == "" {
		s.status = components.Status{Text: "enter a name for the new topic", Error: true}
		return nil
	}
	q, err := s.svc.CreateQuestion(context.Background(), in)
	if err != nil && !apperr.Is(err, apperr.KindIO) {
		s.status = components.StatusFor(err, "")
		return nil
	}
	return router.PopWith(screen.NoticeMsg{
		Text: fmt.Sprintf("Question added (score %.2f)", q.Score),
		Err:  err,
	})
}

func (s *AddQuestionScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("New question") + "\n\n")

	b.WriteString(s.label(rowTopic, "Topic") + "  " + s.topicPicker() + "\n")
	for row := rowNewTopic; row < rowCount; row++ {
		if s.skip(row) {
			continue
		}
		b.WriteString(s.label(row, s.fields[row].Label) + "\n")
		b.WriteString(s.fields[row].View() + "\n")
	}
	if st := s.status.View(); st != "" {
		b.WriteString("\n" + st)
	}
	return components.Centered(components.Card(b.String(), layout.ContentWidth(width)), width, height)
}

func (s *AddQuestionScreen) label(row int, text string) string {
	if row == s.focus {
		return theme.Selected.Render("▸ " + text)
	}
	return theme.Label.Render("  " + text)
}

func (s *AddQuestionScreen) topicPicker() string {
	name := newTopicLabel
	if !s.newTopic() {
		name = s.topics[s.topic].Name
	}
	return theme.Subtitle.Render("◂ ") + theme.Body.Render(name) + theme.Subtitle.Render(" ▸")
}

func (s *AddQuestionScreen) Title() string {
	return "Add Question"
}

func (s *AddQuestionScreen) CapturesInput() bool {
	return s.focus != rowTopic
}

func (s *AddQuestionScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "←→", Description: "Topic"},
		{Key: "Ctrl+S", Description: "Save"},
		{Key: "Esc", Description: "Cancel"},
	}
}
