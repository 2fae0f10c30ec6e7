package addquestion

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/masterly/internal/router"
	"github.com/abhisek/masterly/internal/screen"
	"github.com/abhisek/masterly/internal/tracker/trackertest"
)

func press(s *AddQuestionScreen, code rune) tea.Cmd {
	_, cmd := s.Update(tea.KeyPressMsg{Code: code})
	return cmd
}

func typeText(s *AddQuestionScreen, text string) {
	for _, r := range text {
		s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

// fill types values into the rows after the topic picker, in order.
func fill(s *AddQuestionScreen, values ...string) {
	for _, v := range values {
		press(s, tea.KeyTab)
		typeText(s, v)
	}
}

func TestAddToExistingTopic(t *testing.T) {
	svc, _ := trackertest.New(t)
	topics := svc.ListTopics()
	require.Len(t, topics, 2)

	s := New(svc)
	press(s, tea.KeyRight)
	assert.Contains(t, s.View(100, 40), topics[1].Name)
	assert.False(t, s.CapturesInput())

	fill(s, "Largest ocean?", "Pacific", "Atlantic", "Indian", "Arctic", "a", "2", "40")
	assert.Equal(t, rowEffort, s.focus)
	assert.True(t, s.CapturesInput())

	cmd := press(s, tea.KeyEnter)
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.PopScreenMsg)
	require.True(t, ok)
	notice := msg.Then.(screen.NoticeMsg)
	assert.NoError(t, notice.Err)
	assert.Equal(t, "Question added (score 1.48)", notice.Text)

	qs := svc.ListQuestions(topics[1].ID)
	require.Len(t, qs, 4)
	assert.Equal(t, "Largest ocean?", qs[3].Text)
}

func TestAddWithNewTopic(t *testing.T) {
	svc, _ := trackertest.New(t)
	s := New(svc)
	press(s, tea.KeyLeft)
	assert.True(t, s.newTopic())
	assert.Contains(t, s.View(100, 40), newTopicLabel)

	fill(s, "Chemistry", "H2O is?", "Water", "Salt", "Air", "Gold", "A", "1", "10")
	cmd := press(s, tea.KeyEnter)
	require.NotNil(t, cmd)

	topic, ok := svc.TopicByName("chemistry")
	require.True(t, ok)
	assert.Len(t, svc.ListQuestions(topic.ID), 1)
}

func TestNewTopicRowHiddenForExistingTopic(t *testing.T) {
	svc, _ := trackertest.New(t)
	s := New(svc)
	press(s, tea.KeyTab)
	assert.Equal(t, rowText, s.focus)
	press(s, tea.KeyUp)
	assert.Equal(t, rowTopic, s.focus)
	press(s, tea.KeyUp)
	assert.Equal(t, rowEffort, s.focus)
}

func TestInvalidInputKeepsForm(t *testing.T) {
	svc, _ := trackertest.New(t)
	before := len(svc.ListQuestions(""))

	s := New(svc)
	fill(s, "Half done?", "yes", "no", "", "", "A", "9", "20")
	assert.Nil(t, press(s, tea.KeyEnter))
	assert.True(t, s.status.Error)
	assert.Contains(t, s.status.Text, "difficulty level must be between 1 and 5")
	assert.Equal(t, "Half done?", s.fields[rowText].Value())
	assert.Len(t, svc.ListQuestions(""), before)
}

func TestNewTopicNeedsName(t *testing.T) {
	svc, _ := trackertest.New(t)
	s := New(svc)
	press(s, tea.KeyLeft)
	s.setFocus(rowEffort)
	assert.Nil(t, press(s, tea.KeyEnter))
	assert.Equal(t, "enter a name for the new topic", s.status.Text)
}
