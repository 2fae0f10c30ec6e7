package tracker

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/abhisek/masterly/internal/apperr"
	"github.com/abhisek/masterly/internal/catalog"
	"github.com/abhisek/masterly/internal/scoring"
)

// QuestionInput is an authoring request. Exactly one of TopicID and NewTopic
// names the topic.
type QuestionInput struct {
	TopicID    string
	NewTopic   string
	Text       string
	Options    catalog.Choices
	Correct    string
	Difficulty int
	Effort     int
}

// ListTopics returns every topic in creation order.
func (s *Service) ListTopics() []catalog.Topic {
	return slices.Clone(s.doc.Topics)
}

// TopicByName looks a topic up ignoring case.
func (s *Service) TopicByName(name string) (catalog.Topic, bool) {
	t := s.doc.TopicByName(strings.TrimSpace(name))
	if t == nil {
		return catalog.Topic{}, false
	}
	return *t, true
}

// ListQuestions returns the questions of topicID, or all of them when topicID
// is empty.
func (s *Service) ListQuestions(topicID string) []catalog.Question {
	if topicID == "" {
		return slices.Clone(s.doc.Questions)
	}
	return s.doc.QuestionsInTopic(topicID)
}

// Question looks a question up by id.
func (s *Service) Question(id string) (catalog.Question, bool) {
	q := s.doc.Question(id)
	if q == nil {
		return catalog.Question{}, false
	}
	return *q, true
}

// CreateQuestion validates in, creates the topic if asked to, scores the
// question and marks it pending for every user. Nothing changes when any
// check fails.
func (s *Service) CreateQuestion(ctx context.Context, in QuestionInput) (catalog.Question, error) {
	if err := scoring.CheckLevels(in.Difficulty, in.Effort); err != nil {
		return catalog.Question{}, apperr.Validation("invalid question", err)
	}

	newTopic := strings.TrimSpace(in.NewTopic)
	switch {
	case newTopic != "":
		if s.doc.TopicByName(newTopic) != nil {
			return catalog.Question{}, apperr.Duplicate("the category %q already exists", newTopic)
		}
	case in.TopicID != "":
		if s.doc.Topic(in.TopicID) == nil {
			return catalog.Question{}, apperr.NotFound("topic %s not found", in.TopicID)
		}
	default:
		return catalog.Question{}, apperr.Validation("invalid question", errors.New("select or add a category"))
	}

	q := catalog.Question{
		Text: strings.TrimSpace(in.Text),
		Options: catalog.Choices{
			A: strings.TrimSpace(in.Options.A),
			B: strings.TrimSpace(in.Options.B),
			C: strings.TrimSpace(in.Options.C),
			D: strings.TrimSpace(in.Options.D),
		},
		Difficulty: float64(in.Difficulty),
		Effort:     float64(in.Effort),
	}
	if q.Text == "" || q.Options.A == "" || q.Options.B == "" || q.Options.C == "" || q.Options.D == "" {
		return catalog.Question{}, apperr.Validation("invalid question", errors.New("please fill in all fields"))
	}
	correct, err := catalog.ParseOption(in.Correct)
	if err != nil {
		return catalog.Question{}, apperr.Validation("invalid question", err)
	}
	if s.doc.QuestionByText(q.Text) != nil {
		return catalog.Question{}, apperr.Duplicate("a question with the same text already exists")
	}

	topicID := in.TopicID
	if newTopic != "" {
		topicID = s.newID()
		s.doc.Topics = append(s.doc.Topics, catalog.Topic{ID: topicID, Name: newTopic, QuestionIDs: []string{}})
		s.log.Info("topic created", "topic_id", topicID, "name", newTopic)
	}

	q.ID = s.newID()
	q.TopicID = topicID
	q.Correct = correct
	q.Score = scoring.Score(in.Difficulty, in.Effort)

	s.doc.Questions = append(s.doc.Questions, q)
	t := s.doc.Topic(topicID)
	t.QuestionIDs = append(t.QuestionIDs, q.ID)
	for i := range s.doc.Users {
		s.doc.Users[i].Progress.AddPending(q.ID)
	}
	s.log.Info("question created", "question_id", q.ID, "topic_id", topicID, "score", q.Score)

	return q, s.persist(ctx)
}
