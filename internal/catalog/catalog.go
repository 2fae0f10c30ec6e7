// Package catalog holds the interchange document: users, topics and
// multiple-choice questions.
package catalog

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/masterly/internal/mastery"
)

// Option is one of the four answer letters.
type Option string

const (
	OptionA Option = "A"
	OptionB Option = "B"
	OptionC Option = "C"
	OptionD Option = "D"
)

// AllOptions lists the answer letters in display order.
var AllOptions = []Option{OptionA, OptionB, OptionC, OptionD}

// ParseOption accepts a letter in either case, surrounding space ignored.
func ParseOption(s string) (Option, error) {
	o := Option(strings.ToUpper(strings.TrimSpace(s)))
	if !o.Valid() {
		return "", fmt.Errorf("invalid option %q: must be one of A, B, C, D", s)
	}
	return o, nil
}

// Valid reports whether o is A, B, C or D.
func (o Option) Valid() bool {
	switch o {
	case OptionA, OptionB, OptionC, OptionD:
		return true
	}
	return false
}

// Choices holds the text of each option.
type Choices struct {
	A string `json:"A"`
	B string `json:"B"`
	C string `json:"C"`
	D string `json:"D"`
}

// Text returns the text for option o, or "" for an invalid letter.
func (c Choices) Text(o Option) string {
	switch o {
	case OptionA:
		return c.A
	case OptionB:
		return c.B
	case OptionC:
		return c.C
	case OptionD:
		return c.D
	}
	return ""
}

// Question is immutable after creation.
type Question struct {
	ID         string  `json:"questionId"`
	TopicID    string  `json:"topicId"`
	Text       string  `json:"questionText"`
	Options    Choices `json:"options"`
	Correct    Option  `json:"correctAnswer"`
	Difficulty float64 `json:"difficultyLevel"`
	Effort     float64 `json:"effortLevel"` // seconds
	Score      float64 `json:"score"`
}

// Topic groups questions; QuestionIDs grows as questions are created.
type Topic struct {
	ID          string   `json:"topicId"`
	Name        string   `json:"topicName"`
	QuestionIDs []string `json:"questions"`
}

func (t Topic) MarshalJSON() ([]byte, error) {
	type wire Topic
	w := wire(t)
	if w.QuestionIDs == nil {
		w.QuestionIDs = []string{}
	}
	return json.Marshal(w)
}

// User is a learner profile.
type User struct {
	ID       string         `json:"userId"`
	Username string         `json:"username"`
	Progress mastery.Ledger `json:"learningProgress"`
}

// Document is the whole application state as exchanged with storage and
// files.
type Document struct {
	Users     []User     `json:"users"`
	Topics    []Topic    `json:"topics"`
	Questions []Question `json:"questions"`
}

func (d Document) MarshalJSON() ([]byte, error) {
	type wire Document
	w := wire(d)
	if w.Users == nil {
		w.Users = []User{}
	}
	if w.Topics == nil {
		w.Topics = []Topic{}
	}
	if w.Questions == nil {
		w.Questions = []Question{}
	}
	return json.Marshal(w)
}

// Empty returns a document with no users, topics or questions.
func Empty() *Document {
	return &Document{Users: []User{}, Topics: []Topic{}, Questions: []Question{}}
}

// Encode renders d as JSON, indented for files meant to be read by people.
func Encode(d *Document, indent bool) ([]byte, error) {
	if indent {
		return json.MarshalIndent(d, "", "  ")
	}
	return json.Marshal(d)
}

// User returns the user with id, or nil.
func (d *Document) User(id string) *User {
	for i := range d.Users {
		if d.Users[i].ID == id {
			return &d.Users[i]
		}
	}
	return nil
}

// UserByName matches case-insensitively.
func (d *Document) UserByName(name string) *User {
	for i := range d.Users {
		if strings.EqualFold(d.Users[i].Username, name) {
			return &d.Users[i]
		}
	}
	return nil
}

// Topic returns the topic with id, or nil.
func (d *Document) Topic(id string) *Topic {
	for i := range d.Topics {
		if d.Topics[i].ID == id {
			return &d.Topics[i]
		}
	}
	return nil
}

// TopicByName matches case-insensitively.
func (d *Document) TopicByName(name string) *Topic {
	for i := range d.Topics {
		if strings.EqualFold(d.Topics[i].Name, name) {
			return &d.Topics[i]
		}
	}
	return nil
}

// Question returns the question with id, or nil.
func (d *Document) Question(id string) *Question {
	for i := range d.Questions {
		if d.Questions[i].ID == id {
			return &d.Questions[i]
		}
	}
	return nil
}

// QuestionByText matches case-insensitively.
func (d *Document) QuestionByText(text string) *Question {
	for i := range d.Questions {
		if strings.EqualFold(d.Questions[i].Text, text) {
			return &d.Questions[i]
		}
	}
	return nil
}

// QuestionIDs returns every question id in document order.
func (d *Document) QuestionIDs() []string {
	ids := make([]string, len(d.Questions))
	for i, q := range d.Questions {
		ids[i] = q.ID
	}
	return ids
}

// QuestionsInTopic returns the questions tagged with topicID in document order.
func (d *Document) QuestionsInTopic(topicID string) []Question {
	var out []Question
	for _, q := range d.Questions {
		if q.TopicID == topicID {
			out = append(out, q)
		}
	}
	return out
}
