package session

import (
	"github.com/abhisek/masterly/internal/catalog"
	"github.com/abhisek/masterly/internal/mastery"
)

// Detail is the result line for one answered question.
type Detail struct {
	QuestionID    string
	Text          string
	Chosen        catalog.Option
	ChosenText    string
	CorrectOption catalog.Option
	CorrectText   string
	IsCorrect     bool
	Score         float64
}

// Outcome is returned by Finalize.
type Outcome struct {
	UserID   string
	Username string
	Correct  int
	PoolSize int
	Details  []Detail

	// Unanswered lists the texts of the questions left when the quiz was
	// finished early, in pool order. Empty for a completed quiz.
	Unanswered []string
	Early      bool

	// Stats is the user's ledger summary after the answers were recorded.
	Stats mastery.Stats
}
