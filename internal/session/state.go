package session

import "github.com/abhisek/masterly/internal/catalog"

// Phase is the position of the engine in the quiz lifecycle.
type Phase int

const (
	PhaseIdle       Phase = iota // No quiz
	PhaseInProgress              // Serving questions
	PhaseFinalizing              // Pool exhausted or finished early; awaiting Finalize
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseInProgress:
		return "in_progress"
	case PhaseFinalizing:
		return "finalizing"
	}
	return "unknown"
}

// Answer is one entry of the answer log. Entry i answers pool[i].
type Answer struct {
	QuestionID string         `json:"questionId"`
	Selected   catalog.Option `json:"selectedAnswer"`
}

// Snapshot is the persisted form of an in-progress quiz. The pool is stored
// in its shuffled order so a resumed quiz serves the same sequence.
type Snapshot struct {
	UserID  string   `json:"userId"`
	PoolIDs []string `json:"pool"`
	Index   int      `json:"index"`
	Answers []Answer `json:"answers"`
}
