// Package session runs a quiz: it draws a shuffled pool from the active
// user's pending questions, logs answers, and records them in the user's
// ledger when the quiz is finalized.
package session

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/abhisek/masterly/internal/apperr"
	"github.com/abhisek/masterly/internal/catalog"
	"github.com/abhisek/masterly/internal/mastery"
)

// Engine is the quiz state machine. It is not safe for concurrent use.
type Engine struct {
	phase   Phase
	userID  string
	pool    []catalog.Question
	index   int
	answers []Answer
	early   bool

	intn func(n int) int
}

// NewEngine returns an idle engine shuffling with math/rand/v2.
func NewEngine() *Engine {
	return &Engine{intn: rand.IntN}
}

// NewEngineWithRand returns an idle engine shuffling with intn.
func NewEngineWithRand(intn func(n int) int) *Engine {
	return &Engine{intn: intn}
}

// Phase returns the current phase.
func (e *Engine) Phase() Phase {
	return e.phase
}

// InProgress reports whether a quiz is running.
func (e *Engine) InProgress() bool {
	return e.phase == PhaseInProgress
}

// UserID returns the user taking the quiz, or "" when idle.
func (e *Engine) UserID() string {
	return e.userID
}

// Answered returns the number of logged answers.
func (e *Engine) Answered() int {
	return len(e.answers)
}

// PoolSize returns the number of questions drawn for the quiz.
func (e *Engine) PoolSize() int {
	return len(e.pool)
}

// Start draws the pool for activeUserID. Preconditions are checked in order:
// questions exist, a user is active, the user exists, something is pending.
func (e *Engine) Start(doc *catalog.Document, activeUserID string) error {
	if e.phase != PhaseIdle {
		return apperr.Precondition(apperr.ReasonQuizInProgress, "a quiz is already in progress")
	}
	if len(doc.Questions) == 0 {
		return apperr.Precondition(apperr.ReasonNoQuestions, "no questions available; add some questions first")
	}
	if activeUserID == "" {
		return apperr.Precondition(apperr.ReasonNoActiveUser, "no active user; select a user first")
	}
	user := doc.User(activeUserID)
	if user == nil {
		return apperr.Precondition(apperr.ReasonUserNotFound, "active user not found")
	}

	var pool []catalog.Question
	for _, q := range doc.Questions {
		if user.Progress.IsPending(q.ID) {
			pool = append(pool, q)
		}
	}
	if len(pool) == 0 {
		return apperr.Precondition(apperr.ReasonAllAnswered, "you have answered all available questions")
	}

	Shuffle(pool, e.intn)

	e.phase = PhaseInProgress
	e.userID = activeUserID
	e.pool = pool
	e.index = 0
	e.answers = nil
	e.early = false
	return nil
}

// Current returns the question being asked and its zero-based position.
// ok is false unless a quiz is in progress.
func (e *Engine) Current() (q catalog.Question, index int, ok bool) {
	if e.phase != PhaseInProgress {
		return catalog.Question{}, 0, false
	}
	return e.pool[e.index], e.index, true
}

// Submit logs opt as the answer to the current question and advances. done
// is true when that was the last question; the engine is then Finalizing.
func (e *Engine) Submit(opt catalog.Option) (done bool, err error) {
	if e.phase != PhaseInProgress {
		return false, apperr.Precondition(apperr.ReasonNoQuizInProgress, "no quiz in progress")
	}
	if !opt.Valid() {
		return false, apperr.Validation(fmt.Sprintf("invalid answer %q", opt), errors.New("must be one of A, B, C, D"))
	}

	e.answers = append(e.answers, Answer{QuestionID: e.pool[e.index].ID, Selected: opt})
	e.index++
	if e.index == len(e.pool) {
		e.phase = PhaseFinalizing
		return true, nil
	}
	return false, nil
}

// FinishEarly ends the quiz before the pool is exhausted. At least one answer
// must have been submitted.
func (e *Engine) FinishEarly() error {
	if e.phase != PhaseInProgress {
		return apperr.Precondition(apperr.ReasonNoQuizInProgress, "no quiz in progress")
	}
	if len(e.answers) == 0 {
		return apperr.Precondition(apperr.ReasonNoAnswersYet, "answer at least one question before finishing")
	}
	e.early = true
	e.phase = PhaseFinalizing
	return nil
}

// Finalize records every logged answer in the user's ledger, stamped with
// now, and returns the outcome. The engine is idle afterwards, and the ledger
// is only changed when every answer was recorded. Answers for questions that
// are no longer pending are reported but not recorded.
func (e *Engine) Finalize(doc *catalog.Document, now time.Time) (*Outcome, error) {
	if e.phase != PhaseFinalizing {
		return nil, apperr.Precondition(apperr.ReasonNoQuizInProgress, "no finished quiz to finalize")
	}
	user := doc.User(e.userID)
	if user == nil {
		e.Reset()
		return nil, apperr.Precondition(apperr.ReasonUserNotFound, "quiz user no longer exists")
	}

	out := &Outcome{
		UserID:   user.ID,
		Username: user.Username,
		PoolSize: len(e.pool),
		Early:    e.early,
		Details:  make([]Detail, 0, len(e.answers)),
	}

	ledger := user.Progress.Clone()
	for i, a := range e.answers {
		q := e.pool[i]
		correct := a.Selected == q.Correct
		if err := ledger.RecordAnswer(q.ID, correct, q.Score, now); err != nil && !errors.Is(err, mastery.ErrNotPending) {
			e.Reset()
			return nil, err
		}
		if correct {
			out.Correct++
		}
		out.Details = append(out.Details, Detail{
			QuestionID:    q.ID,
			Text:          q.Text,
			Chosen:        a.Selected,
			ChosenText:    q.Options.Text(a.Selected),
			CorrectOption: q.Correct,
			CorrectText:   q.Options.Text(q.Correct),
			IsCorrect:     correct,
			Score:         q.Score,
		})
	}

	if e.early {
		for _, q := range e.pool[len(e.answers):] {
			out.Unanswered = append(out.Unanswered, q.Text)
		}
	}
	user.Progress = ledger
	out.Stats = user.Progress.Stats()

	e.Reset()
	return out, nil
}

// Reset discards any quiz without recording answers.
func (e *Engine) Reset() {
	e.phase = PhaseIdle
	e.userID = ""
	e.pool = nil
	e.index = 0
	e.answers = nil
	e.early = false
}

// Snapshot captures an in-progress quiz, or returns nil.
func (e *Engine) Snapshot() *Snapshot {
	if e.phase != PhaseInProgress {
		return nil
	}
	ids := make([]string, len(e.pool))
	for i, q := range e.pool {
		ids[i] = q.ID
	}
	return &Snapshot{
		UserID:  e.userID,
		PoolIDs: ids,
		Index:   e.index,
		Answers: slices.Clone(e.answers),
	}
}

// Resume restores a quiz captured by Snapshot against doc. The snapshot is
// rejected when it no longer matches the document: the user is gone, a pooled
// question was deleted or already answered, or the answer log is inconsistent.
func (e *Engine) Resume(doc *catalog.Document, snap *Snapshot) error {
	if e.phase != PhaseIdle {
		return apperr.Precondition(apperr.ReasonQuizInProgress, "a quiz is already in progress")
	}
	if snap == nil || len(snap.PoolIDs) == 0 {
		return apperr.Validation("invalid quiz snapshot", errors.New("empty pool"))
	}
	user := doc.User(snap.UserID)
	if user == nil {
		return apperr.Precondition(apperr.ReasonUserNotFound, "quiz user no longer exists")
	}
	if snap.Index < 0 || snap.Index >= len(snap.PoolIDs) || len(snap.Answers) != snap.Index {
		return apperr.Validation("invalid quiz snapshot", fmt.Errorf("index %d with %d answers for %d questions",
			snap.Index, len(snap.Answers), len(snap.PoolIDs)))
	}

	pool := make([]catalog.Question, len(snap.PoolIDs))
	for i, id := range snap.PoolIDs {
		q := doc.Question(id)
		if q == nil {
			return apperr.NotFound("quiz question %s no longer exists", id)
		}
		if !user.Progress.IsPending(id) {
			return apperr.Validation("invalid quiz snapshot", fmt.Errorf("question %s already answered", id))
		}
		pool[i] = *q
	}
	for i, a := range snap.Answers {
		if a.QuestionID != pool[i].ID || !a.Selected.Valid() {
			return apperr.Validation("invalid quiz snapshot", fmt.Errorf("answer %d does not match the pool", i))
		}
	}

	e.phase = PhaseInProgress
	e.userID = snap.UserID
	e.pool = pool
	e.index = snap.Index
	e.answers = slices.Clone(snap.Answers)
	e.early = false
	return nil
}
