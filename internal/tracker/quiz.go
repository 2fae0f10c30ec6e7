package tracker

import (
	"context"

	"github.com/abhisek/masterly/internal/catalog"
	"github.com/abhisek/masterly/internal/session"
	"github.com/abhisek/masterly/internal/store"
)

// QuizView is the question currently being asked.
type QuizView struct {
	Question catalog.Question
	Index    int // zero-based
	Total    int
}

// Step is the result of submitting an answer: either the next question or,
// after the last one, the finalized outcome.
type Step struct {
	Next    QuizView
	Outcome *session.Outcome
}

// Done reports whether the quiz finished with this step.
func (st Step) Done() bool {
	return st.Outcome != nil
}

// QuizInProgress reports whether a quiz is running.
func (s *Service) QuizInProgress() bool {
	return s.engine.InProgress()
}

// QuizUserID returns the user taking the running quiz, or "".
func (s *Service) QuizUserID() string {
	return s.engine.UserID()
}

// CurrentQuestion returns the question being asked.
func (s *Service) CurrentQuestion() (QuizView, bool) {
	q, idx, ok := s.engine.Current()
	if !ok {
		return QuizView{}, false
	}
	return QuizView{Question: q, Index: idx, Total: s.engine.PoolSize()}, true
}

// StartQuiz draws a shuffled pool of the active user's pending questions.
func (s *Service) StartQuiz(ctx context.Context) (QuizView, error) {
	if err := s.engine.Start(s.doc, s.activeUserID); err != nil {
		s.log.Debug("start quiz refused", "error", err)
		return QuizView{}, err
	}
	view, _ := s.CurrentQuestion()
	s.log.Info("quiz started", "user_id", s.activeUserID, "pool", view.Total)
	s.record(ctx, store.QuizEventData{
		Action:   store.QuizActionStart,
		UserID:   s.activeUserID,
		Username: s.username(s.activeUserID),
		PoolSize: view.Total,
	})
	return view, s.persist(ctx)
}

// SubmitAnswer answers the current question. After the last question the quiz
// is finalized and the outcome returned.
func (s *Service) SubmitAnswer(ctx context.Context, answer string) (Step, error) {
	opt, err := catalog.ParseOption(answer)
	if err != nil {
		// Submit checks the phase before rejecting the letter.
		opt = catalog.Option(answer)
	}
	done, err := s.engine.Submit(opt)
	if err != nil {
		return Step{}, err
	}
	if done {
		out, err := s.finalize(ctx)
		return Step{Outcome: out}, err
	}
	next, _ := s.CurrentQuestion()
	return Step{Next: next}, s.persist(ctx)
}

// FinishEarly ends the quiz with the answers given so far.
func (s *Service) FinishEarly(ctx context.Context) (*session.Outcome, error) {
	if err := s.engine.FinishEarly(); err != nil {
		return nil, err
	}
	return s.finalize(ctx)
}

func (s *Service) finalize(ctx context.Context) (*session.Outcome, error) {
	out, err := s.engine.Finalize(s.doc, s.now())
	if err != nil {
		s.log.Error("finalize quiz failed", "error", err)
		return nil, err
	}
	s.log.Info("quiz finished",
		"user_id", out.UserID,
		"correct", out.Correct,
		"answered", len(out.Details),
		"pool", out.PoolSize,
		"early", out.Early,
	)
	s.record(ctx, store.QuizEventData{
		Action:   store.QuizActionFinish,
		UserID:   out.UserID,
		Username: out.Username,
		PoolSize: out.PoolSize,
		Answered: len(out.Details),
		Correct:  out.Correct,
		Early:    out.Early,
	})
	return out, s.persist(ctx)
}

// History returns quiz events newest first; an empty userID lists everyone.
func (s *Service) History(ctx context.Context, userID string, limit int) ([]store.QuizEvent, error) {
	if s.history == nil {
		return nil, nil
	}
	return s.history.QueryQuizEvents(ctx, userID, store.QueryOpts{Limit: limit})
}

// record appends to the history. Failures are logged only.
func (s *Service) record(ctx context.Context, ev store.QuizEventData) {
	if s.history == nil {
		return
	}
	if err := s.history.AppendQuizEvent(ctx, ev); err != nil {
		s.log.Warn("append quiz event failed", "action", ev.Action, "error", err)
	}
}

func (s *Service) username(id string) string {
	if u := s.doc.User(id); u != nil {
		return u.Username
	}
	return ""
}
