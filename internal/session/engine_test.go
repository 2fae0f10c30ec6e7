package session

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"sort"
	"testing"
	"time"

	"github.com/abhisek/masterly/internal/apperr"
	"github.com/abhisek/masterly/internal/catalog"
	"github.com/abhisek/masterly/internal/mastery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

// noShuffle keeps the pool in document order.
func noShuffle(n int) int { return n - 1 }

// newDoc builds a document with n questions (correct answer A) and one user
// "u1" with every question pending.
func newDoc(n int) *catalog.Document {
	doc := catalog.Empty()
	doc.Topics = append(doc.Topics, catalog.Topic{ID: "t1", Name: "General"})
	for i := 1; i <= n; i++ {
		id := fmt.Sprintf("q%d", i)
		doc.Questions = append(doc.Questions, catalog.Question{
			ID: id, TopicID: "t1", Text: fmt.Sprintf("Question %d?", i),
			Options: catalog.Choices{A: "right", B: "wrong", C: "wrong", D: "wrong"},
			Correct: catalog.OptionA, Difficulty: 1, Effort: 10, Score: float64(i),
		})
		doc.Topics[0].QuestionIDs = append(doc.Topics[0].QuestionIDs, id)
	}
	doc.Users = append(doc.Users, catalog.User{ID: "u1", Username: "Ana", Progress: mastery.NewLedger(doc.QuestionIDs())})
	return doc
}

func TestStartPreconditionOrder(t *testing.T) {
	tests := []struct {
		name   string
		doc    func() *catalog.Document
		userID string
		want   apperr.Reason
	}{
		{"no questions beats no user", func() *catalog.Document { return catalog.Empty() }, "", apperr.ReasonNoQuestions},
		{"no active user", func() *catalog.Document { return newDoc(2) }, "", apperr.ReasonNoActiveUser},
		{"unknown user", func() *catalog.Document { return newDoc(2) }, "ghost", apperr.ReasonUserNotFound},
		{"all answered", func() *catalog.Document {
			d := newDoc(1)
			d.Users[0].Progress = mastery.NewLedger(nil)
			return d
		}, "u1", apperr.ReasonAllAnswered},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngineWithRand(noShuffle)
			err := e.Start(tt.doc(), tt.userID)
			require.Error(t, err)
			assert.Equal(t, apperr.KindPrecondition, apperr.KindOf(err))
			assert.Equal(t, tt.want, apperr.ReasonOf(err))
			assert.Equal(t, PhaseIdle, e.Phase())
		})
	}
}

func TestStartPoolIsPendingOnly(t *testing.T) {
	doc := newDoc(4)
	require.NoError(t, doc.Users[0].Progress.RecordAnswer("q2", true, 2, now))

	e := NewEngineWithRand(noShuffle)
	require.NoError(t, e.Start(doc, "u1"))
	assert.Equal(t, PhaseInProgress, e.Phase())
	assert.Equal(t, 3, e.PoolSize())

	snap := e.Snapshot()
	assert.Equal(t, []string{"q1", "q3", "q4"}, snap.PoolIDs)
}

func TestStartWhileInProgress(t *testing.T) {
	e := NewEngineWithRand(noShuffle)
	require.NoError(t, e.Start(newDoc(2), "u1"))
	err := e.Start(newDoc(2), "u1")
	assert.Equal(t, apperr.ReasonQuizInProgress, apperr.ReasonOf(err))
}

func TestFullQuiz(t *testing.T) {
	doc := newDoc(3)
	e := NewEngineWithRand(noShuffle)
	require.NoError(t, e.Start(doc, "u1"))

	q, idx, ok := e.Current()
	require.True(t, ok)
	assert.Equal(t, 0, idx)
	assert.Equal(t, "q1", q.ID)

	done, err := e.Submit(catalog.OptionA)
	require.NoError(t, err)
	assert.False(t, done)
	done, err = e.Submit(catalog.OptionB)
	require.NoError(t, err)
	assert.False(t, done)
	done, err = e.Submit(catalog.OptionA)
	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, PhaseFinalizing, e.Phase())

	_, _, ok = e.Current()
	assert.False(t, ok)

	out, err := e.Finalize(doc, now)
	require.NoError(t, err)
	assert.Equal(t, 2, out.Correct)
	assert.Equal(t, 3, out.PoolSize)
	assert.False(t, out.Early)
	assert.Empty(t, out.Unanswered)
	require.Len(t, out.Details, 3)
	assert.Equal(t, Detail{
		QuestionID: "q2", Text: "Question 2?",
		Chosen: catalog.OptionB, ChosenText: "wrong",
		CorrectOption: catalog.OptionA, CorrectText: "right",
		IsCorrect: false, Score: 2,
	}, out.Details[1])

	ledger := doc.Users[0].Progress
	assert.Len(t, ledger.Correct, 2)
	assert.Len(t, ledger.Wrong, 1)
	assert.Empty(t, ledger.NotAnswered)
	assert.Equal(t, mastery.BucketStats{Count: 2, AverageScore: 2}, out.Stats.Correct)
	assert.Equal(t, PhaseIdle, e.Phase())
	assert.Equal(t, "", e.UserID())
}

func TestFinishEarlyRecordsOnlyAnswered(t *testing.T) {
	doc := newDoc(5)
	e := NewEngineWithRand(noShuffle)
	require.NoError(t, e.Start(doc, "u1"))

	for _, opt := range []catalog.Option{catalog.OptionA, catalog.OptionC, catalog.OptionA} {
		_, err := e.Submit(opt)
		require.NoError(t, err)
	}
	require.NoError(t, e.FinishEarly())

	out, err := e.Finalize(doc, now)
	require.NoError(t, err)
	assert.True(t, out.Early)
	assert.Equal(t, 2, out.Correct)
	assert.Equal(t, 5, out.PoolSize)
	assert.Equal(t, []string{"Question 4?", "Question 5?"}, out.Unanswered)

	ledger := doc.Users[0].Progress
	assert.Equal(t, 3, len(ledger.Correct)+len(ledger.Wrong))
	assert.Equal(t, []string{"q4", "q5"}, ledger.NotAnswered)
	require.NoError(t, ledger.CheckPartition(doc.QuestionIDs()))
}

func TestFinishEarlyWithoutAnswers(t *testing.T) {
	e := NewEngineWithRand(noShuffle)
	require.NoError(t, e.Start(newDoc(2), "u1"))

	err := e.FinishEarly()
	assert.Equal(t, apperr.ReasonNoAnswersYet, apperr.ReasonOf(err))
	assert.Equal(t, PhaseInProgress, e.Phase())
}

func TestSubmitWithoutQuiz(t *testing.T) {
	e := NewEngine()
	_, err := e.Submit(catalog.OptionA)
	assert.Equal(t, apperr.ReasonNoQuizInProgress, apperr.ReasonOf(err))
	assert.Equal(t, apperr.ReasonNoQuizInProgress, apperr.ReasonOf(e.FinishEarly()))

	_, err = e.Finalize(newDoc(1), now)
	assert.Equal(t, apperr.KindPrecondition, apperr.KindOf(err))
}

func TestSubmitInvalidOption(t *testing.T) {
	e := NewEngineWithRand(noShuffle)
	require.NoError(t, e.Start(newDoc(2), "u1"))

	_, err := e.Submit("E")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Equal(t, 0, e.Answered())
}

func TestFinalizeSkipsNoLongerPending(t *testing.T) {
	doc := newDoc(2)
	e := NewEngineWithRand(noShuffle)
	require.NoError(t, e.Start(doc, "u1"))
	_, err := e.Submit(catalog.OptionA)
	require.NoError(t, err)
	_, err = e.Submit(catalog.OptionA)
	require.NoError(t, err)

	// Recorded elsewhere while the quiz ran.
	require.NoError(t, doc.Users[0].Progress.RecordAnswer("q1", false, 1, now))

	out, err := e.Finalize(doc, now)
	require.NoError(t, err)
	assert.Len(t, out.Details, 2)
	assert.Len(t, doc.Users[0].Progress.Wrong, 1)
	assert.Len(t, doc.Users[0].Progress.Correct, 1)
}

func TestFinalizeCommitsLedgerAtOnce(t *testing.T) {
	doc := newDoc(3)
	e := NewEngineWithRand(noShuffle)
	require.NoError(t, e.Start(doc, "u1"))
	_, err := e.Submit(catalog.OptionA)
	require.NoError(t, err)
	_, err = e.Submit(catalog.OptionB)
	require.NoError(t, err)
	require.NoError(t, e.FinishEarly())

	before := doc.Users[0].Progress
	_, err = e.Finalize(doc, now)
	require.NoError(t, err)

	// The ledger held before finalizing is left as it was.
	assert.Equal(t, []string{"q1", "q2", "q3"}, before.NotAnswered)
	assert.Empty(t, before.Correct)
	assert.Equal(t, []string{"q3"}, doc.Users[0].Progress.NotAnswered)
	assert.Equal(t, PhaseIdle, e.Phase())
}

func TestShuffleIsPermutation(t *testing.T) {
	in := []int{1, 2, 3, 4, 5, 6, 7, 8}
	for seed := 0; seed < 20; seed++ {
		s := slices.Clone(in)
		calls := 0
		Shuffle(s, func(n int) int {
			calls++
			return (seed + calls) % n
		})
		sorted := slices.Clone(s)
		sort.Ints(sorted)
		assert.Equal(t, in, sorted)
	}
}

func TestShuffleChangesOrder(t *testing.T) {
	in := []int{1, 2, 3, 4, 5, 6, 7, 8}
	seen := make([]map[int]bool, len(in))
	for i := range seen {
		seen[i] = map[int]bool{}
	}

	reordered := 0
	for range 200 {
		s := slices.Clone(in)
		Shuffle(s, rand.IntN)
		if !slices.Equal(s, in) {
			reordered++
		}
		for i, v := range s {
			seen[i][v] = true
		}
	}

	assert.Positive(t, reordered)
	for i, vals := range seen {
		assert.Greater(t, len(vals), 1, "position %d always held the same value", i)
	}
}

func TestEnginePoolOrderVaries(t *testing.T) {
	doc := newDoc(8)
	first := func() string {
		e := NewEngine()
		require.NoError(t, e.Start(doc, "u1"))
		q, _, _ := e.Current()
		return q.ID
	}

	firsts := map[string]bool{}
	for range 100 {
		firsts[first()] = true
	}
	assert.Greater(t, len(firsts), 1)
}

func TestSnapshotResume(t *testing.T) {
	doc := newDoc(3)
	e := NewEngine()
	require.NoError(t, e.Start(doc, "u1"))
	first, _, _ := e.Current()
	_, err := e.Submit(catalog.OptionB)
	require.NoError(t, err)

	snap := e.Snapshot()
	require.NotNil(t, snap)
	assert.Equal(t, 1, snap.Index)
	assert.Equal(t, first.ID, snap.PoolIDs[0])

	resumed := NewEngine()
	require.NoError(t, resumed.Resume(doc, snap))
	assert.Equal(t, e.Snapshot(), resumed.Snapshot())

	q, idx, ok := resumed.Current()
	require.True(t, ok)
	assert.Equal(t, 1, idx)
	assert.Equal(t, snap.PoolIDs[1], q.ID)
}

func TestSnapshotIdleIsNil(t *testing.T) {
	assert.Nil(t, NewEngine().Snapshot())
}

func TestResumeRejectsStaleSnapshot(t *testing.T) {
	base := func() *Snapshot {
		return &Snapshot{
			UserID:  "u1",
			PoolIDs: []string{"q2", "q1"},
			Index:   1,
			Answers: []Answer{{QuestionID: "q2", Selected: catalog.OptionA}},
		}
	}

	tests := []struct {
		name   string
		mutate func(*catalog.Document, *Snapshot)
		kind   apperr.Kind
	}{
		{"unknown user", func(_ *catalog.Document, s *Snapshot) { s.UserID = "ghost" }, apperr.KindPrecondition},
		{"deleted question", func(d *catalog.Document, _ *Snapshot) { d.Questions = d.Questions[:1] }, apperr.KindNotFound},
		{"already answered", func(d *catalog.Document, _ *Snapshot) {
			_ = d.Users[0].Progress.RecordAnswer("q1", true, 1, now)
		}, apperr.KindValidation},
		{"answers out of step", func(_ *catalog.Document, s *Snapshot) { s.Index = 0 }, apperr.KindValidation},
		{"answer for wrong question", func(_ *catalog.Document, s *Snapshot) { s.Answers[0].QuestionID = "q1" }, apperr.KindValidation},
		{"empty pool", func(_ *catalog.Document, s *Snapshot) { s.PoolIDs = nil }, apperr.KindValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := newDoc(2)
			snap := base()
			tt.mutate(doc, snap)

			e := NewEngine()
			err := e.Resume(doc, snap)
			require.Error(t, err)
			assert.Equal(t, tt.kind, apperr.KindOf(err))
			assert.Equal(t, PhaseIdle, e.Phase())
		})
	}
}
