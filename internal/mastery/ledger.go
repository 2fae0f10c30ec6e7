// Package mastery tracks, per user, which questions were answered correctly,
// answered wrong, or are still pending.
package mastery

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"
)

// ErrNotPending is returned when recording an answer for a question that is
// not in the not-answered bucket.
var ErrNotPending = errors.New("question is not pending")

// DateTimeLayout matches the ISO-8601 form written by the original documents.
const DateTimeLayout = "2006-01-02T15:04:05.000Z07:00"

// AnswerRecord is an immutable entry in the correct or wrong bucket.
type AnswerRecord struct {
	QuestionID string  `json:"questionId"`
	DateTime   string  `json:"dateTime"`
	Score      float64 `json:"score"`

	// raw holds an entry that was not a well-formed record, written back
	// as it was read.
	raw json.RawMessage
}

type answerRecordWire struct {
	QuestionID string  `json:"questionId"`
	DateTime   string  `json:"dateTime"`
	Score      float64 `json:"score"`
}

// UnmarshalJSON accepts any JSON value. A bare string is taken as the
// question id; other malformed entries keep whatever fields decode.
func (r *AnswerRecord) UnmarshalJSON(data []byte) error {
	var w answerRecordWire
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("{")) && json.Unmarshal(data, &w) == nil {
		*r = AnswerRecord{QuestionID: w.QuestionID, DateTime: w.DateTime, Score: w.Score}
		return nil
	}

	*r = AnswerRecord{raw: append(json.RawMessage(nil), data...)}
	var id string
	if json.Unmarshal(data, &id) == nil {
		r.QuestionID = id
		return nil
	}
	var fields map[string]json.RawMessage
	if json.Unmarshal(data, &fields) == nil {
		_ = json.Unmarshal(fields["questionId"], &r.QuestionID)
		_ = json.Unmarshal(fields["dateTime"], &r.DateTime)
		_ = json.Unmarshal(fields["score"], &r.Score)
	}
	return nil
}

func (r AnswerRecord) MarshalJSON() ([]byte, error) {
	if r.raw != nil {
		return r.raw, nil
	}
	return json.Marshal(answerRecordWire{QuestionID: r.QuestionID, DateTime: r.DateTime, Score: r.Score})
}

// Bucket names one of the three partitions of a ledger.
type Bucket string

const (
	BucketCorrect     Bucket = "correct"
	BucketWrong       Bucket = "wrong"
	BucketNotAnswered Bucket = "not_answered"
)

// Ledger is a user's learning progress. Every known question id is in
// exactly one of the three buckets.
type Ledger struct {
	Correct     []AnswerRecord `json:"questionsAnsweredCorrectly"`
	Wrong       []AnswerRecord `json:"questionsAnsweredWrong"`
	NotAnswered []string       `json:"questionsNotAnswered"`
}

// NewLedger returns a ledger with every id pending.
func NewLedger(questionIDs []string) Ledger {
	pending := make([]string, len(questionIDs))
	copy(pending, questionIDs)
	return Ledger{
		Correct:     []AnswerRecord{},
		Wrong:       []AnswerRecord{},
		NotAnswered: pending,
	}
}

// MarshalJSON writes empty buckets as [] rather than null so exports stay
// importable.
func (l Ledger) MarshalJSON() ([]byte, error) {
	type wire Ledger
	w := wire(l)
	if w.Correct == nil {
		w.Correct = []AnswerRecord{}
	}
	if w.Wrong == nil {
		w.Wrong = []AnswerRecord{}
	}
	if w.NotAnswered == nil {
		w.NotAnswered = []string{}
	}
	return json.Marshal(w)
}

// Clone returns a ledger that shares no backing arrays with l.
func (l Ledger) Clone() Ledger {
	return Ledger{
		Correct:     slices.Clone(l.Correct),
		Wrong:       slices.Clone(l.Wrong),
		NotAnswered: slices.Clone(l.NotAnswered),
	}
}

// AddPending marks a newly created question as not answered.
func (l *Ledger) AddPending(questionID string) {
	l.NotAnswered = append(l.NotAnswered, questionID)
}

// IsPending reports whether questionID is in the not-answered bucket.
func (l *Ledger) IsPending(questionID string) bool {
	return slices.Contains(l.NotAnswered, questionID)
}

// RecordAnswer moves questionID from not-answered into the correct or wrong
// bucket. The ledger is unchanged when the question is not pending.
func (l *Ledger) RecordAnswer(questionID string, correct bool, score float64, at time.Time) error {
	if !l.IsPending(questionID) {
		return fmt.Errorf("%w: %s", ErrNotPending, questionID)
	}

	l.NotAnswered = slices.DeleteFunc(l.NotAnswered, func(id string) bool {
		return id == questionID
	})

	rec := AnswerRecord{
		QuestionID: questionID,
		DateTime:   at.UTC().Format(DateTimeLayout),
		Score:      score,
	}
	if correct {
		l.Correct = append(l.Correct, rec)
	} else {
		l.Wrong = append(l.Wrong, rec)
	}
	return nil
}

// CheckPartition verifies that every id in questionIDs sits in exactly one
// bucket and that no bucket references an unknown id.
func (l *Ledger) CheckPartition(questionIDs []string) error {
	seen := make(map[string]Bucket, len(questionIDs))
	known := make(map[string]bool, len(questionIDs))
	for _, id := range questionIDs {
		known[id] = true
	}

	add := func(id string, b Bucket) error {
		if !known[id] {
			return fmt.Errorf("%s bucket references unknown question %s", b, id)
		}
		if prev, ok := seen[id]; ok {
			return fmt.Errorf("question %s in both %s and %s", id, prev, b)
		}
		seen[id] = b
		return nil
	}

	for _, r := range l.Correct {
		if err := add(r.QuestionID, BucketCorrect); err != nil {
			return err
		}
	}
	for _, r := range l.Wrong {
		if err := add(r.QuestionID, BucketWrong); err != nil {
			return err
		}
	}
	for _, id := range l.NotAnswered {
		if err := add(id, BucketNotAnswered); err != nil {
			return err
		}
	}

	for _, id := range questionIDs {
		if _, ok := seen[id]; !ok {
			return fmt.Errorf("question %s missing from every bucket", id)
		}
	}
	return nil
}
