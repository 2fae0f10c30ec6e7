package mastery

import "github.com/abhisek/masterly/internal/scoring"

// NotAnsweredAverage is reported as the average score of a non-empty
// not-answered bucket. Pending questions carry no score of their own, so this
// is a fixed placeholder rather than a mean.
const NotAnsweredAverage = 1.0

// BucketStats summarizes one bucket.
type BucketStats struct {
	Count        int
	AverageScore float64
}

// Stats summarizes a ledger for display.
type Stats struct {
	Correct     BucketStats
	Wrong       BucketStats
	NotAnswered BucketStats
}

// Total is the number of questions the ledger knows about.
func (s Stats) Total() int {
	return s.Correct.Count + s.Wrong.Count + s.NotAnswered.Count
}

// Stats computes counts and average scores per bucket.
func (l *Ledger) Stats() Stats {
	pending := BucketStats{Count: len(l.NotAnswered)}
	if pending.Count > 0 {
		pending.AverageScore = NotAnsweredAverage
	}
	return Stats{
		Correct:     summarize(l.Correct),
		Wrong:       summarize(l.Wrong),
		NotAnswered: pending,
	}
}

func summarize(records []AnswerRecord) BucketStats {
	if len(records) == 0 {
		return BucketStats{}
	}
	var sum float64
	for _, r := range records {
		sum += r.Score
	}
	return BucketStats{
		Count:        len(records),
		AverageScore: scoring.Round2(sum / float64(len(records))),
	}
}
