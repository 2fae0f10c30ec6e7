package tracker

import (
	"github.com/abhisek/masterly/internal/catalog"
	"github.com/abhisek/masterly/internal/scoring"
)

func scoreOf(q catalog.Question) float64 {
	return scoring.Score(int(q.Difficulty), int(q.Effort))
}
