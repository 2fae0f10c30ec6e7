package scoring

import (
	"errors"
	"fmt"
	"math"
)

// Bounds for the authoring inputs of a question.
const (
	MinDifficulty = 1
	MaxDifficulty = 5
	MinEffort     = 10  // seconds
	MaxEffort     = 300 // seconds

	MinScore = 1.0
	MaxScore = 10.0

	maxRaw = MaxDifficulty * MaxEffort
)

var (
	// ErrDifficultyRange is returned by CheckLevels for a difficulty outside [1,5].
	ErrDifficultyRange = errors.New("difficulty level must be between 1 and 5")

	// ErrEffortRange is returned by CheckLevels for an effort outside [10,300] seconds.
	ErrEffortRange = errors.New("effort level must be between 10 and 300 seconds")
)

// CheckLevels reports whether difficulty and effort are valid Score inputs.
func CheckLevels(difficulty, effort int) error {
	if difficulty < MinDifficulty || difficulty > MaxDifficulty {
		return fmt.Errorf("%w (got %d)", ErrDifficultyRange, difficulty)
	}
	if effort < MinEffort || effort > MaxEffort {
		return fmt.Errorf("%w (got %d)", ErrEffortRange, effort)
	}
	return nil
}

// Score maps a difficulty/effort pair onto the 1-10 scale, rounded to two
// decimals. Callers must run CheckLevels first; out-of-range inputs produce
// out-of-range scores.
func Score(difficulty, effort int) float64 {
	raw := float64(difficulty * effort)
	return Round2(raw/maxRaw*9 + 1)
}

// Round2 rounds v to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
