package scoring

import (
	"errors"
	"testing"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name       string
		difficulty int
		effort     int
		want       float64
	}{
		{"minimum", 1, 10, 1.06},
		{"scenario A", 3, 150, 3.70},
		{"mid", 2, 60, 1.72},
		{"high", 4, 180, 5.32},
		{"maximum", 5, 300, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.difficulty, tt.effort)
			if got != tt.want {
				t.Errorf("Score(%d, %d) = %v, want %v", tt.difficulty, tt.effort, got, tt.want)
			}
		})
	}
}

func TestScoreMonotonicAndBounded(t *testing.T) {
	for d := MinDifficulty; d <= MaxDifficulty; d++ {
		prev := 0.0
		for e := MinEffort; e <= MaxEffort; e++ {
			s := Score(d, e)
			if s < MinScore || s > MaxScore {
				t.Fatalf("Score(%d, %d) = %v out of [1,10]", d, e, s)
			}
			if s < prev {
				t.Fatalf("Score(%d, %d) = %v decreased from %v", d, e, s, prev)
			}
			prev = s
		}
	}

	for e := MinEffort; e <= MaxEffort; e++ {
		prev := 0.0
		for d := MinDifficulty; d <= MaxDifficulty; d++ {
			s := Score(d, e)
			if s < prev {
				t.Fatalf("Score(%d, %d) = %v decreased from %v", d, e, s, prev)
			}
			prev = s
		}
	}
}

func TestCheckLevels(t *testing.T) {
	tests := []struct {
		name       string
		difficulty int
		effort     int
		wantErr    error
	}{
		{"valid low", 1, 10, nil},
		{"valid high", 5, 300, nil},
		{"difficulty zero", 0, 100, ErrDifficultyRange},
		{"difficulty six", 6, 100, ErrDifficultyRange},
		{"effort too small", 3, 9, ErrEffortRange},
		{"effort too large", 3, 301, ErrEffortRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckLevels(tt.difficulty, tt.effort)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("CheckLevels error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRound2(t *testing.T) {
	if got := Round2(3.14159); got != 3.14 {
		t.Errorf("Round2(3.14159) = %v, want 3.14", got)
	}
	if got := Round2(2.675000001); got != 2.68 {
		t.Errorf("Round2(2.675000001) = %v, want 2.68", got)
	}
}
