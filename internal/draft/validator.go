package draft

import (
	"fmt"
	"strings"

	"github.com/abhisek/masterly/internal/catalog"
	"github.com/abhisek/masterly/internal/scoring"
)

// MaxTextLen bounds question and option text.
const MaxTextLen = 300

// Validator checks a draft. Validators must not modify it.
type Validator interface {
	Name() string
	Validate(d *Draft, in Input) *ValidationError
}

// ValidationError is a rejected draft.
type ValidationError struct {
	Validator string
	Message   string

	// Retryable is true when asking again may produce a usable draft.
	Retryable bool
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("draft rejected by %s: %s", e.Validator, e.Message)
}

// StructuralValidator checks text lengths and the option set.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(d *Draft, _ Input) *ValidationError {
	reject := func(format string, args ...any) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf(format, args...), Retryable: true}
	}

	if strings.TrimSpace(d.Text) == "" {
		return reject("question text is empty")
	}
	if len(d.Text) > MaxTextLen {
		return reject("question text exceeds %d characters", MaxTextLen)
	}
	if !d.Correct.Valid() {
		return reject("correct option %q is not one of A-D", d.Correct)
	}

	seen := make(map[string]catalog.Option, 4)
	for _, o := range catalog.AllOptions {
		text := strings.TrimSpace(d.Options.Text(o))
		if text == "" {
			return reject("option %s is empty", o)
		}
		if len(text) > MaxTextLen {
			return reject("option %s exceeds %d characters", o, MaxTextLen)
		}
		key := strings.ToLower(text)
		if prev, dup := seen[key]; dup {
			return reject("options %s and %s are the same", prev, o)
		}
		seen[key] = o
	}
	return nil
}

// RangeValidator checks difficulty and effort against the scoring bounds.
type RangeValidator struct{}

func (v *RangeValidator) Name() string { return "range" }

func (v *RangeValidator) Validate(d *Draft, in Input) *ValidationError {
	if err := scoring.CheckLevels(d.Difficulty, d.Effort); err != nil {
		return &ValidationError{Validator: v.Name(), Message: err.Error(), Retryable: true}
	}
	if in.Difficulty != 0 && d.Difficulty != in.Difficulty {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("difficulty %d, asked for %d", d.Difficulty, in.Difficulty),
			Retryable: true,
		}
	}
	return nil
}

// DuplicateValidator rejects drafts whose text matches an existing
// question, ignoring case and surrounding space.
type DuplicateValidator struct{}

func (v *DuplicateValidator) Name() string { return "duplicate" }

func (v *DuplicateValidator) Validate(d *Draft, in Input) *ValidationError {
	text := strings.TrimSpace(d.Text)
	for _, e := range in.Existing {
		if strings.EqualFold(strings.TrimSpace(e), text) {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("%q already exists", text),
				Retryable: true,
			}
		}
	}
	return nil
}
