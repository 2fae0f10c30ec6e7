// Package draft asks a language model for multiple-choice question drafts
// and checks them before they are offered for saving.
package draft

import (
	"github.com/abhisek/masterly/internal/catalog"
)

// Draft is a candidate question. It is not stored until the caller hands
// it to the tracker.
type Draft struct {
	Text       string
	Options    catalog.Choices
	Correct    catalog.Option
	Difficulty int
	Effort     int

	// Rationale explains the correct answer. Shown to the author only.
	Rationale string
}

// Input describes what to draft.
type Input struct {
	Topic string

	// Existing holds question texts already in the topic. The model is
	// told to avoid them and drafts repeating one are rejected.
	Existing []string

	// Guidance is optional free text from the author, e.g. "about rivers".
	Guidance string

	// Difficulty pins the difficulty level when non-zero.
	Difficulty int
}
