package ids

import "github.com/google/uuid"

// New returns a random (version 4) UUID string for a user, topic or question.
// Uniqueness is probabilistic; no registry of issued ids is kept.
func New() string {
	return uuid.NewString()
}
