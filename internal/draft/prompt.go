package draft

import (
	"fmt"
	"strings"
)

const systemPrompt = `You write multiple-choice questions for a self-study quiz.

Rules:
- Write exactly one question about the given topic.
- Give four options labelled A to D. Exactly one is correct. All four must differ.
- Wrong options should be plausible mistakes, not jokes.
- Keep the question self-contained and under 300 characters.
- Rate difficulty from 1 (easy) to 5 (hard) and estimate the seconds a learner needs (10 to 300).
- Never repeat or rephrase a question from the "already in the topic" list.`

func buildUserMessage(in Input, cfg Config, rejected []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Topic: %s\n", in.Topic)
	if in.Guidance != "" {
		fmt.Fprintf(&b, "Author guidance: %s\n", in.Guidance)
	}
	if in.Difficulty != 0 {
		fmt.Fprintf(&b, "Difficulty: %d\n", in.Difficulty)
	}

	b.WriteString("\nAlready in the topic:\n")
	b.WriteString(numbered(in.Existing, cfg.MaxExisting))

	if len(rejected) > 0 {
		b.WriteString("\n\nYour previous drafts were rejected:\n")
		b.WriteString(numbered(rejected, 0))
	}
	return b.String()
}

// numbered lists the last max items, or "None". max <= 0 keeps all.
func numbered(items []string, max int) string {
	if len(items) == 0 {
		return "None"
	}
	if max > 0 && len(items) > max {
		items = items[len(items)-max:]
	}
	var b strings.Builder
	for i, s := range items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, s)
	}
	return strings.TrimRight(b.String(), "\n")
}
