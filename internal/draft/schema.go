package draft

import "github.com/abhisek/masterly/internal/llm"

// Schema is the shape requested from the model.
var Schema = &llm.Schema{
	Name:        "quiz-question",
	Description: "One multiple-choice quiz question with four options",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{
				"type":        "string",
				"description": "The question as shown to the learner",
			},
			"options": map[string]any{
				"type":        "object",
				"description": "The four answer options keyed by letter",
				"properties": map[string]any{
					"A": map[string]any{"type": "string"},
					"B": map[string]any{"type": "string"},
					"C": map[string]any{"type": "string"},
					"D": map[string]any{"type": "string"},
				},
				"required":             []any{"A", "B", "C", "D"},
				"additionalProperties": false,
			},
			"correct": map[string]any{
				"type":        "string",
				"enum":        []any{"A", "B", "C", "D"},
				"description": "Letter of the correct option",
			},
			"difficulty": map[string]any{
				"type":        "integer",
				"minimum":     1,
				"maximum":     5,
				"description": "1 (easy) to 5 (hard)",
			},
			"effort_seconds": map[string]any{
				"type":        "integer",
				"minimum":     10,
				"maximum":     300,
				"description": "Expected seconds for a learner to answer",
			},
			"rationale": map[string]any{
				"type":        "string",
				"description": "One or two sentences on why the correct option is right",
			},
		},
		"required":             []any{"question", "options", "correct", "difficulty", "effort_seconds", "rationale"},
		"additionalProperties": false,
	},
}

// output mirrors Schema.
type output struct {
	Question   string            `json:"question"`
	Options    map[string]string `json:"options"`
	Correct    string            `json:"correct"`
	Difficulty int               `json:"difficulty"`
	Effort     int               `json:"effort_seconds"`
	Rationale  string            `json:"rationale"`
}
