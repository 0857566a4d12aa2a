package drill

import "github.com/abhisek/lsatarcade/internal/llm"

// Schema is the strict shape of a drill as it should arrive from upstream.
// A reply that passes it (and Drill.Validate) skips field-by-field
// normalization entirely.
var Schema = &llm.Schema{
	Name:        "lsat-drill",
	Description: "A single five-choice LSAT practice question with its credited answer",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{
				"type":        "string",
				"minLength":   1,
				"description": "The stimulus and question stem shown to the learner",
			},
			"choices": map[string]any{
				"type":        "array",
				"minItems":    NumChoices,
				"maxItems":    NumChoices,
				"items":       map[string]any{"type": "string", "minLength": 1},
				"description": "Exactly five answer choices, in order A through E",
			},
			"answer": map[string]any{
				"type":        "string",
				"enum":        []any{"A", "B", "C", "D", "E"},
				"description": "Letter of the credited choice",
			},
			"explanation": map[string]any{
				"type":        "string",
				"minLength":   1,
				"description": "Why the credited choice is correct",
			},
		},
		"required": []any{"question", "choices", "answer", "explanation"},
	},
}
