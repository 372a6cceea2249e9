package questiongen

import "github.com/Levisoloai/MediPrepBeta-sub001/internal/llm"

// BatchSchema is the JSON schema for generation responses: an object with a
// "questions" array so providers that require a top-level object all work.
var BatchSchema = &llm.Schema{
	Name:        "practice-questions",
	Description: "A batch of multiple-choice medical practice questions",
	Definition: map[string]any{
		"type":     "object",
		"required": []any{"questions"},
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"required": []any{
						"text", "options", "correct_answer", "concept_tags", "explanation", "difficulty",
					},
					"properties": map[string]any{
						"text": map[string]any{
							"type":        "string",
							"description": "The question stem, self-contained",
						},
						"options": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "4-5 answer choices, exactly one correct",
						},
						"correct_answer": map[string]any{
							"type":        "string",
							"description": "The exact text of the correct option",
						},
						"concept_tags": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Concept names this question tests, target concept first",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "Why the correct answer is right, briefly",
						},
						"difficulty": map[string]any{
							"type":        "integer",
							"minimum":     1,
							"maximum":     5,
							"description": "1 (recall) to 5 (multi-step reasoning)",
						},
					},
				},
			},
		},
	},
}
