package schemas

// QuestionBank describes a question bank file.
var QuestionBank = &Schema{
	Name: "question-bank",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id":         map[string]any{"type": "string", "minLength": 1},
						"section":    map[string]any{"type": "string", "minLength": 1},
						"area":       map[string]any{"type": "string", "minLength": 1},
						"difficulty": map[string]any{"type": "string", "enum": []any{"easy", "medium", "hard"}},
						"prompt":     map[string]any{"type": "string"},
						"options": map[string]any{
							"type":     "array",
							"minItems": 2,
							"items": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"id":   map[string]any{"type": "string", "minLength": 1},
									"text": map[string]any{"type": "string"},
								},
								"required": []any{"id", "text"},
							},
						},
						"correct":     map[string]any{"type": "string", "minLength": 1},
						"explanation": map[string]any{"type": "string"},
					},
					"required": []any{"id", "section", "area", "difficulty", "prompt", "options", "correct"},
				},
			},
		},
		"required": []any{"questions"},
	},
}

// BlueprintTable describes a blueprint table file. Weight sums are
// checked by the blueprint package, not by the schema.
var BlueprintTable = &Schema{
	Name: "blueprint-table",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"sections": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"section": map[string]any{"type": "string", "minLength": 1},
						"label":   map[string]any{"type": "string"},
						"areas": map[string]any{
							"type":     "array",
							"minItems": 1,
							"items": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"code":   map[string]any{"type": "string", "minLength": 1},
									"label":  map[string]any{"type": "string"},
									"weight": map[string]any{"type": "number", "minimum": 0, "maximum": 1},
								},
								"required": []any{"code", "weight"},
							},
						},
					},
					"required": []any{"section", "areas"},
				},
			},
		},
		"required": []any{"sections"},
	},
}

// Attempt describes a submitted attempt file.
var Attempt = &Schema{
	Name: "attempt",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"exam_id": map[string]any{"type": "string", "minLength": 1},
			"answers": map[string]any{
				"type":                 "object",
				"description":          "question ID to option ID; empty or \"unanswered\" marks a skipped question",
				"additionalProperties": map[string]any{"type": "string"},
			},
			"elapsed_ms": map[string]any{
				"type":                 "object",
				"additionalProperties": map[string]any{"type": "integer", "minimum": 0},
			},
			"submitted_at": map[string]any{"type": "string"},
		},
		"required": []any{"exam_id", "answers"},
	},
}
