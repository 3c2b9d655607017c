package content

// Schemas for the curriculum document tree. They pin down the fields the app
// actually reads; authoring tools may add extra keys freely.

var cursosIndexSchema = &docSchema{
	Name: "cursos-index",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"cursos": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id":   map[string]any{"type": "string"},
						"name": map[string]any{"type": "string"},
					},
					"required": []any{"id", "name"},
				},
			},
		},
		"required": []any{"cursos"},
	},
}

var cursoDetailSchema = &docSchema{
	Name: "curso-detail",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id":   map[string]any{"type": "string"},
			"name": map[string]any{"type": "string"},
			"subjects": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id":         map[string]any{"type": "string"},
						"name":       map[string]any{"type": "string"},
						"icon":       map[string]any{"type": "string"},
						"color":      map[string]any{"type": "string"},
						"lang":       map[string]any{"type": "string"},
						"topicCount": map[string]any{"type": "integer"},
					},
					"required": []any{"id", "name"},
				},
			},
		},
		"required": []any{"id", "name", "subjects"},
	},
}

var subjectDetailSchema = &docSchema{
	Name: "subject-detail",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id":   map[string]any{"type": "string"},
			"name": map[string]any{"type": "string"},
			"topics": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id":            map[string]any{"type": "string"},
						"title":         map[string]any{"type": "string"},
						"description":   map[string]any{"type": "string"},
						"icon":          map[string]any{"type": "string"},
						"questionCount": map[string]any{"type": "integer"},
					},
					"required": []any{"id", "title"},
				},
			},
		},
		"required": []any{"id", "name", "topics"},
	},
}

var topicDataSchema = &docSchema{
	Name: "topic-data",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id":          map[string]any{"type": "string"},
			"subjectId":   map[string]any{"type": "string"},
			"title":       map[string]any{"type": "string"},
			"description": map[string]any{"type": "string"},
			"icon":        map[string]any{"type": "string"},
			"texts": map[string]any{
				"type": "object",
				"additionalProperties": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"title": map[string]any{"type": "string"},
						"html":  map[string]any{"type": "string"},
					},
					"required": []any{"title", "html"},
				},
			},
			"images": map[string]any{
				"type":                 "object",
				"additionalProperties": map[string]any{"type": "string"},
			},
		},
		"required": []any{"id", "subjectId", "title"},
	},
}

var slidesDataSchema = &docSchema{
	Name: "slides-data",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"topicId":   map[string]any{"type": "string"},
			"subjectId": map[string]any{"type": "string"},
			"slides": map[string]any{
				"type": "array",
				"items": map[string]any{
					"oneOf": []any{
						slideBranch("concept", map[string]any{
							"content": map[string]any{"type": "string"},
							"tip":     map[string]any{"type": "string"},
						}, "content"),
						slideBranch("story", map[string]any{
							"html": map[string]any{"type": "string"},
						}, "html"),
						slideBranch("example", map[string]any{
							"problem": map[string]any{"type": "string"},
							"steps": map[string]any{
								"type":  "array",
								"items": map[string]any{"type": "string"},
							},
							"answer": map[string]any{"type": "string"},
						}, "problem", "steps", "answer"),
						slideBranch("summary", map[string]any{
							"points": map[string]any{
								"type":  "array",
								"items": map[string]any{"type": "string"},
							},
						}, "points"),
					},
				},
			},
		},
		"required": []any{"topicId", "subjectId", "slides"},
	},
}

var examDataSchema = &docSchema{
	Name: "exam-data",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"topicId":   map[string]any{"type": "string"},
			"subjectId": map[string]any{"type": "string"},
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"oneOf": []any{
						questionBranch("choice", map[string]any{
							"options": map[string]any{
								"type":  "array",
								"items": map[string]any{"type": "string"},
							},
							"answer": map[string]any{"type": "integer"},
						}, "options", "answer"),
						questionBranch("true-false", map[string]any{
							"answer": map[string]any{"type": "boolean"},
						}, "answer"),
						questionBranch("matching", map[string]any{
							"pairs": map[string]any{
								"type": "array",
								"items": map[string]any{
									"type": "object",
									"properties": map[string]any{
										"left":  map[string]any{"type": "string"},
										"right": map[string]any{"type": "string"},
									},
									"required": []any{"left", "right"},
								},
							},
							"rightOptions": map[string]any{
								"type":  "array",
								"items": map[string]any{"type": "string"},
							},
						}, "pairs"),
						questionBranch("word-bank-classify", map[string]any{
							"words": map[string]any{
								"type":  "array",
								"items": map[string]any{"type": "string"},
							},
							"slots": map[string]any{
								"type": "array",
								"items": map[string]any{
									"type": "object",
									"properties": map[string]any{
										"label": map[string]any{"type": "string"},
										"accepts": map[string]any{
											"type":  "array",
											"items": map[string]any{"type": "string"},
										},
									},
									"required": []any{"label", "accepts"},
								},
							},
						}, "words", "slots"),
						questionBranch("word-bank-fill", map[string]any{
							"sentence": map[string]any{"type": "string"},
							"blanks": map[string]any{
								"type":  "array",
								"items": map[string]any{"type": "string"},
							},
							"wordBank": map[string]any{
								"type":  "array",
								"items": map[string]any{"type": "string"},
							},
						}, "sentence", "blanks", "wordBank"),
						questionBranch("word-bank-order", map[string]any{
							"words": map[string]any{
								"type":  "array",
								"items": map[string]any{"type": "string"},
							},
							"answer": map[string]any{"type": "string"},
						}, "words", "answer"),
					},
				},
			},
		},
		"required": []any{"topicId", "subjectId", "questions"},
	},
}

// questionBranch builds one oneOf branch for a question variant. Every branch
// shares the base fields and adds the variant's own.
func questionBranch(typ string, props map[string]any, required ...string) map[string]any {
	merged := map[string]any{
		"type":        map[string]any{"const": typ},
		"id":          map[string]any{"type": "string"},
		"emoji":       map[string]any{"type": "string"},
		"question":    map[string]any{"type": "string"},
		"refText":     map[string]any{"type": "string"},
		"image":       map[string]any{"type": "string"},
		"explanation": map[string]any{"type": "string"},
	}
	for k, v := range props {
		merged[k] = v
	}
	req := []any{"type", "id", "question"}
	for _, r := range required {
		req = append(req, r)
	}
	return map[string]any{
		"type":       "object",
		"properties": merged,
		"required":   req,
	}
}

// slideBranch builds one oneOf branch for a slide variant.
func slideBranch(typ string, props map[string]any, required ...string) map[string]any {
	merged := map[string]any{
		"type":  map[string]any{"const": typ},
		"id":    map[string]any{"type": "string"},
		"emoji": map[string]any{"type": "string"},
		"title": map[string]any{"type": "string"},
	}
	for k, v := range props {
		merged[k] = v
	}
	req := []any{"type", "id", "title"}
	for _, r := range required {
		req = append(req, r)
	}
	return map[string]any{
		"type":       "object",
		"properties": merged,
		"required":   req,
	}
}
