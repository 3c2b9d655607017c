// Package grading decides whether answers are correct. All functions are pure
// and deterministic.
package grading

import (
	"slices"
	"strings"

	"github.com/pavelanni/clau-lessons/internal/model"
)

// IsCorrect reports whether answer is a correct response to question.
// An answer whose variant does not match the question's variant is incorrect,
// never an error.
func IsCorrect(question model.Question, answer model.UserAnswer) bool {
	switch q := question.(type) {
	case *model.ChoiceQuestion:
		a, ok := answer.(model.ChoiceAnswer)
		return ok && a.Selected == q.Answer

	case *model.TrueFalseQuestion:
		a, ok := answer.(model.TrueFalseAnswer)
		return ok && a.Selected == q.Answer

	case *model.MatchingQuestion:
		a, ok := answer.(model.MatchingAnswer)
		if !ok {
			return false
		}
		for i, pair := range q.Pairs {
			if a.Selections[i] != pair.Right {
				return false
			}
		}
		return true

	case *model.WordBankClassifyQuestion:
		a, ok := answer.(model.ClassifyAnswer)
		if !ok {
			return false
		}
		// Each slot must hold exactly its accepted words, in any order.
		for i, slot := range q.Slots {
			placed := a.Placements[i]
			if len(placed) != len(slot.Accepts) {
				return false
			}
			for _, w := range slot.Accepts {
				if !slices.Contains(placed, w) {
					return false
				}
			}
		}
		return true

	case *model.WordBankFillQuestion:
		a, ok := answer.(model.FillAnswer)
		if !ok {
			return false
		}
		// Blanks compare case-insensitively; an unfilled blank never matches.
		for i, expected := range q.Blanks {
			if i >= len(a.Words) || a.Words[i] == "" {
				return false
			}
			if !strings.EqualFold(a.Words[i], expected) {
				return false
			}
		}
		return true

	case *model.WordBankOrderQuestion:
		a, ok := answer.(model.OrderAnswer)
		return ok && a.Arranged == q.Answer
	}

	return false
}

// GradeExam counts the questions whose submitted answer is correct.
// Questions without an answer in the map never score.
func GradeExam(questions []model.Question, answers model.AnswerMap) int {
	score := 0
	for _, q := range questions {
		if a, ok := answers[q.Base().ID]; ok && IsCorrect(q, a) {
			score++
		}
	}
	return score
}
