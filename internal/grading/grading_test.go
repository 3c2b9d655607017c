package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pavelanni/clau-lessons/internal/model"
)

func choiceQ(id string, answer int) *model.ChoiceQuestion {
	return &model.ChoiceQuestion{
		QuestionBase: model.QuestionBase{ID: id, Question: "pick one"},
		Options:      []string{"a", "b", "c"},
		Answer:       answer,
	}
}

func TestChoice(t *testing.T) {
	q := choiceQ("q1", 1)

	assert.True(t, IsCorrect(q, model.ChoiceAnswer{Selected: 1}))
	assert.False(t, IsCorrect(q, model.ChoiceAnswer{Selected: 0}))
	assert.False(t, IsCorrect(q, model.ChoiceAnswer{Selected: 2}))
}

func TestTrueFalse(t *testing.T) {
	q := &model.TrueFalseQuestion{
		QuestionBase: model.QuestionBase{ID: "q1", Question: "the sun is a star"},
		Answer:       true,
	}

	assert.True(t, IsCorrect(q, model.TrueFalseAnswer{Selected: true}))
	assert.False(t, IsCorrect(q, model.TrueFalseAnswer{Selected: false}))
}

func TestMatching(t *testing.T) {
	q := &model.MatchingQuestion{
		QuestionBase: model.QuestionBase{ID: "q1", Question: "match"},
		Pairs: []model.MatchPair{
			{Left: "A", Right: "1"},
			{Left: "B", Right: "2"},
		},
	}

	assert.True(t, IsCorrect(q, model.MatchingAnswer{Selections: map[int]string{0: "1", 1: "2"}}))
	assert.False(t, IsCorrect(q, model.MatchingAnswer{Selections: map[int]string{0: "2", 1: "1"}}))
	assert.False(t, IsCorrect(q, model.MatchingAnswer{Selections: map[int]string{0: "1"}}),
		"missing pair selection must not be correct")
}

func TestClassify(t *testing.T) {
	q := &model.WordBankClassifyQuestion{
		QuestionBase: model.QuestionBase{ID: "q1", Question: "classify"},
		Words:        []string{"perro", "gato", "rosa"},
		Slots: []model.ClassifySlot{
			{Label: "animales", Accepts: []string{"perro", "gato"}},
			{Label: "plantas", Accepts: []string{"rosa"}},
		},
	}

	correct := model.ClassifyAnswer{Placements: map[int][]string{
		0: {"gato", "perro"}, // order inside a slot does not matter
		1: {"rosa"},
	}}
	assert.True(t, IsCorrect(q, correct))

	sizeMismatch := model.ClassifyAnswer{Placements: map[int][]string{
		0: {"perro"},
		1: {"rosa"},
	}}
	assert.False(t, IsCorrect(q, sizeMismatch))

	wrongWord := model.ClassifyAnswer{Placements: map[int][]string{
		0: {"perro", "rosa"},
		1: {"gato"},
	}}
	assert.False(t, IsCorrect(q, wrongWord))
}

func TestFill(t *testing.T) {
	q := &model.WordBankFillQuestion{
		QuestionBase: model.QuestionBase{ID: "q1", Question: "fill in"},
		Sentence:     "El ___ y la ___ brillan.",
		Blanks:       []string{"Sol", "Luna"},
		WordBank:     []string{"Sol", "Luna", "mar"},
	}

	assert.True(t, IsCorrect(q, model.FillAnswer{Words: []string{"sol", "LUNA"}}),
		"blanks compare case-insensitively")
	assert.False(t, IsCorrect(q, model.FillAnswer{Words: []string{"sol"}}),
		"unfilled second blank must not be correct")
	assert.False(t, IsCorrect(q, model.FillAnswer{Words: []string{"sol", ""}}))
	assert.False(t, IsCorrect(q, model.FillAnswer{Words: []string{"luna", "sol"}}))
}

func TestOrder(t *testing.T) {
	q := &model.WordBankOrderQuestion{
		QuestionBase: model.QuestionBase{ID: "q1", Question: "arrange"},
		Words:        []string{"gato", "El", "duerme"},
		Answer:       "El gato duerme",
	}

	assert.True(t, IsCorrect(q, model.OrderAnswer{Arranged: "El gato duerme"}))
	assert.False(t, IsCorrect(q, model.OrderAnswer{Arranged: "el gato duerme"}),
		"order questions compare case-sensitively")
	assert.False(t, IsCorrect(q, model.OrderAnswer{Arranged: "El duerme gato"}))
}

func TestMismatchedVariantIsIncorrect(t *testing.T) {
	questions := []model.Question{
		choiceQ("q1", 0),
		&model.TrueFalseQuestion{QuestionBase: model.QuestionBase{ID: "q2"}, Answer: true},
		&model.MatchingQuestion{QuestionBase: model.QuestionBase{ID: "q3"}, Pairs: []model.MatchPair{{Left: "A", Right: "1"}}},
		&model.WordBankClassifyQuestion{QuestionBase: model.QuestionBase{ID: "q4"}, Slots: []model.ClassifySlot{{Label: "s", Accepts: []string{"w"}}}},
		&model.WordBankFillQuestion{QuestionBase: model.QuestionBase{ID: "q5"}, Blanks: []string{"Sol"}},
		&model.WordBankOrderQuestion{QuestionBase: model.QuestionBase{ID: "q6"}, Answer: "x"},
	}

	// An order answer has the wrong variant for everything but q6; a choice
	// answer is wrong for q6.
	for _, q := range questions[:5] {
		assert.False(t, IsCorrect(q, model.OrderAnswer{Arranged: "x"}), "question %s", q.Base().ID)
	}
	assert.False(t, IsCorrect(questions[5], model.ChoiceAnswer{Selected: 0}))
}

func TestGradeExam(t *testing.T) {
	questions := []model.Question{
		choiceQ("q1", 1),
		&model.TrueFalseQuestion{QuestionBase: model.QuestionBase{ID: "q2"}, Answer: false},
		&model.WordBankOrderQuestion{QuestionBase: model.QuestionBase{ID: "q3"}, Answer: "El gato duerme"},
	}

	assert.Equal(t, 0, GradeExam(questions, model.AnswerMap{}),
		"empty answer map scores zero")

	answers := model.AnswerMap{
		"q1": model.ChoiceAnswer{Selected: 1},
		"q2": model.TrueFalseAnswer{Selected: true}, // wrong
		"q3": model.OrderAnswer{Arranged: "El gato duerme"},
	}
	assert.Equal(t, 2, GradeExam(questions, answers))

	// Unanswered questions never score, even with extra answers present.
	partial := model.AnswerMap{
		"q1":      model.ChoiceAnswer{Selected: 1},
		"unknown": model.ChoiceAnswer{Selected: 1},
	}
	assert.Equal(t, 1, GradeExam(questions, partial))
}

func TestGradeExamDeterministic(t *testing.T) {
	questions := []model.Question{choiceQ("q1", 0)}
	answers := model.AnswerMap{"q1": model.ChoiceAnswer{Selected: 0}}

	for i := 0; i < 3; i++ {
		assert.Equal(t, 1, GradeExam(questions, answers))
	}
}
