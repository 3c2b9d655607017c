package model

import (
	"encoding/json"
	"fmt"
)

// QuestionType identifies one of the six question formats.
type QuestionType string

const (
	QuestionChoice    QuestionType = "choice"
	QuestionTrueFalse QuestionType = "true-false"
	QuestionMatching  QuestionType = "matching"
	QuestionClassify  QuestionType = "word-bank-classify"
	QuestionFill      QuestionType = "word-bank-fill"
	QuestionOrder     QuestionType = "word-bank-order"
)

// QuestionBase holds the fields shared by every question variant.
type QuestionBase struct {
	ID          string `json:"id"`
	Emoji       string `json:"emoji,omitempty"`
	Question    string `json:"question"`
	RefText     string `json:"refText,omitempty"`
	Image       string `json:"image,omitempty"`
	Explanation string `json:"explanation,omitempty"`
}

// Question is the closed set of question variants. Consumers switch on the
// concrete type; DecodeQuestion and the grading engine cover every variant.
type Question interface {
	Base() QuestionBase
	Type() QuestionType
	isQuestion()
}

// ChoiceQuestion asks the student to pick one option by index.
type ChoiceQuestion struct {
	QuestionBase
	Options []string `json:"options"`
	Answer  int      `json:"answer"`
}

// TrueFalseQuestion asks whether a statement is true.
type TrueFalseQuestion struct {
	QuestionBase
	Answer bool `json:"answer"`
}

// MatchPair is one left/right pair of a matching question.
type MatchPair struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}

// MatchingQuestion asks the student to match each left value with its right
// value. RightOptions, when present, is the shuffle pool offered for the
// right-hand side.
type MatchingQuestion struct {
	QuestionBase
	Pairs        []MatchPair `json:"pairs"`
	RightOptions []string    `json:"rightOptions,omitempty"`
}

// ClassifySlot is one category of a classification question with the words it
// accepts.
type ClassifySlot struct {
	Label   string   `json:"label"`
	Accepts []string `json:"accepts"`
}

// WordBankClassifyQuestion asks the student to drag every word into its slot.
type WordBankClassifyQuestion struct {
	QuestionBase
	Words []string       `json:"words"`
	Slots []ClassifySlot `json:"slots"`
}

// WordBankFillQuestion asks the student to fill the blanks of a sentence from
// a word bank. Blanks lists the expected fillers in sentence order, aligned
// 1:1 with the submitted words.
type WordBankFillQuestion struct {
	QuestionBase
	Sentence string   `json:"sentence"`
	Blanks   []string `json:"blanks"`
	WordBank []string `json:"wordBank"`
}

// WordBankOrderQuestion asks the student to arrange tokens into the canonical
// answer string.
type WordBankOrderQuestion struct {
	QuestionBase
	Words  []string `json:"words"`
	Answer string   `json:"answer"`
}

func (q *ChoiceQuestion) Base() QuestionBase           { return q.QuestionBase }
func (q *ChoiceQuestion) Type() QuestionType           { return QuestionChoice }
func (*ChoiceQuestion) isQuestion()                    {}
func (q *TrueFalseQuestion) Base() QuestionBase        { return q.QuestionBase }
func (q *TrueFalseQuestion) Type() QuestionType        { return QuestionTrueFalse }
func (*TrueFalseQuestion) isQuestion()                 {}
func (q *MatchingQuestion) Base() QuestionBase         { return q.QuestionBase }
func (q *MatchingQuestion) Type() QuestionType         { return QuestionMatching }
func (*MatchingQuestion) isQuestion()                  {}
func (q *WordBankClassifyQuestion) Base() QuestionBase { return q.QuestionBase }
func (q *WordBankClassifyQuestion) Type() QuestionType { return QuestionClassify }
func (*WordBankClassifyQuestion) isQuestion()          {}
func (q *WordBankFillQuestion) Base() QuestionBase     { return q.QuestionBase }
func (q *WordBankFillQuestion) Type() QuestionType     { return QuestionFill }
func (*WordBankFillQuestion) isQuestion()              {}
func (q *WordBankOrderQuestion) Base() QuestionBase    { return q.QuestionBase }
func (q *WordBankOrderQuestion) Type() QuestionType    { return QuestionOrder }
func (*WordBankOrderQuestion) isQuestion()             {}

func (q *ChoiceQuestion) MarshalJSON() ([]byte, error) {
	type alias ChoiceQuestion
	return json.Marshal(struct {
		Type QuestionType `json:"type"`
		*alias
	}{q.Type(), (*alias)(q)})
}

func (q *TrueFalseQuestion) MarshalJSON() ([]byte, error) {
	type alias TrueFalseQuestion
	return json.Marshal(struct {
		Type QuestionType `json:"type"`
		*alias
	}{q.Type(), (*alias)(q)})
}

func (q *MatchingQuestion) MarshalJSON() ([]byte, error) {
	type alias MatchingQuestion
	return json.Marshal(struct {
		Type QuestionType `json:"type"`
		*alias
	}{q.Type(), (*alias)(q)})
}

func (q *WordBankClassifyQuestion) MarshalJSON() ([]byte, error) {
	type alias WordBankClassifyQuestion
	return json.Marshal(struct {
		Type QuestionType `json:"type"`
		*alias
	}{q.Type(), (*alias)(q)})
}

func (q *WordBankFillQuestion) MarshalJSON() ([]byte, error) {
	type alias WordBankFillQuestion
	return json.Marshal(struct {
		Type QuestionType `json:"type"`
		*alias
	}{q.Type(), (*alias)(q)})
}

func (q *WordBankOrderQuestion) MarshalJSON() ([]byte, error) {
	type alias WordBankOrderQuestion
	return json.Marshal(struct {
		Type QuestionType `json:"type"`
		*alias
	}{q.Type(), (*alias)(q)})
}

// DecodeQuestion parses one tagged question object.
func DecodeQuestion(data []byte) (Question, error) {
	var probe struct {
		Type QuestionType `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("parse question: %w", err)
	}

	var q Question
	switch probe.Type {
	case QuestionChoice:
		q = &ChoiceQuestion{}
	case QuestionTrueFalse:
		q = &TrueFalseQuestion{}
	case QuestionMatching:
		q = &MatchingQuestion{}
	case QuestionClassify:
		q = &WordBankClassifyQuestion{}
	case QuestionFill:
		q = &WordBankFillQuestion{}
	case QuestionOrder:
		q = &WordBankOrderQuestion{}
	default:
		return nil, fmt.Errorf("unknown question type %q", probe.Type)
	}
	if err := json.Unmarshal(data, q); err != nil {
		return nil, fmt.Errorf("parse %s question: %w", probe.Type, err)
	}
	return q, nil
}

// Questions is a list of tagged question objects.
type Questions []Question

// UnmarshalJSON decodes each element by its variant tag.
func (qs *Questions) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}
	out := make(Questions, 0, len(raws))
	for i, raw := range raws {
		q, err := DecodeQuestion(raw)
		if err != nil {
			return fmt.Errorf("question %d: %w", i, err)
		}
		out = append(out, q)
	}
	*qs = out
	return nil
}
