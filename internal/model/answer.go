package model

import (
	"encoding/json"
	"fmt"
)

// UserAnswer is the closed set of answer variants, one per question format.
// An answer only grades as correct against a question of the same variant.
type UserAnswer interface {
	Type() QuestionType
	isAnswer()
}

// ChoiceAnswer selects one option by index.
type ChoiceAnswer struct {
	Selected int `json:"selected"`
}

// TrueFalseAnswer selects true or false.
type TrueFalseAnswer struct {
	Selected bool `json:"selected"`
}

// MatchingAnswer maps each pair index to the chosen right-hand value.
type MatchingAnswer struct {
	Selections map[int]string `json:"selections"`
}

// ClassifyAnswer maps each slot index to the words placed in it.
type ClassifyAnswer struct {
	Placements map[int][]string `json:"placements"`
}

// FillAnswer lists the submitted blank fillers in sentence order. An empty
// string marks a blank the student left unfilled.
type FillAnswer struct {
	Words []string `json:"words"`
}

// OrderAnswer is the student's arranged token string.
type OrderAnswer struct {
	Arranged string `json:"arranged"`
}

func (ChoiceAnswer) Type() QuestionType    { return QuestionChoice }
func (ChoiceAnswer) isAnswer()             {}
func (TrueFalseAnswer) Type() QuestionType { return QuestionTrueFalse }
func (TrueFalseAnswer) isAnswer()          {}
func (MatchingAnswer) Type() QuestionType  { return QuestionMatching }
func (MatchingAnswer) isAnswer()           {}
func (ClassifyAnswer) Type() QuestionType  { return QuestionClassify }
func (ClassifyAnswer) isAnswer()           {}
func (FillAnswer) Type() QuestionType      { return QuestionFill }
func (FillAnswer) isAnswer()               {}
func (OrderAnswer) Type() QuestionType     { return QuestionOrder }
func (OrderAnswer) isAnswer()              {}

func (a ChoiceAnswer) MarshalJSON() ([]byte, error) {
	type alias ChoiceAnswer
	return json.Marshal(struct {
		Type QuestionType `json:"type"`
		alias
	}{a.Type(), alias(a)})
}

func (a TrueFalseAnswer) MarshalJSON() ([]byte, error) {
	type alias TrueFalseAnswer
	return json.Marshal(struct {
		Type QuestionType `json:"type"`
		alias
	}{a.Type(), alias(a)})
}

func (a MatchingAnswer) MarshalJSON() ([]byte, error) {
	type alias MatchingAnswer
	return json.Marshal(struct {
		Type QuestionType `json:"type"`
		alias
	}{a.Type(), alias(a)})
}

func (a ClassifyAnswer) MarshalJSON() ([]byte, error) {
	type alias ClassifyAnswer
	return json.Marshal(struct {
		Type QuestionType `json:"type"`
		alias
	}{a.Type(), alias(a)})
}

func (a FillAnswer) MarshalJSON() ([]byte, error) {
	type alias FillAnswer
	return json.Marshal(struct {
		Type QuestionType `json:"type"`
		alias
	}{a.Type(), alias(a)})
}

func (a OrderAnswer) MarshalJSON() ([]byte, error) {
	type alias OrderAnswer
	return json.Marshal(struct {
		Type QuestionType `json:"type"`
		alias
	}{a.Type(), alias(a)})
}

// DecodeAnswer parses one tagged answer object.
func DecodeAnswer(data []byte) (UserAnswer, error) {
	var probe struct {
		Type QuestionType `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("parse answer: %w", err)
	}

	switch probe.Type {
	case QuestionChoice:
		var a ChoiceAnswer
		return a, json.Unmarshal(data, &a)
	case QuestionTrueFalse:
		var a TrueFalseAnswer
		return a, json.Unmarshal(data, &a)
	case QuestionMatching:
		var a MatchingAnswer
		return a, json.Unmarshal(data, &a)
	case QuestionClassify:
		var a ClassifyAnswer
		return a, json.Unmarshal(data, &a)
	case QuestionFill:
		var a FillAnswer
		return a, json.Unmarshal(data, &a)
	case QuestionOrder:
		var a OrderAnswer
		return a, json.Unmarshal(data, &a)
	default:
		return nil, fmt.Errorf("unknown answer type %q", probe.Type)
	}
}

// AnswerMap holds at most one answer per question id.
type AnswerMap map[string]UserAnswer

// UnmarshalJSON decodes each value by its variant tag.
func (m *AnswerMap) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(AnswerMap, len(raw))
	for id, r := range raw {
		a, err := DecodeAnswer(r)
		if err != nil {
			return fmt.Errorf("answer for question %s: %w", id, err)
		}
		out[id] = a
	}
	*m = out
	return nil
}
