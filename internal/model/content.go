package model

import (
	"encoding/json"
	"fmt"
)

// CursosIndex lists the available curriculum levels.
type CursosIndex struct {
	Cursos []CursoSummary `json:"cursos"`
}

// CursoSummary is one entry of the cursos index.
type CursoSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CursoDetail is one curriculum level with its subjects.
type CursoDetail struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Subjects []SubjectSummary `json:"subjects"`
}

// SubjectSummary is one subject as listed in a curso.
type SubjectSummary struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Icon       string `json:"icon"`
	Color      string `json:"color"`
	Lang       string `json:"lang"`
	TopicCount int    `json:"topicCount"`
}

// SubjectDetail is one subject with its topics.
type SubjectDetail struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Icon   string         `json:"icon"`
	Color  string         `json:"color"`
	Lang   string         `json:"lang"`
	Topics []TopicSummary `json:"topics"`
}

// TopicSummary is one topic as listed in a subject.
type TopicSummary struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Icon          string `json:"icon"`
	QuestionCount int    `json:"questionCount"`
}

// ReadingText is a reference text questions can point at via refText.
type ReadingText struct {
	Title string `json:"title"`
	HTML  string `json:"html"`
}

// TopicData is one topic's detail document with its reference material.
type TopicData struct {
	ID          string                 `json:"id"`
	SubjectID   string                 `json:"subjectId"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Icon        string                 `json:"icon"`
	Texts       map[string]ReadingText `json:"texts"`
	Images      map[string]string      `json:"images,omitempty"`
}

// ExamData is a topic's question set.
type ExamData struct {
	TopicID   string    `json:"topicId"`
	SubjectID string    `json:"subjectId"`
	Questions Questions `json:"questions"`
}

// SlideType identifies one of the four slide formats.
type SlideType string

const (
	SlideConcept SlideType = "concept"
	SlideStory   SlideType = "story"
	SlideExample SlideType = "example"
	SlideSummary SlideType = "summary"
)

// SlideBase holds the fields shared by every slide variant.
type SlideBase struct {
	ID    string `json:"id"`
	Emoji string `json:"emoji,omitempty"`
	Title string `json:"title"`
}

// Slide is the closed set of slide variants.
type Slide interface {
	SlideType() SlideType
	isSlide()
}

// ConceptSlide explains one idea, optionally with a tip.
type ConceptSlide struct {
	SlideBase
	Content string `json:"content"`
	Tip     string `json:"tip,omitempty"`
}

// StorySlide tells a short story as HTML.
type StorySlide struct {
	SlideBase
	HTML string `json:"html"`
}

// ExampleSlide works through a problem step by step.
type ExampleSlide struct {
	SlideBase
	Problem string   `json:"problem"`
	Steps   []string `json:"steps"`
	Answer  string   `json:"answer"`
}

// SummarySlide recaps the topic's key points.
type SummarySlide struct {
	SlideBase
	Points []string `json:"points"`
}

func (s *ConceptSlide) SlideType() SlideType { return SlideConcept }
func (*ConceptSlide) isSlide()               {}
func (s *StorySlide) SlideType() SlideType   { return SlideStory }
func (*StorySlide) isSlide()                 {}
func (s *ExampleSlide) SlideType() SlideType { return SlideExample }
func (*ExampleSlide) isSlide()               {}
func (s *SummarySlide) SlideType() SlideType { return SlideSummary }
func (*SummarySlide) isSlide()               {}

func (s *ConceptSlide) MarshalJSON() ([]byte, error) {
	type alias ConceptSlide
	return json.Marshal(struct {
		Type SlideType `json:"type"`
		*alias
	}{s.SlideType(), (*alias)(s)})
}

func (s *StorySlide) MarshalJSON() ([]byte, error) {
	type alias StorySlide
	return json.Marshal(struct {
		Type SlideType `json:"type"`
		*alias
	}{s.SlideType(), (*alias)(s)})
}

func (s *ExampleSlide) MarshalJSON() ([]byte, error) {
	type alias ExampleSlide
	return json.Marshal(struct {
		Type SlideType `json:"type"`
		*alias
	}{s.SlideType(), (*alias)(s)})
}

func (s *SummarySlide) MarshalJSON() ([]byte, error) {
	type alias SummarySlide
	return json.Marshal(struct {
		Type SlideType `json:"type"`
		*alias
	}{s.SlideType(), (*alias)(s)})
}

// Slides is a list of tagged slide objects.
type Slides []Slide

// UnmarshalJSON decodes each element by its variant tag.
func (ss *Slides) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}
	out := make(Slides, 0, len(raws))
	for i, raw := range raws {
		s, err := decodeSlide(raw)
		if err != nil {
			return fmt.Errorf("slide %d: %w", i, err)
		}
		out = append(out, s)
	}
	*ss = out
	return nil
}

func decodeSlide(data []byte) (Slide, error) {
	var probe struct {
		Type SlideType `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("parse slide: %w", err)
	}

	var s Slide
	switch probe.Type {
	case SlideConcept:
		s = &ConceptSlide{}
	case SlideStory:
		s = &StorySlide{}
	case SlideExample:
		s = &ExampleSlide{}
	case SlideSummary:
		s = &SummarySlide{}
	default:
		return nil, fmt.Errorf("unknown slide type %q", probe.Type)
	}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parse %s slide: %w", probe.Type, err)
	}
	return s, nil
}

// SlidesData is a topic's slide deck.
type SlidesData struct {
	TopicID   string `json:"topicId"`
	SubjectID string `json:"subjectId"`
	Slides    Slides `json:"slides"`
}
