// Package exam tracks one exam attempt's mutable state: position, collected
// answers, timing and completion.
package exam

import (
	"maps"
	"math"
	"time"

	"github.com/pavelanni/clau-lessons/internal/grading"
	"github.com/pavelanni/clau-lessons/internal/model"
)

// Status is the lifecycle state of a session.
type Status string

const (
	StatusInProgress Status = "in-progress"
	StatusFinished   Status = "finished"
)

// Session is one exam attempt over a fixed question set. It is not safe for
// concurrent use; the caller serializes access. Callers must supply a
// non-empty question set.
type Session struct {
	questions []model.Question
	index     int
	answers   model.AnswerMap
	status    Status
	startedAt time.Time
	score     int
	duration  int
	now       func() time.Time
}

// New starts a fresh session positioned at the first question.
func New(questions []model.Question) *Session {
	return &Session{
		questions: questions,
		answers:   make(model.AnswerMap),
		status:    StatusInProgress,
		startedAt: time.Now(),
		now:       time.Now,
	}
}

// Resume starts a session seeded from a cached in-progress snapshot. A nil
// snapshot behaves like New.
func Resume(questions []model.Question, snap *model.InProgressExam) *Session {
	s := New(questions)
	if snap == nil {
		return s
	}
	maps.Copy(s.answers, snap.Answers)
	s.index = clamp(snap.CurrentIndex, 0, len(questions)-1)
	if !snap.StartedAt.IsZero() {
		s.startedAt = snap.StartedAt
	}
	return s
}

// SetAnswer records the answer for a question id, replacing any previous one.
// Ignored once the session is finished.
func (s *Session) SetAnswer(questionID string, answer model.UserAnswer) {
	if s.status == StatusFinished {
		return
	}
	s.answers[questionID] = answer
}

// Next moves to the following question, staying on the last one at the end.
func (s *Session) Next() {
	s.index = clamp(s.index+1, 0, len(s.questions)-1)
}

// Prev moves to the preceding question, staying on the first one at the start.
func (s *Session) Prev() {
	s.index = clamp(s.index-1, 0, len(s.questions)-1)
}

// GoTo jumps to the given question index, clamped into the valid range.
func (s *Session) GoTo(index int) {
	s.index = clamp(index, 0, len(s.questions)-1)
}

// Finish grades the accumulated answers and moves the session to its terminal
// state, capturing the elapsed duration. Calling Finish again returns the
// score computed the first time.
func (s *Session) Finish() int {
	if s.status == StatusFinished {
		return s.score
	}
	s.score = grading.GradeExam(s.questions, s.answers)
	s.duration = s.elapsedSeconds()
	s.status = StatusFinished
	return s.score
}

// Status returns the session's lifecycle state.
func (s *Session) Status() Status { return s.status }

// Index returns the current question position.
func (s *Session) Index() int { return s.index }

// Current returns the question at the current position.
func (s *Session) Current() model.Question { return s.questions[s.index] }

// Total returns the number of questions in the set.
func (s *Session) Total() int { return len(s.questions) }

// AnsweredCount returns the number of distinct question ids answered so far.
func (s *Session) AnsweredCount() int { return len(s.answers) }

// AllAnswered reports whether every question has an answer.
func (s *Session) AllAnswered() bool { return len(s.answers) == len(s.questions) }

// IsFirst reports whether the current position is the first question.
func (s *Session) IsFirst() bool { return s.index == 0 }

// IsLast reports whether the current position is the last question.
func (s *Session) IsLast() bool { return s.index == len(s.questions)-1 }

// Score returns the final score; zero until the session finishes.
func (s *Session) Score() int { return s.score }

// StartedAt returns when the attempt began, surviving a resume.
func (s *Session) StartedAt() time.Time { return s.startedAt }

// Answers returns a copy of the collected answers.
func (s *Session) Answers() model.AnswerMap {
	return maps.Clone(s.answers)
}

// DurationSeconds returns the whole seconds elapsed since the attempt began,
// or the duration captured at finish time once finished.
func (s *Session) DurationSeconds() int {
	if s.status == StatusFinished {
		return s.duration
	}
	return s.elapsedSeconds()
}

// Snapshot captures the resumable state for the in-progress cache.
func (s *Session) Snapshot() *model.InProgressExam {
	return &model.InProgressExam{
		Answers:      maps.Clone(s.answers),
		CurrentIndex: s.index,
		StartedAt:    s.startedAt,
	}
}

func (s *Session) elapsedSeconds() int {
	return int(math.Round(s.now().Sub(s.startedAt).Seconds()))
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
