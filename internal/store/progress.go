package store

import (
	"log/slog"
	"time"

	"github.com/pavelanni/clau-lessons/internal/model"
)

func emptyProgress() model.UserProgress {
	return model.UserProgress{Subjects: make(map[string]*model.SubjectProgress)}
}

// GetProgress returns one user's progress tree, or an empty tree for unknown
// ids.
func (s *Store) GetProgress(userID string) (model.UserProgress, error) {
	st, err := s.load()
	if err != nil {
		return model.UserProgress{}, err
	}
	u, ok := st.Users[userID]
	if !ok {
		return emptyProgress(), nil
	}
	return u.Progress, nil
}

// RecordExamAttempt appends a finished attempt to the topic's history,
// creating subject and topic nodes as needed and stamping access times.
// Unknown user ids are silently dropped: losing a progress update is
// non-fatal by contract.
func (s *Store) RecordExamAttempt(userID, subjectID, topicID string, attempt model.ExamAttempt) error {
	st, err := s.load()
	if err != nil {
		return err
	}
	u, ok := st.Users[userID]
	if !ok {
		slog.Debug("dropping exam attempt for unknown user", "user_id", userID)
		return nil
	}

	now := time.Now()
	subject := ensureSubject(u, subjectID, now)
	subject.LastAccessedAt = now
	topic := ensureTopic(subject, topicID, now)
	topic.LastAccessedAt = now
	topic.ExamAttempts = append(topic.ExamAttempts, attempt)

	return s.save(st)
}

// MarkTopicViewed flags a topic as seen, creating nodes as needed.
// Unknown user ids are silently dropped, matching RecordExamAttempt.
func (s *Store) MarkTopicViewed(userID, subjectID, topicID string) error {
	st, err := s.load()
	if err != nil {
		return err
	}
	u, ok := st.Users[userID]
	if !ok {
		slog.Debug("dropping topic view for unknown user", "user_id", userID)
		return nil
	}

	now := time.Now()
	subject := ensureSubject(u, subjectID, now)
	topic := ensureTopic(subject, topicID, now)
	topic.Viewed = true
	topic.LastAccessedAt = now

	return s.save(st)
}

// GetBestScore returns the best score/total ratio across the topic's
// recorded attempts. The second return is false when there are none.
func (s *Store) GetBestScore(userID, subjectID, topicID string) (float64, bool, error) {
	st, err := s.load()
	if err != nil {
		return 0, false, err
	}
	u, ok := st.Users[userID]
	if !ok {
		return 0, false, nil
	}
	subject := u.Progress.Subjects[subjectID]
	if subject == nil {
		return 0, false, nil
	}
	topic := subject.Topics[topicID]
	if topic == nil || len(topic.ExamAttempts) == 0 {
		return 0, false, nil
	}

	best := 0.0
	for _, a := range topic.ExamAttempts {
		if a.Total == 0 {
			continue
		}
		if ratio := float64(a.Score) / float64(a.Total); ratio > best {
			best = ratio
		}
	}
	return best, true, nil
}

func ensureSubject(u *model.UserData, subjectID string, now time.Time) *model.SubjectProgress {
	if u.Progress.Subjects == nil {
		u.Progress.Subjects = make(map[string]*model.SubjectProgress)
	}
	subject, ok := u.Progress.Subjects[subjectID]
	if !ok {
		subject = &model.SubjectProgress{
			LastAccessedAt: now,
			Topics:         make(map[string]*model.TopicProgress),
		}
		u.Progress.Subjects[subjectID] = subject
	}
	if subject.Topics == nil {
		subject.Topics = make(map[string]*model.TopicProgress)
	}
	return subject
}

func ensureTopic(subject *model.SubjectProgress, topicID string, now time.Time) *model.TopicProgress {
	topic, ok := subject.Topics[topicID]
	if !ok {
		topic = &model.TopicProgress{
			Viewed:         true,
			LastAccessedAt: now,
		}
		subject.Topics[topicID] = topic
	}
	return topic
}
