package store

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/pavelanni/clau-lessons/internal/model"
)

// The in-progress exam cache is advisory: losing a record only loses the
// position and answers of an unfinished attempt, never recorded history.

func examKey(userID, subjectID, topicID string) string {
	return fmt.Sprintf("clau_exam_%s_%s_%s", userID, subjectID, topicID)
}

// GetInProgressExam returns the cached state of an unfinished attempt, or nil
// when there is none. A corrupted record reads as nil, not as an error.
func (s *Store) GetInProgressExam(userID, subjectID, topicID string) (*model.InProgressExam, error) {
	raw, err := s.backend.Get(examKey(userID, subjectID, topicID))
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	var rec model.InProgressExam
	if err := json.Unmarshal(raw, &rec); err != nil {
		slog.Warn("corrupted in-progress exam record",
			"user_id", userID, "subject_id", subjectID, "topic_id", topicID, "error", err)
		return nil, nil
	}
	return &rec, nil
}

// SaveInProgressExam overwrites the cached attempt state for the key.
func (s *Store) SaveInProgressExam(userID, subjectID, topicID string, rec *model.InProgressExam) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal in-progress exam: %w", err)
	}
	return s.backend.Set(examKey(userID, subjectID, topicID), raw)
}

// ClearInProgressExam deletes the cached attempt state for the key.
func (s *Store) ClearInProgressExam(userID, subjectID, topicID string) error {
	return s.backend.Delete(examKey(userID, subjectID, topicID))
}
