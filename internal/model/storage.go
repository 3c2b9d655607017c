package model

import "time"

// StoreVersion is the current schema version of the persisted aggregate.
const StoreVersion = 1

// AppStore is the root persisted aggregate: every registered user with their
// progress, plus the active-user pointer. An empty ActiveUserID means nobody
// is logged in.
type AppStore struct {
	Version      int                  `json:"version"`
	ActiveUserID string               `json:"activeUserId"`
	Users        map[string]*UserData `json:"users"`
}

// UserData is one user's profile together with their progress tree.
type UserData struct {
	Profile  UserProfile  `json:"profile"`
	Progress UserProgress `json:"progress"`
}

// UserProfile identifies one registered learner.
type UserProfile struct {
	ID          string    `json:"id"`
	Nombre      string    `json:"nombre"`
	Curso       string    `json:"curso"`
	CreatedAt   time.Time `json:"createdAt"`
	LastLoginAt time.Time `json:"lastLoginAt"`
}

// UserProgress is the per-subject progress tree of one user.
type UserProgress struct {
	Subjects map[string]*SubjectProgress `json:"subjects"`
}

// SubjectProgress tracks one subject's topics for one user.
type SubjectProgress struct {
	LastAccessedAt time.Time                 `json:"lastAccessedAt"`
	Topics         map[string]*TopicProgress `json:"topics"`
}

// TopicProgress tracks one topic: whether it was viewed and the chronological
// history of finished exam attempts.
type TopicProgress struct {
	Viewed         bool          `json:"viewed"`
	ExamAttempts   []ExamAttempt `json:"examAttempts"`
	LastAccessedAt time.Time     `json:"lastAccessedAt"`
}

// ExamAttempt is one completed pass through an exam. Attempts are append-only
// and never modified after recording.
type ExamAttempt struct {
	ID              string    `json:"id"`
	CompletedAt     time.Time `json:"completedAt"`
	Score           int       `json:"score"`
	Total           int       `json:"total"`
	Answers         AnswerMap `json:"answers"`
	DurationSeconds int       `json:"durationSeconds"`
}

// InProgressExam is the resumable scratch state of an unfinished attempt,
// persisted separately from the aggregate under its own key.
type InProgressExam struct {
	Answers      AnswerMap `json:"answers"`
	CurrentIndex int       `json:"currentIndex"`
	StartedAt    time.Time `json:"startedAt"`
}

// LegacyProfile is the pre-v1 single-profile record, read once during
// migration and then deleted.
type LegacyProfile struct {
	Nombre    string    `json:"nombre"`
	Curso     string    `json:"curso"`
	CreatedAt time.Time `json:"createdAt"`
}
