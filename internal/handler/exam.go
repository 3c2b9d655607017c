package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pavelanni/clau-lessons/internal/content"
	"github.com/pavelanni/clau-lessons/internal/exam"
	"github.com/pavelanni/clau-lessons/internal/i18n"
	"github.com/pavelanni/clau-lessons/internal/model"
)

// examState is the session view sent back after every exam operation.
type examState struct {
	Status        exam.Status     `json:"status"`
	Index         int             `json:"index"`
	Total         int             `json:"total"`
	AnsweredCount int             `json:"answeredCount"`
	AllAnswered   bool            `json:"allAnswered"`
	IsFirst       bool            `json:"isFirst"`
	IsLast        bool            `json:"isLast"`
	Question      model.Question  `json:"question"`
	Answers       model.AnswerMap `json:"answers"`
}

func stateOf(sess *exam.Session) examState {
	var current model.Question
	if sess.Total() > 0 {
		current = sess.Current()
	}
	return examState{
		Status:        sess.Status(),
		Index:         sess.Index(),
		Total:         sess.Total(),
		AnsweredCount: sess.AnsweredCount(),
		AllAnswered:   sess.AllAnswered(),
		IsFirst:       sess.IsFirst(),
		IsLast:        sess.IsLast(),
		Question:      current,
		Answers:       sess.Answers(),
	}
}

func examParams(r *http.Request) (userID, subjectID, topicID string) {
	return chi.URLParam(r, "userID"), chi.URLParam(r, "subject"), chi.URLParam(r, "topic")
}

// loadQuestions resolves the user's curso to a content folder and reads the
// topic's question set.
func (h *Handler) loadQuestions(userID, subjectID, topicID string) ([]model.Question, error) {
	u, err := h.store.GetUser(userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, nil
	}
	data, err := h.content.LoadExamData(content.CursoSlug(u.Profile.Curso), subjectID, topicID)
	if err != nil {
		return nil, err
	}
	return data.Questions, nil
}

// persist mirrors an in-progress session to the store's cache.
func (h *Handler) persist(userID, subjectID, topicID string, sess *exam.Session) {
	if sess.Status() != exam.StatusInProgress {
		return
	}
	if err := h.store.SaveInProgressExam(userID, subjectID, topicID, sess.Snapshot()); err != nil {
		slog.Error("save in-progress exam", "user_id", userID, "error", err)
	}
}

func (h *Handler) handleExamStart(w http.ResponseWriter, r *http.Request) {
	userID, subjectID, topicID := examParams(r)

	u, err := h.store.GetUser(userID)
	if err != nil {
		slog.Error("get user", "user_id", userID, "error", err)
		writeError(w, r, http.StatusInternalServerError, "InternalError")
		return
	}
	if u == nil {
		writeError(w, r, http.StatusNotFound, "UserNotFound")
		return
	}

	data, err := h.content.LoadExamData(content.CursoSlug(u.Profile.Curso), subjectID, topicID)
	if err != nil {
		slog.Error("load exam data", "subject", subjectID, "topic", topicID, "error", err)
		writeError(w, r, http.StatusNotFound, "TopicNotFound")
		return
	}

	snap, err := h.store.GetInProgressExam(userID, subjectID, topicID)
	if err != nil {
		slog.Error("get in-progress exam", "user_id", userID, "error", err)
		writeError(w, r, http.StatusInternalServerError, "InternalError")
		return
	}

	sess := exam.Resume(data.Questions, snap)

	h.mu.Lock()
	h.sessions[sessionKey(userID, subjectID, topicID)] = sess
	h.mu.Unlock()

	h.persist(userID, subjectID, topicID, sess)
	writeJSON(w, http.StatusOK, stateOf(sess))
}

// session looks up the live session for the request, replying 404 when there
// is none.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*exam.Session, bool) {
	userID, subjectID, topicID := examParams(r)
	h.mu.Lock()
	sess, ok := h.sessions[sessionKey(userID, subjectID, topicID)]
	h.mu.Unlock()
	if !ok {
		writeError(w, r, http.StatusNotFound, "NoActiveExam")
		return nil, false
	}
	return sess, true
}

func (h *Handler) handleExamState(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, stateOf(sess))
}

func (h *Handler) handleExamAnswer(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req struct {
		QuestionID string          `json:"questionId"`
		Answer     json.RawMessage `json:"answer"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.QuestionID == "" {
		writeError(w, r, http.StatusBadRequest, "InvalidRequest")
		return
	}
	answer, err := model.DecodeAnswer(req.Answer)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "InvalidRequest")
		return
	}

	sess.SetAnswer(req.QuestionID, answer)
	userID, subjectID, topicID := examParams(r)
	h.persist(userID, subjectID, topicID, sess)
	writeJSON(w, http.StatusOK, stateOf(sess))
}

func (h *Handler) handleExamNext(w http.ResponseWriter, r *http.Request) {
	h.navigate(w, r, func(sess *exam.Session) { sess.Next() })
}

func (h *Handler) handleExamPrev(w http.ResponseWriter, r *http.Request) {
	h.navigate(w, r, func(sess *exam.Session) { sess.Prev() })
}

func (h *Handler) handleExamGoTo(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Index int `json:"index"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "InvalidRequest")
		return
	}
	h.navigate(w, r, func(sess *exam.Session) { sess.GoTo(req.Index) })
}

func (h *Handler) navigate(w http.ResponseWriter, r *http.Request, move func(*exam.Session)) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	move(sess)
	userID, subjectID, topicID := examParams(r)
	h.persist(userID, subjectID, topicID, sess)
	writeJSON(w, http.StatusOK, stateOf(sess))
}

func (h *Handler) handleExamFinish(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	if sess.Status() == exam.StatusFinished {
		writeError(w, r, http.StatusConflict, "ExamAlreadyFinished")
		return
	}

	userID, subjectID, topicID := examParams(r)
	score := sess.Finish()

	attempt := model.ExamAttempt{
		ID:              uuid.NewString(),
		CompletedAt:     time.Now(),
		Score:           score,
		Total:           sess.Total(),
		Answers:         sess.Answers(),
		DurationSeconds: sess.DurationSeconds(),
	}
	if err := h.store.RecordExamAttempt(userID, subjectID, topicID, attempt); err != nil {
		slog.Error("record exam attempt", "user_id", userID, "error", err)
		writeError(w, r, http.StatusInternalServerError, "InternalError")
		return
	}
	if err := h.store.ClearInProgressExam(userID, subjectID, topicID); err != nil {
		slog.Error("clear in-progress exam", "user_id", userID, "error", err)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"score":           score,
		"total":           sess.Total(),
		"durationSeconds": sess.DurationSeconds(),
		"message": i18n.Td(r.Context(), "ScoreSummary", map[string]any{
			"Score": score,
			"Total": sess.Total(),
		}),
	})
}

func (h *Handler) handleExamRestart(w http.ResponseWriter, r *http.Request) {
	userID, subjectID, topicID := examParams(r)

	questions, err := h.loadQuestions(userID, subjectID, topicID)
	if err != nil {
		slog.Error("load exam data", "subject", subjectID, "topic", topicID, "error", err)
		writeError(w, r, http.StatusNotFound, "TopicNotFound")
		return
	}
	if questions == nil {
		writeError(w, r, http.StatusNotFound, "UserNotFound")
		return
	}

	if err := h.store.ClearInProgressExam(userID, subjectID, topicID); err != nil {
		slog.Error("clear in-progress exam", "user_id", userID, "error", err)
	}

	sess := exam.New(questions)
	h.mu.Lock()
	h.sessions[sessionKey(userID, subjectID, topicID)] = sess
	h.mu.Unlock()

	h.persist(userID, subjectID, topicID, sess)
	writeJSON(w, http.StatusOK, stateOf(sess))
}
