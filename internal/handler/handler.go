// Package handler exposes the app over a JSON API: curriculum content,
// user profiles, progress, and live exam sessions.
package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/pavelanni/clau-lessons/internal/content"
	"github.com/pavelanni/clau-lessons/internal/exam"
	"github.com/pavelanni/clau-lessons/internal/i18n"
	"github.com/pavelanni/clau-lessons/internal/store"
)

// Handler holds shared dependencies for HTTP handlers.
type Handler struct {
	store   *store.Store
	content *content.Loader

	// Live exam sessions keyed by (user, subject, topic). Every mutation is
	// mirrored to the store's in-progress cache so a restart can resume.
	mu       sync.Mutex
	sessions map[string]*exam.Session
}

// New creates a new Handler.
func New(s *store.Store, c *content.Loader) *Handler {
	return &Handler{
		store:    s,
		content:  c,
		sessions: make(map[string]*exam.Session),
	}
}

// Routes registers all HTTP routes.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/cursos", h.handleCursosIndex)
		r.Get("/cursos/{curso}", h.handleCursoDetail)
		r.Get("/cursos/{curso}/subjects/{subject}", h.handleSubjectDetail)
		r.Get("/cursos/{curso}/subjects/{subject}/topics/{topic}", h.handleTopicData)
		r.Get("/cursos/{curso}/subjects/{subject}/topics/{topic}/slides", h.handleSlidesData)

		r.Post("/users", h.handleCreateUser)
		r.Get("/users", h.handleListUsers)
		r.Get("/users/active", h.handleActiveUser)
		r.Post("/users/{userID}/login", h.handleLogin)
		r.Delete("/users/{userID}", h.handleDeleteUser)
		r.Post("/logout", h.handleLogout)

		r.Get("/users/{userID}/export", h.handleExport)
		r.Post("/import", h.handleImport)

		r.Get("/users/{userID}/progress", h.handleProgress)
		r.Post("/users/{userID}/subjects/{subject}/topics/{topic}/viewed", h.handleMarkViewed)
		r.Get("/users/{userID}/subjects/{subject}/topics/{topic}/best-score", h.handleBestScore)

		r.Route("/users/{userID}/subjects/{subject}/topics/{topic}/exam", func(r chi.Router) {
			r.Post("/start", h.handleExamStart)
			r.Get("/", h.handleExamState)
			r.Post("/answer", h.handleExamAnswer)
			r.Post("/next", h.handleExamNext)
			r.Post("/prev", h.handleExamPrev)
			r.Post("/goto", h.handleExamGoTo)
			r.Post("/finish", h.handleExamFinish)
			r.Post("/restart", h.handleExamRestart)
		})
	})
}

func sessionKey(userID, subjectID, topicID string) string {
	return fmt.Sprintf("%s|%s|%s", userID, subjectID, topicID)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// writeError sends a localized error message under the given status.
func writeError(w http.ResponseWriter, r *http.Request, status int, msgID string) {
	writeJSON(w, status, map[string]string{"error": i18n.T(r.Context(), msgID)})
}
