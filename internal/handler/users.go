package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/pavelanni/clau-lessons/internal/store"
)

func (h *Handler) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Nombre string `json:"nombre"`
		Curso  string `json:"curso"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Nombre) == "" {
		writeError(w, r, http.StatusBadRequest, "InvalidRequest")
		return
	}

	profile, err := h.store.CreateUser(req.Nombre, req.Curso)
	if err != nil {
		slog.Error("create user", "error", err)
		writeError(w, r, http.StatusInternalServerError, "InternalError")
		return
	}
	writeJSON(w, http.StatusCreated, profile)
}

func (h *Handler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.GetAllUsers()
	if err != nil {
		slog.Error("list users", "error", err)
		writeError(w, r, http.StatusInternalServerError, "InternalError")
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *Handler) handleActiveUser(w http.ResponseWriter, r *http.Request) {
	u, err := h.store.GetActiveUser()
	if err != nil {
		slog.Error("get active user", "error", err)
		writeError(w, r, http.StatusInternalServerError, "InternalError")
		return
	}
	if u == nil {
		writeError(w, r, http.StatusNotFound, "NoActiveUser")
		return
	}
	writeJSON(w, http.StatusOK, u.Profile)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
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
	if err := h.store.SetActiveUser(userID); err != nil {
		slog.Error("set active user", "user_id", userID, "error", err)
		writeError(w, r, http.StatusInternalServerError, "InternalError")
		return
	}
	writeJSON(w, http.StatusOK, u.Profile)
}

func (h *Handler) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if err := h.store.DeleteUser(userID); err != nil {
		slog.Error("delete user", "user_id", userID, "error", err)
		writeError(w, r, http.StatusInternalServerError, "InternalError")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Logout(); err != nil {
		slog.Error("logout", "error", err)
		writeError(w, r, http.StatusInternalServerError, "InternalError")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	raw, err := h.store.ExportUserData(userID)
	if errors.Is(err, store.ErrUserNotFound) {
		writeError(w, r, http.StatusNotFound, "UserNotFound")
		return
	}
	if err != nil {
		slog.Error("export user", "user_id", userID, "error", err)
		writeError(w, r, http.StatusInternalServerError, "InternalError")
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+userID+`.json"`)
	w.Write(raw)
}

func (h *Handler) handleImport(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "InvalidRequest")
		return
	}
	profile, err := h.store.ImportUserData(raw)
	if errors.Is(err, store.ErrInvalidImport) {
		writeError(w, r, http.StatusBadRequest, "InvalidImportFile")
		return
	}
	if err != nil {
		slog.Error("import user", "error", err)
		writeError(w, r, http.StatusInternalServerError, "InternalError")
		return
	}
	writeJSON(w, http.StatusCreated, profile)
}

func (h *Handler) handleProgress(w http.ResponseWriter, r *http.Request) {
	progress, err := h.store.GetProgress(chi.URLParam(r, "userID"))
	if err != nil {
		slog.Error("get progress", "error", err)
		writeError(w, r, http.StatusInternalServerError, "InternalError")
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

func (h *Handler) handleMarkViewed(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	subjectID := chi.URLParam(r, "subject")
	topicID := chi.URLParam(r, "topic")
	if err := h.store.MarkTopicViewed(userID, subjectID, topicID); err != nil {
		slog.Error("mark topic viewed", "user_id", userID, "error", err)
		writeError(w, r, http.StatusInternalServerError, "InternalError")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleBestScore(w http.ResponseWriter, r *http.Request) {
	best, ok, err := h.store.GetBestScore(
		chi.URLParam(r, "userID"), chi.URLParam(r, "subject"), chi.URLParam(r, "topic"))
	if err != nil {
		slog.Error("get best score", "error", err)
		writeError(w, r, http.StatusInternalServerError, "InternalError")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"bestScore":   best,
		"hasAttempts": ok,
	})
}
