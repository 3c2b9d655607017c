package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) handleCursosIndex(w http.ResponseWriter, r *http.Request) {
	index, err := h.content.LoadCursosIndex()
	if err != nil {
		slog.Error("load cursos index", "error", err)
		writeError(w, r, http.StatusNotFound, "NotFound")
		return
	}
	writeJSON(w, http.StatusOK, index)
}

func (h *Handler) handleCursoDetail(w http.ResponseWriter, r *http.Request) {
	curso, err := h.content.LoadCursoDetail(chi.URLParam(r, "curso"))
	if err != nil {
		slog.Error("load curso", "curso", chi.URLParam(r, "curso"), "error", err)
		writeError(w, r, http.StatusNotFound, "NotFound")
		return
	}
	writeJSON(w, http.StatusOK, curso)
}

func (h *Handler) handleSubjectDetail(w http.ResponseWriter, r *http.Request) {
	subject, err := h.content.LoadSubjectDetail(chi.URLParam(r, "curso"), chi.URLParam(r, "subject"))
	if err != nil {
		slog.Error("load subject", "subject", chi.URLParam(r, "subject"), "error", err)
		writeError(w, r, http.StatusNotFound, "NotFound")
		return
	}
	writeJSON(w, http.StatusOK, subject)
}

func (h *Handler) handleTopicData(w http.ResponseWriter, r *http.Request) {
	topic, err := h.content.LoadTopicData(
		chi.URLParam(r, "curso"), chi.URLParam(r, "subject"), chi.URLParam(r, "topic"))
	if err != nil {
		slog.Error("load topic", "topic", chi.URLParam(r, "topic"), "error", err)
		writeError(w, r, http.StatusNotFound, "TopicNotFound")
		return
	}
	writeJSON(w, http.StatusOK, topic)
}

func (h *Handler) handleSlidesData(w http.ResponseWriter, r *http.Request) {
	slides, err := h.content.LoadSlidesData(
		chi.URLParam(r, "curso"), chi.URLParam(r, "subject"), chi.URLParam(r, "topic"))
	if err != nil {
		slog.Error("load slides", "topic", chi.URLParam(r, "topic"), "error", err)
		writeError(w, r, http.StatusNotFound, "TopicNotFound")
		return
	}
	writeJSON(w, http.StatusOK, slides)
}
