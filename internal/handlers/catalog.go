package handlers

import (
	"net/http"

	applog "dsfs/internal/log"
	"dsfs/models"
)

func (h *Handlers) FeaturedProjects(w http.ResponseWriter, r *http.Request) {
	if h.catalog == nil {
		writeJSON(w, r, http.StatusOK, []models.FeaturedProject{})
		return
	}
	projects, err := h.catalog.FeaturedProjects(r.Context())
	if err != nil {
		applog.Error(r.Context(), "failed to load featured projects", "error", err)
		writeError(w, r, http.StatusInternalServerError, "internal_error", "featured projects are unavailable")
		return
	}
	writeJSON(w, r, http.StatusOK, projects)
}

func (h *Handlers) Notifications(w http.ResponseWriter, r *http.Request) {
	if h.catalog == nil {
		writeJSON(w, r, http.StatusOK, []models.Notification{})
		return
	}
	notifications, err := h.catalog.Notifications(r.Context())
	if err != nil {
		applog.Error(r.Context(), "failed to load notifications", "error", err)
		writeError(w, r, http.StatusInternalServerError, "internal_error", "notifications are unavailable")
		return
	}
	writeJSON(w, r, http.StatusOK, notifications)
}
