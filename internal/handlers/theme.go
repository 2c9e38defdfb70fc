package handlers

import (
	"errors"
	"net/http"

	applog "dsfs/internal/log"
	"dsfs/internal/theme"
	themeview "dsfs/internal/views/theme"
)

type preferenceRequest struct {
	Preference string `json:"preference"`
}

type hostRequest struct {
	Appearance string `json:"appearance"`
}

type themeResponse struct {
	theme.Snapshot
	Options []themeview.Option `json:"options"`
}

func (h *Handlers) themeResponse() themeResponse {
	return themeResponse{Snapshot: h.theme.Snapshot(), Options: themeview.Options()}
}

// GetTheme returns the current preference, effective scheme and palette.
func (h *Handlers) GetTheme(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.themeResponse())
}

func (h *Handlers) SetTheme(w http.ResponseWriter, r *http.Request) {
	var req preferenceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	pref, err := theme.ParsePreference(req.Preference)
	if err == nil {
		err = h.theme.SetPreference(r.Context(), pref)
	}
	if errors.Is(err, theme.ErrInvalidPreference) {
		writeError(w, r, http.StatusBadRequest, "invalid_preference", "preference must be light, dark or system")
		return
	}
	if err != nil {
		applog.Error(r.Context(), "failed to set theme preference", "error", err)
		writeError(w, r, http.StatusInternalServerError, "internal_error", "could not update theme")
		return
	}
	writeJSON(w, r, http.StatusOK, h.themeResponse())
}

func (h *Handlers) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	next := h.theme.Toggle(r.Context())
	applog.Debug(r.Context(), "theme toggled", "preference", next)
	writeJSON(w, r, http.StatusOK, h.themeResponse())
}

// SetHostAppearance records the appearance the host reports.
func (h *Handlers) SetHostAppearance(w http.ResponseWriter, r *http.Request) {
	var req hostRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	scheme, err := theme.ParseScheme(req.Appearance)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_appearance", "appearance must be light or dark")
		return
	}
	h.theme.SetHostAppearance(scheme)
	writeJSON(w, r, http.StatusOK, h.themeResponse())
}

// StyleSheet serves the effective palette as CSS variables.
func (h *Handlers) StyleSheet(w http.ResponseWriter, r *http.Request) {
	snap := h.theme.Snapshot()
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := themeview.StyleSheet(snap.Scheme, snap.Palette).Render(r.Context(), w); err != nil {
		applog.Error(r.Context(), "failed to render theme stylesheet", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
