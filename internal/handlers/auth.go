package handlers

import (
	"net/http"
	"strings"

	applog "dsfs/internal/log"
	"dsfs/internal/store"
)

const (
	sessionAuthenticatedKey = "auth:authenticated"
	sessionUsernameKey      = "auth:user:username"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// GetSession returns the current user and flags.
func (h *Handlers) GetSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.session.State())
}

// Login signs in as username after the simulated latency. The browser
// session token is renewed so the cookie does not outlive the account switch.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	username := strings.TrimSpace(req.Username)
	if username == "" {
		writeError(w, r, http.StatusBadRequest, "invalid_username", "username is required")
		return
	}

	if !h.session.Login(r.Context(), username, req.Password) {
		writeError(w, r, http.StatusUnauthorized, "login_failed", "we were unable to sign you in, please try again")
		return
	}

	if err := h.sessions.RenewToken(r.Context()); err != nil {
		applog.Error(r.Context(), "failed to renew session token", "error", err)
	}
	h.sessions.Put(r.Context(), sessionAuthenticatedKey, true)
	h.sessions.Put(r.Context(), sessionUsernameKey, username)

	applog.Debug(r.Context(), "authentication succeeded", "username", username)
	writeJSON(w, r, http.StatusOK, h.session.State())
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.session.Logout(r.Context())

	h.sessions.Remove(r.Context(), sessionAuthenticatedKey)
	h.sessions.Remove(r.Context(), sessionUsernameKey)
	if err := h.sessions.RenewToken(r.Context()); err != nil {
		applog.Error(r.Context(), "failed to renew session token on logout", "error", err)
	}

	writeJSON(w, r, http.StatusOK, h.session.State())
}

// UpdateProfile merges the supplied fields into the current user.
func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req store.ProfileUpdate
	if !decodeJSON(w, r, &req) {
		return
	}
	if h.session.State().User == nil {
		writeError(w, r, http.StatusUnauthorized, "not_signed_in", "no user is signed in")
		return
	}
	if !h.session.UpdateProfile(req) {
		writeError(w, r, http.StatusBadRequest, "invalid_profile", "profile update was rejected")
		return
	}
	writeJSON(w, r, http.StatusOK, h.session.State())
}

func (h *Handlers) RegisterAsStudent(w http.ResponseWriter, r *http.Request) {
	if h.session.State().User == nil {
		writeError(w, r, http.StatusUnauthorized, "not_signed_in", "no user is signed in")
		return
	}
	h.session.RegisterAsStudent()
	writeJSON(w, r, http.StatusOK, h.session.State())
}
