package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/alexedwards/scs/v2"

	applog "dsfs/internal/log"
	"dsfs/internal/stellar"
	"dsfs/internal/store"
	"dsfs/internal/theme"
	"dsfs/models"
)

const maxBodyBytes = 1 << 20

// ThemeService is the theme resolution surface the handlers drive.
type ThemeService interface {
	Snapshot() theme.Snapshot
	SetPreference(ctx context.Context, p theme.Preference) error
	Toggle(ctx context.Context) theme.Preference
	SetHostAppearance(host theme.Scheme)
}

type SessionStore interface {
	Login(ctx context.Context, username, password string) bool
	Logout(ctx context.Context)
	UpdateProfile(update store.ProfileUpdate) bool
	RegisterAsStudent()
	State() store.SessionState
}

type FeedStore interface {
	Refresh(ctx context.Context) error
	Like(id string) bool
	Fund(id string, amount float64) bool
	Post(id string) (store.FeedPost, bool)
	State() store.FeedState
}

type StudentStore interface {
	Fetch(ctx context.Context) error
	Fund(id string, amount float64) bool
	Register(ctx context.Context, reg models.StudentRegistration) error
	Student(id string) (models.Student, bool)
	State() store.StudentsState
}

// Catalog serves the read-only fixture listings.
type Catalog interface {
	FeaturedProjects(ctx context.Context) ([]models.FeaturedProject, error)
	Notifications(ctx context.Context) ([]models.Notification, error)
}

// Payments submits a funding transfer to the payment network.
type Payments interface {
	SendPayment(ctx context.Context, p stellar.Payment) (stellar.Receipt, error)
}

// Dependencies groups everything the HTTP handlers call into.
type Dependencies struct {
	Sessions *scs.SessionManager
	Theme    ThemeService
	Session  SessionStore
	Feed     FeedStore
	Students StudentStore
	Catalog  Catalog
	Payments Payments
}

// Handlers exposes the client core over HTTP.
type Handlers struct {
	sessions *scs.SessionManager
	theme    ThemeService
	session  SessionStore
	feed     FeedStore
	students StudentStore
	catalog  Catalog
	payments Payments
}

// New validates deps and returns the handler set.
func New(deps Dependencies) (*Handlers, error) {
	switch {
	case deps.Sessions == nil:
		return nil, errors.New("handlers: session manager is required")
	case deps.Theme == nil:
		return nil, errors.New("handlers: theme service is required")
	case deps.Session == nil || deps.Feed == nil || deps.Students == nil:
		return nil, errors.New("handlers: session, feed and student stores are required")
	}
	return &Handlers{
		sessions: deps.Sessions,
		theme:    deps.Theme,
		session:  deps.Session,
		feed:     deps.Feed,
		students: deps.Students,
		catalog:  deps.Catalog,
		payments: deps.Payments,
	}, nil
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		applog.Error(r.Context(), "failed to encode response", "path", r.URL.Path, "error", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	writeJSON(w, r, status, errorResponse{Code: code, Message: message})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			writeError(w, r, http.StatusBadRequest, "empty_body", "request body is required")
			return false
		}
		applog.Debug(r.Context(), "rejecting malformed request body", "path", r.URL.Path, "error", err)
		writeError(w, r, http.StatusBadRequest, "invalid_body", "request body is not valid JSON for this endpoint")
		return false
	}
	return true
}
