package store

import (
	"context"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"

	applog "dsfs/internal/log"
	"dsfs/internal/remote"
	"dsfs/models"
)

const (
	defaultAvatar   = "https://images.pexels.com/photos/771742/pexels-photo-771742.jpeg?auto=compress&cs=tinysrgb&w=150"
	defaultBio      = "Welcome to DSFS!"
	defaultUserID   = "1"
	defaultUsername = "current_user"
)

// Authenticator exchanges credentials for a session token.
type Authenticator interface {
	Login(ctx context.Context, creds remote.Credentials) (remote.LoginResponse, error)
}

// TokenStore persists the session token and profile between runs.
type TokenStore interface {
	SetToken(ctx context.Context, token string) error
	SetUserData(ctx context.Context, user *models.User) error
	Logout(ctx context.Context) error
}

// SessionState is a snapshot of the session store.
type SessionState struct {
	User              *models.User `json:"user"`
	Authenticated     bool         `json:"isAuthenticated"`
	StudentRegistered bool         `json:"isStudentRegistered"`
	Version           uint64       `json:"version"`
}

// SessionConfig wires a Session. Every field is optional.
type SessionConfig struct {
	Auth    Authenticator
	Tokens  TokenStore
	Latency Waiter
	// Initial replaces DefaultUser as the signed-in user at construction.
	Initial *models.User
}

// ProfileUpdate carries the fields a user may change. Nil fields are left
// untouched.
type ProfileUpdate struct {
	Username *string `json:"username,omitempty"`
	Name     *string `json:"name,omitempty"`
	Avatar   *string `json:"avatar,omitempty"`
	Bio      *string `json:"bio,omitempty"`
}

// Session owns the single current user.
type Session struct {
	auth    Authenticator
	tokens  TokenStore
	latency Waiter

	mu                sync.RWMutex
	user              *models.User
	authenticated     bool
	studentRegistered bool
	version           uint64

	subs listeners[SessionState]
}

// DefaultUser is the account a fresh session starts signed in as.
func DefaultUser() *models.User {
	return &models.User{
		ID:       defaultUserID,
		Username: defaultUsername,
		Name:     "Current User",
		Avatar:   defaultAvatar,
		Bio:      defaultBio,
	}
}

// NewSessionUser builds the profile for a freshly signed-in username.
func NewSessionUser(username string) *models.User {
	return &models.User{
		ID:       uuid.NewString(),
		Username: username,
		Name:     capitalize(username),
		Avatar:   defaultAvatar,
		Bio:      defaultBio,
	}
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// NewSession builds a session signed in as cfg.Initial or DefaultUser.
func NewSession(cfg SessionConfig) *Session {
	user := cfg.Initial.Clone()
	if user == nil {
		user = DefaultUser()
	}
	return &Session{
		auth:          cfg.Auth,
		tokens:        cfg.Tokens,
		latency:       cfg.Latency,
		user:          user,
		authenticated: true,
	}
}

// Login waits for the simulated latency and replaces the current user with
// one derived from username. The username is used as given and no password
// check is made; callers validate input. It reports false only when the
// latency wait or the token exchange fails. Concurrent logins are not
// debounced; the last one to finish wins.
func (s *Session) Login(ctx context.Context, username, password string) bool {
	ctx = context.WithoutCancel(ctx)
	if err := s.latency.wait(ctx); err != nil {
		applog.Error(ctx, "login wait failed", "error", err)
		return false
	}

	token := uuid.NewString()
	if s.auth != nil {
		resp, err := s.auth.Login(ctx, remote.Credentials{Username: username, Password: password})
		if err != nil || !resp.Success {
			applog.Warn(ctx, "login failed", "username", username, "error", err)
			return false
		}
		if resp.Token != "" {
			token = resp.Token
		}
	}

	user := NewSessionUser(username)

	s.mu.Lock()
	s.user = user
	s.authenticated = true
	s.version++
	state := s.stateLocked()
	s.mu.Unlock()
	s.subs.notify(state)

	if s.tokens != nil {
		if err := s.tokens.SetToken(ctx, token); err != nil {
			applog.Error(ctx, "failed to persist session token", "error", err)
		}
		if err := s.tokens.SetUserData(ctx, user); err != nil {
			applog.Error(ctx, "failed to persist user data", "error", err)
		}
	}
	applog.Info(ctx, "user logged in", "username", username)
	return true
}

// Logout clears the user, both flags and the persisted token.
func (s *Session) Logout(ctx context.Context) {
	s.mu.Lock()
	s.user = nil
	s.authenticated = false
	s.studentRegistered = false
	s.version++
	state := s.stateLocked()
	s.mu.Unlock()
	s.subs.notify(state)

	if s.tokens != nil {
		if err := s.tokens.Logout(ctx); err != nil {
			applog.Error(ctx, "failed to clear persisted session", "error", err)
		}
	}
}

// UpdateProfile merges update into the current user. It reports false when
// no user is signed in or the merged record would be invalid.
func (s *Session) UpdateProfile(update ProfileUpdate) bool {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return false
	}
	merged := s.user.Clone()
	if update.Username != nil {
		merged.Username = *update.Username
	}
	if update.Name != nil {
		merged.Name = *update.Name
	}
	if update.Avatar != nil {
		merged.Avatar = *update.Avatar
	}
	if update.Bio != nil {
		merged.Bio = *update.Bio
	}
	if err := merged.Validate(); err != nil {
		s.mu.Unlock()
		applog.Debug(context.Background(), "profile update rejected", "error", err)
		return false
	}
	s.user = merged
	s.version++
	state := s.stateLocked()
	s.mu.Unlock()

	s.subs.notify(state)
	return true
}

// RegisterAsStudent marks the current user as a student. Repeated calls
// leave the state unchanged. It is a no-op when nobody is signed in.
func (s *Session) RegisterAsStudent() {
	s.mu.Lock()
	if s.user == nil || (s.studentRegistered && s.user.IsStudent) {
		s.mu.Unlock()
		return
	}
	s.studentRegistered = true
	s.user.IsStudent = true
	s.version++
	state := s.stateLocked()
	s.mu.Unlock()

	s.subs.notify(state)
}

// State returns a copy of the session state.
func (s *Session) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stateLocked()
}

// Subscribe registers fn for every transition and returns its remover.
func (s *Session) Subscribe(fn func(SessionState)) func() {
	return s.subs.add(fn)
}

func (s *Session) stateLocked() SessionState {
	return SessionState{
		User:              s.user.Clone(),
		Authenticated:     s.authenticated,
		StudentRegistered: s.studentRegistered,
		Version:           s.version,
	}
}
