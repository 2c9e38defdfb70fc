// Package auth keeps the session token and cached profile in durable
// key-value storage.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"dsfs/internal/kv"
	"dsfs/models"
)

const (
	TokenKey    = "auth_token"
	UserDataKey = "user_data"
)

// Service reads and writes the persisted session entries.
type Service struct {
	storage kv.Storage
}

// NewService wraps storage.
func NewService(storage kv.Storage) *Service {
	return &Service{storage: storage}
}

func (s *Service) SetToken(ctx context.Context, token string) error {
	return s.storage.Set(ctx, TokenKey, token)
}

// Token returns the stored token, or "" when none is stored.
func (s *Service) Token(ctx context.Context) (string, error) {
	token, err := s.storage.Get(ctx, TokenKey)
	if errors.Is(err, kv.ErrNotFound) {
		return "", nil
	}
	return token, err
}

func (s *Service) RemoveToken(ctx context.Context) error {
	return s.storage.Delete(ctx, TokenKey)
}

// SetUserData stores user as JSON.
func (s *Service) SetUserData(ctx context.Context, user *models.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user data: %w", err)
	}
	return s.storage.Set(ctx, UserDataKey, string(raw))
}

// UserData returns the cached profile, or nil when none is stored.
func (s *Service) UserData(ctx context.Context) (*models.User, error) {
	raw, err := s.storage.Get(ctx, UserDataKey)
	if errors.Is(err, kv.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, fmt.Errorf("decode user data: %w", err)
	}
	return &user, nil
}

func (s *Service) RemoveUserData(ctx context.Context) error {
	return s.storage.Delete(ctx, UserDataKey)
}

// IsAuthenticated reports whether a non-empty token is stored.
func (s *Service) IsAuthenticated(ctx context.Context) (bool, error) {
	token, err := s.Token(ctx)
	if err != nil {
		return false, err
	}
	return token != "", nil
}

// Logout removes both the token and the cached profile.
func (s *Service) Logout(ctx context.Context) error {
	return errors.Join(s.RemoveToken(ctx), s.RemoveUserData(ctx))
}
