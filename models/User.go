package models

import (
	"errors"
	"strings"
	"time"
)

// User represents a profile that can appear as a post author or as the
// signed-in account.
type User struct {
	ID           string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	Name         string    `gorm:"not null" json:"name"`
	Avatar       string    `json:"avatar"`
	Bio          string    `gorm:"type:text" json:"bio"`
	Followers    int       `gorm:"not null;default:0" json:"followers"`
	Following    int       `gorm:"not null;default:0" json:"following"`
	IsVerified   bool      `gorm:"not null;default:false" json:"isVerified"`
	IsStudent    bool      `gorm:"not null;default:false" json:"isStudent"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

var (
	// ErrMissingID is returned when a record is built without an identifier.
	ErrMissingID = errors.New("models: id is required")
	// ErrMissingUsername is returned when a user has no username.
	ErrMissingUsername = errors.New("models: username is required")
	// ErrNegativeCount is returned when a counter field is below zero.
	ErrNegativeCount = errors.New("models: counts must not be negative")
)

// Validate reports whether the required user fields are present.
func (u User) Validate() error {
	if strings.TrimSpace(u.ID) == "" {
		return ErrMissingID
	}
	if strings.TrimSpace(u.Username) == "" {
		return ErrMissingUsername
	}
	if u.Followers < 0 || u.Following < 0 {
		return ErrNegativeCount
	}
	return nil
}

// Clone returns a copy that shares no mutable state with u.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
