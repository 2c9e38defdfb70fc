package models

import (
	"errors"
	"strings"
	"time"
)

type Post struct {
	ID             string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	UserID         string    `gorm:"index;not null" json:"userId"`
	Images         []string  `gorm:"serializer:json" json:"images"`
	Caption        string    `gorm:"type:text" json:"caption"`
	Likes          int       `gorm:"not null;default:0" json:"likes"`
	Comments       []Comment `gorm:"foreignKey:PostID" json:"comments"`
	Timestamp      time.Time `gorm:"not null" json:"timestamp"`
	IsFundable     bool      `gorm:"not null;default:false" json:"isFundable"`
	FundingGoal    float64   `gorm:"not null;default:0" json:"fundingGoal"`
	CurrentFunding float64   `gorm:"not null;default:0" json:"currentFunding"`
}

type Comment struct {
	ID        string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	PostID    string    `gorm:"index;not null" json:"postId"`
	UserID    string    `gorm:"not null" json:"userId"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	Likes     int       `gorm:"not null;default:0" json:"likes"`
	CreatedAt time.Time `json:"timestamp"`
}

// ErrMissingAuthor is returned when a post does not reference a user.
var ErrMissingAuthor = errors.New("models: post author is required")

// Validate reports whether the required post fields are present.
func (p Post) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return ErrMissingID
	}
	if strings.TrimSpace(p.UserID) == "" {
		return ErrMissingAuthor
	}
	if p.Likes < 0 {
		return ErrNegativeCount
	}
	return nil
}

// Clone returns a deep copy of the post.
func (p Post) Clone() Post {
	c := p
	c.Images = append([]string(nil), p.Images...)
	c.Comments = append([]Comment(nil), p.Comments...)
	return c
}
