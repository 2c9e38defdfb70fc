package models

import (
	"errors"
	"strings"
)

type Student struct {
	ID             string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Name           string    `gorm:"not null" json:"name"`
	Username       string    `gorm:"uniqueIndex;not null" json:"username"`
	Avatar         string    `json:"avatar"`
	University     string    `json:"university"`
	Course         string    `json:"course"`
	GPA            float64   `json:"gpa"`
	Year           string    `json:"year"`
	Bio            string    `gorm:"type:text" json:"bio"`
	IsVerified     bool      `gorm:"not null;default:false" json:"isVerified"`
	FundingGoal    float64   `gorm:"not null;default:0" json:"fundingGoal"`
	CurrentFunding float64   `gorm:"not null;default:0" json:"currentFunding"`
	Supporters     int       `gorm:"not null;default:0" json:"supporters"`
	TotalFunded    float64   `gorm:"not null;default:0" json:"totalFunded"`
	Achievements   []string  `gorm:"serializer:json" json:"achievements"`
	Projects       []Project `gorm:"foreignKey:StudentID" json:"projects"`
}

// Project is a fundable piece of work owned by a student.
type Project struct {
	ID            uint    `gorm:"primaryKey" json:"-"`
	StudentID     string  `gorm:"index;not null" json:"-"`
	Title         string  `gorm:"not null" json:"title"`
	Description   string  `gorm:"type:text" json:"description"`
	GoalAmount    float64 `json:"goalAmount"`
	CurrentAmount float64 `json:"currentAmount"`
	Image         string  `json:"image"`
}

// ErrMissingName is returned when a student has no display name.
var ErrMissingName = errors.New("models: name is required")

// Validate reports whether the required student fields are present.
func (s Student) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return ErrMissingID
	}
	if strings.TrimSpace(s.Name) == "" {
		return ErrMissingName
	}
	if s.Supporters < 0 {
		return ErrNegativeCount
	}
	return nil
}

// Clone returns a deep copy of the student.
func (s Student) Clone() Student {
	c := s
	c.Achievements = append([]string(nil), s.Achievements...)
	c.Projects = append([]Project(nil), s.Projects...)
	return c
}

// StudentRegistration is the form a user submits to be listed as a student.
type StudentRegistration struct {
	Name        string  `json:"name"`
	Username    string  `json:"username"`
	University  string  `json:"university"`
	Course      string  `json:"course"`
	Year        string  `json:"year"`
	GPA         float64 `json:"gpa"`
	FundingGoal float64 `json:"fundingGoal"`
	Bio         string  `json:"bio"`
}
