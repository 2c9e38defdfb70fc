// Package fixtures reads the demo data source the client stores load from.
package fixtures

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"dsfs/models"
)

// ErrUserNotFound is returned when a username has no account.
var ErrUserNotFound = errors.New("fixtures: user not found")

// Source serves fixture collections out of a gorm database. It satisfies
// the store package's post, user and student source ports.
type Source struct {
	db *gorm.DB
}

// New returns a Source backed by db.
func New(db *gorm.DB) (*Source, error) {
	if db == nil {
		return nil, fmt.Errorf("database handle is nil")
	}
	return &Source{db: db}, nil
}

func (s *Source) Users(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	return users, nil
}

// Posts returns posts newest first with their comments.
func (s *Source) Posts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	err := s.db.WithContext(ctx).
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("created_at") }).
		Order("timestamp DESC").
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("query posts: %w", err)
	}
	return posts, nil
}

func (s *Source) Students(ctx context.Context) ([]models.Student, error) {
	var students []models.Student
	err := s.db.WithContext(ctx).
		Preload("Projects", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Order("id").
		Find(&students).Error
	if err != nil {
		return nil, fmt.Errorf("query students: %w", err)
	}
	return students, nil
}

func (s *Source) FeaturedProjects(ctx context.Context) ([]models.FeaturedProject, error) {
	var projects []models.FeaturedProject
	if err := s.db.WithContext(ctx).Order("id").Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("query featured projects: %w", err)
	}
	return projects, nil
}

// Notifications returns notifications newest first.
func (s *Source) Notifications(ctx context.Context) ([]models.Notification, error) {
	var notifications []models.Notification
	if err := s.db.WithContext(ctx).Order("timestamp DESC").Find(&notifications).Error; err != nil {
		return nil, fmt.Errorf("query notifications: %w", err)
	}
	return notifications, nil
}

// UserByUsername looks up one account including its password hash.
func (s *Source) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query user %q: %w", username, err)
	}
	return &user, nil
}
