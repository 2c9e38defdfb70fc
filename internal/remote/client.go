// Package remote is the placeholder backend API client. Every call logs its
// arguments and returns a canned success response.
package remote

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	applog "dsfs/internal/log"
	"dsfs/models"
)

// DefaultBaseURL is the placeholder endpoint the client reports in its logs.
const DefaultBaseURL = "https://api.dsfs.com"

type Credentials struct {
	Username string
	Password string
}

type LoginResponse struct {
	Success bool
	Token   string
}

type SignupRequest struct {
	Username string
	Name     string
	Email    string
	Password string
}

type SignupResponse struct {
	Success bool
	User    models.User
}

type Transaction struct {
	ID        string
	ProjectID string
	Amount    float64
	CreatedAt time.Time
}

// Client stands in for the real backend.
type Client struct {
	baseURL string
	now     func() time.Time
}

// New returns a Client reporting baseURL. An empty baseURL uses DefaultBaseURL.
func New(baseURL string) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{baseURL: baseURL, now: time.Now}
}

// Login never checks the password; it issues a fresh token for any username.
func (c *Client) Login(ctx context.Context, creds Credentials) (LoginResponse, error) {
	applog.Info(ctx, "mock login", "baseURL", c.baseURL, "username", creds.Username)
	return LoginResponse{Success: true, Token: uuid.NewString()}, nil
}

// Signup hashes the password locally so the plaintext never leaves the client.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (SignupResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return SignupResponse{}, fmt.Errorf("hash password: %w", err)
	}
	applog.Info(ctx, "mock signup", "baseURL", c.baseURL, "username", req.Username, "email", req.Email)
	return SignupResponse{
		Success: true,
		User: models.User{
			ID:           uuid.NewString(),
			Username:     req.Username,
			Name:         req.Name,
			PasswordHash: string(hash),
		},
	}, nil
}

func (c *Client) FetchPosts(ctx context.Context) ([]models.Post, error) {
	applog.Info(ctx, "mock fetch posts", "baseURL", c.baseURL)
	return []models.Post{}, nil
}

func (c *Client) LikePost(ctx context.Context, postID string) error {
	applog.Info(ctx, "mock like post", "baseURL", c.baseURL, "postID", postID)
	return nil
}

func (c *Client) FetchStudents(ctx context.Context) ([]models.Student, error) {
	applog.Info(ctx, "mock fetch students", "baseURL", c.baseURL)
	return []models.Student{}, nil
}

func (c *Client) RegisterStudent(ctx context.Context, reg models.StudentRegistration) error {
	applog.Info(ctx, "mock student registration",
		"baseURL", c.baseURL,
		"name", reg.Name,
		"university", reg.University,
		"course", reg.Course,
	)
	return nil
}

func (c *Client) FundProject(ctx context.Context, projectID string, amount float64) (Transaction, error) {
	applog.Info(ctx, "mock fund project", "baseURL", c.baseURL, "projectID", projectID, "amount", amount)
	return Transaction{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		Amount:    amount,
		CreatedAt: c.now().UTC(),
	}, nil
}

func (c *Client) FetchNotifications(ctx context.Context) ([]models.Notification, error) {
	applog.Info(ctx, "mock fetch notifications", "baseURL", c.baseURL)
	return []models.Notification{}, nil
}
