// Package validate holds the caller-facing input checks applied before a
// request reaches a store.
package validate

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	MinPasswordLength = 6
	MaxGPA            = 4.0
	MaxFundingAmount  = 100000
)

var (
	ErrRequired        = errors.New("value is required")
	ErrInvalidEmail    = errors.New("invalid email address")
	ErrPasswordTooWeak = fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	ErrInvalidGPA      = fmt.Errorf("gpa must be between 0 and %.1f", MaxGPA)
	ErrInvalidAmount   = fmt.Errorf("amount must be greater than 0 and at most %d", MaxFundingAmount)
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func Email(email string) error {
	if !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}

func Password(password string) error {
	if len(password) < MinPasswordLength {
		return ErrPasswordTooWeak
	}
	return nil
}

func Required(value string) error {
	if strings.TrimSpace(value) == "" {
		return ErrRequired
	}
	return nil
}

// GPA checks a grade point average on a 4.0 scale.
func GPA(gpa float64) error {
	if math.IsNaN(gpa) || gpa < 0 || gpa > MaxGPA {
		return ErrInvalidGPA
	}
	return nil
}

// FundingAmount checks that amount is a finite number in (0, MaxFundingAmount].
func FundingAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 || amount > MaxFundingAmount {
		return ErrInvalidAmount
	}
	return nil
}

// ParseFundingAmount parses user text and applies FundingAmount.
func ParseFundingAmount(raw string) (float64, error) {
	amount, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if err := FundingAmount(amount); err != nil {
		return 0, err
	}
	return amount, nil
}
