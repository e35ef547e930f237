package domain

import (
	"regexp"
	"strings"
	"time"
)

// Principal is the caller identity handed to every user-scoped operation.
type Principal struct {
	UserID string
	Name   string
	Email  string
}

type User struct {
	ID                     string    `json:"id" bson:"_id,omitempty"`
	Email                  string    `json:"email" bson:"email"`
	Name                   string    `json:"name" bson:"name"`
	PasswordHash           string    `json:"-" bson:"passwordHash"`
	HasCompletedOnboarding bool      `json:"hasCompletedOnboarding" bson:"hasCompletedOnboarding"`
	CreatedAt              time.Time `json:"createdAt" bson:"createdAt"`
}

func (u User) Principal() Principal {
	return Principal{UserID: u.ID, Name: u.Name, Email: u.Email}
}

const MinPasswordLen = 6

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func ValidateEmail(email string) error {
	if !emailRe.MatchString(email) {
		return invalid(ErrInvalidInput, "invalid email address")
	}
	return nil
}

func ValidatePassword(pw string) error {
	if len(pw) < MinPasswordLen {
		return invalid(ErrInvalidInput, "password should be at least 6 characters")
	}
	return nil
}

func ValidateName(name string) error {
	if len([]rune(strings.TrimSpace(name))) < 2 {
		return invalid(ErrInvalidInput, "name must be at least 2 characters")
	}
	return nil
}
