package domain

import (
	"regexp"
	"strings"
	"time"
	"unicode"
)

// User models an authenticated actor. Role holds either a system role name or
// a custom role name.
type User struct {
	ID           string     `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email,omitempty"`
	PasswordHash string     `json:"-"`
	Role         string     `json:"role"`
	IsActive     bool       `json:"isActive"`
	CreatedAt    time.Time  `json:"createdAt"`
	LastLogin    *time.Time `json:"lastLogin,omitempty"`
}

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// ValidateUsername enforces 3..30 characters of letters, digits and underscore.
func ValidateUsername(username string) error {
	switch {
	case len(username) < 3:
		return NewValidationError("username must be at least 3 characters")
	case len(username) > 30:
		return NewValidationError("username must be at most 30 characters")
	case !usernamePattern.MatchString(username):
		return NewValidationError("username can only contain letters, numbers, and underscores")
	}
	return nil
}

// ValidatePassword enforces the password policy.
func ValidatePassword(password string) error {
	verr := NewValidationError()
	if len(password) < 8 {
		verr.Add("password must be at least 8 characters")
	}
	if len(password) > 100 {
		verr.Add("password must be at most 100 characters")
	}

	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case !unicode.IsLetter(r) && !unicode.IsSpace(r):
			special = true
		}
	}
	if !upper {
		verr.Add("password must contain at least one uppercase letter")
	}
	if !lower {
		verr.Add("password must contain at least one lowercase letter")
	}
	if !digit {
		verr.Add("password must contain at least one number")
	}
	if !special {
		verr.Add("password must contain at least one special character")
	}
	return verr.OrNil()
}

// NormalizeUsername trims surrounding whitespace.
func NormalizeUsername(username string) string {
	return strings.TrimSpace(username)
}
