package domain

import (
	"errors"
	"strings"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("access forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountLocked      = errors.New("account temporarily locked")
	ErrAccountInactive    = errors.New("account is deactivated")
	ErrRateLimited        = errors.New("too many requests")

	ErrReportNotFound = errors.New("report not found")
	ErrUserNotFound   = errors.New("user not found")
	ErrRoleNotFound   = errors.New("role not found")
	ErrGoalNotFound   = errors.New("goal not found")

	ErrUserExists   = errors.New("user already exists")
	ErrRoleExists   = errors.New("role already exists")
	ErrReservedRole = errors.New("role name is reserved")
	ErrRoleInUse    = errors.New("role is assigned to users")
	ErrSelfDelete   = errors.New("cannot delete your own account")
	ErrSelfDemotion = errors.New("cannot change your own role")

	ErrNoSolution = errors.New("no solution found")
)

// ValidationError carries one message per offending field.
type ValidationError struct {
	Fields []string
}

func NewValidationError(msgs ...string) *ValidationError {
	return &ValidationError{Fields: msgs}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	return strings.Join(e.Fields, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Add appends a message and returns the receiver for chaining.
func (e *ValidationError) Add(msg string) *ValidationError {
	e.Fields = append(e.Fields, msg)
	return e
}

// OrNil returns nil when no field failed.
func (e *ValidationError) OrNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}
