package user

import (
	"errors"
	"time"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailAlreadyUsed   = errors.New("email already used")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInactiveUser       = errors.New("user is inactive")
	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordTooShort   = errors.New("password is too short")
)

// User is a portal account. Firm employees carry IsStaff; IsAdmin grants
// access to the admin surface on top of that.
type User struct {
	ID           string // UUID
	Email        string
	PasswordHash string
	DisplayName  *string
	CreatedAt    time.Time
	LastLoginAt  *time.Time
	IsActive     bool
	IsStaff      bool
	IsAdmin      bool
}

// Filter defines filter options for listing users.
type Filter struct {
	Email    string
	IsActive *bool // Pointer distinguishes false from not set
	IsStaff  *bool

	Page     int
	PageSize int
}
