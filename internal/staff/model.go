package staff

import (
	"errors"
	"time"
)

var (
	ErrNotFound         = errors.New("staff member not found")
	ErrEmptyName        = errors.New("display name cannot be empty")
	ErrEmailAlreadyUsed = errors.New("email already used by another staff member")
)

// Member is a bookable team member of the firm.
type Member struct {
	ID          string
	DisplayName string
	Email       string
	Title       string
	IsActive    bool
	CreatedAt   time.Time
}

// Filter defines parameters for listing staff members.
type Filter struct {
	IsActive *bool
	Page     int
	PageSize int
}
