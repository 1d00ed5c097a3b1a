package offering

import (
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("service not found")
	ErrEmptyName       = errors.New("name cannot be empty")
	ErrInvalidDuration = errors.New("duration must be a positive number of minutes")
	ErrInvalidBuffer   = errors.New("buffer minutes cannot be negative")
	ErrInvalidStaff    = errors.New("invalid default_staff_id")
)

// Offering is one bookable service of the firm (e.g. "Quarterly tax
// review"). DefaultStaffID, when set, is the staff member portal clients
// are scoped to.
type Offering struct {
	ID             string
	Name           string
	Description    string
	DurationMin    int
	BufferMin      int
	DefaultStaffID *string
	IsActive       bool
	CreatedAt      time.Time
}

// Filter defines parameters for listing offerings.
type Filter struct {
	IsActive *bool
	Page     int
	PageSize int
}
