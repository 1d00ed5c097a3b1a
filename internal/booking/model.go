package booking

import (
	"net/http"
	"time"

	"github.com/firmdesk/scheduling-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "booking not found")
	ErrTimeConflict     = apperror.New(http.StatusConflict, "time slot already booked")
	ErrInvalidTimeRange = apperror.New(http.StatusBadRequest, "start time must be before end time")
	ErrInvalidStatus    = apperror.New(http.StatusBadRequest, "invalid booking status")
	ErrServiceNotFound  = apperror.New(http.StatusNotFound, "service not found")
	ErrStaffNotFound    = apperror.New(http.StatusNotFound, "staff member not found")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "permission denied")
	ErrStartTimePast    = apperror.New(http.StatusBadRequest, "cannot create booking in the past")
	ErrInvalidInput     = apperror.New(http.StatusBadRequest, "invalid input parameters")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// Booking is one committed appointment between a client and the firm.
// StaffID is nil when the appointment is not pinned to a team member.
type Booking struct {
	ID          string
	ServiceID   string
	ServiceName string
	StaffID     *string
	StaffName   *string
	ClientID    string
	ClientName  string
	SeriesID    *string // groups bookings created from one recurring plan
	StartTime   time.Time
	EndTime     time.Time
	Status      Status
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Filter struct {
	ClientID  string
	ServiceID string
	StaffID   string
	SeriesID  string
	Status    string
	// ExcludeCancelled drops cancelled bookings in the query rather than
	// leaving them to eat into the page size.
	ExcludeCancelled bool
	StartTime        *time.Time // Filter bookings ending after this time
	EndTime          *time.Time // Filter bookings starting before this time
	Page             int
	PageSize         int
	SortBy           string
	SortOrder        string
}
