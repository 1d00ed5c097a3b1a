package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/firmdesk/scheduling-backend/internal/offering"
	"github.com/firmdesk/scheduling-backend/internal/planner"
	"github.com/firmdesk/scheduling-backend/internal/recurrence"
	"github.com/firmdesk/scheduling-backend/internal/staff"
)

type CreateRequest struct {
	ClientID  string
	ServiceID string
	StaffID   *string
	StartTime time.Time
	EndTime   time.Time
	Notes     string
}

type UpdateRequest struct {
	StartTime *time.Time
	EndTime   *time.Time
	Status    *string
	Notes     *string
}

// RecurringRequest drives both the preview and the confirmed creation of
// a recurring series.
type RecurringRequest struct {
	ClientID        string
	ServiceID       string
	StaffID         *string
	Anchor          time.Time
	DurationMinutes int
	Pattern         recurrence.Pattern
	Notes           string
}

// RecurringResult pairs the computed plan with the RRULE rendering of the
// pattern and, after a confirmed creation, the committed bookings.
type RecurringResult struct {
	Plan     *planner.Plan
	RRule    string
	Bookings []*Booking
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	Update(ctx context.Context, id string, req UpdateRequest, updaterID string, isStaffUser bool) (*Booking, error)
	Delete(ctx context.Context, id string, deleterID string, isStaffUser bool) error

	// PlanRecurring computes the advisory plan for a recurring pattern.
	// Nothing is persisted; the plan is recomputed at confirmation time.
	PlanRecurring(ctx context.Context, req RecurringRequest) (*RecurringResult, error)
	// CreateRecurring re-plans the pattern and commits the non-conflicting
	// occurrences as one series.
	CreateRecurring(ctx context.Context, req RecurringRequest) (*RecurringResult, error)
}

type service struct {
	repo         Repository
	offerings    offering.Service
	staffService staff.Service
	assembler    *planner.Assembler
}

func NewService(repo Repository, offerings offering.Service, staffService staff.Service, assembler *planner.Assembler) Service {
	return &service{
		repo:         repo,
		offerings:    offerings,
		staffService: staffService,
		assembler:    assembler,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	// 1. Validate time range
	if !req.EndTime.After(req.StartTime) {
		return nil, ErrInvalidTimeRange
	}
	// Strict check: StartTime cannot be in the past
	if req.StartTime.Before(time.Now().UTC()) {
		return nil, ErrStartTimePast
	}

	// 2. Validate service and staff exist
	if _, err := s.offerings.GetByID(ctx, req.ServiceID); err != nil {
		switch {
		case errors.Is(err, offering.ErrNotFound):
			return nil, ErrServiceNotFound
		default:
			return nil, err
		}
	}
	if req.StaffID != nil {
		if _, err := s.staffService.GetByID(ctx, *req.StaffID); err != nil {
			switch {
			case errors.Is(err, staff.ErrNotFound):
				return nil, ErrStaffNotFound
			default:
				return nil, err
			}
		}
	}

	// 3. Commit-time conflict check. A plan previewed as conflict-free can
	// go stale before the user confirms; this is the re-validation step.
	scope := planner.Scope{ServiceID: req.ServiceID}
	if req.StaffID != nil {
		scope.StaffID = *req.StaffID
	}
	conflict, err := s.repo.HasOverlap(ctx, scope, req.StartTime, req.EndTime, "")
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, ErrTimeConflict
	}

	// 4. Create booking
	b := &Booking{
		ServiceID: req.ServiceID,
		StaffID:   req.StaffID,
		ClientID:  req.ClientID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Status:    StatusPending, // Default status
		Notes:     req.Notes,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest, updaterID string, isStaffUser bool) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	isBookingOwner := b.ClientID == updaterID
	if !isStaffUser && !isBookingOwner {
		return nil, ErrPermissionDenied
	}

	// Prepare new values
	newStart := b.StartTime
	newEnd := b.EndTime
	timeChanged := false

	if req.StartTime != nil {
		newStart = *req.StartTime
		timeChanged = true
	}
	if req.EndTime != nil {
		newEnd = *req.EndTime
		timeChanged = true
	}

	if timeChanged {
		if !newEnd.After(newStart) {
			return nil, ErrInvalidTimeRange
		}
		if req.StartTime != nil && req.StartTime.Before(time.Now().UTC()) {
			return nil, ErrStartTimePast
		}

		// Exclude the booking being moved by ID; another booking may
		// legitimately hold the same interval in a different lane.
		scope := planner.Scope{ServiceID: b.ServiceID}
		if b.StaffID != nil {
			scope.StaffID = *b.StaffID
		}
		conflict, err := s.repo.HasOverlap(ctx, scope, newStart, newEnd, b.ID)
		if err != nil {
			return nil, err
		}
		if conflict {
			return nil, ErrTimeConflict
		}
		b.StartTime = newStart
		b.EndTime = newEnd
	}

	if req.Status != nil {
		st := Status(*req.Status)
		if st != StatusPending && st != StatusConfirmed && st != StatusCancelled {
			return nil, ErrInvalidStatus
		}

		// Clients may only cancel their own bookings; staff can set any
		// status.
		if isBookingOwner && !isStaffUser && st != StatusCancelled {
			return nil, ErrPermissionDenied
		}
		b.Status = st
	}

	if req.Notes != nil {
		b.Notes = *req.Notes
	}

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *service) Delete(ctx context.Context, id string, deleterID string, isStaffUser bool) error {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !isStaffUser && b.ClientID != deleterID {
		return ErrPermissionDenied
	}

	return s.repo.Delete(ctx, id)
}

// validateRecurring checks the parts of a recurring request that need
// collaborator lookups. Pattern validation itself happens inside the
// assembler before any I/O.
func (s *service) validateRecurring(ctx context.Context, req RecurringRequest) error {
	if req.DurationMinutes < 1 {
		return ErrInvalidInput
	}
	if _, err := s.offerings.GetByID(ctx, req.ServiceID); err != nil {
		switch {
		case errors.Is(err, offering.ErrNotFound):
			return ErrServiceNotFound
		default:
			return err
		}
	}
	if req.StaffID != nil {
		if _, err := s.staffService.GetByID(ctx, *req.StaffID); err != nil {
			switch {
			case errors.Is(err, staff.ErrNotFound):
				return ErrStaffNotFound
			default:
				return err
			}
		}
	}
	return nil
}

func (s *service) PlanRecurring(ctx context.Context, req RecurringRequest) (*RecurringResult, error) {
	if err := s.validateRecurring(ctx, req); err != nil {
		return nil, err
	}

	planReq := planner.Request{
		ServiceID: req.ServiceID,
		Anchor:    req.Anchor,
		Duration:  time.Duration(req.DurationMinutes) * time.Minute,
		Pattern:   req.Pattern,
	}
	if req.StaffID != nil {
		planReq.StaffID = *req.StaffID
	}

	plan, err := s.assembler.Plan(ctx, planReq)
	if err != nil {
		return nil, err
	}

	rule, err := req.Pattern.RRule(req.Anchor)
	if err != nil {
		return nil, err
	}

	return &RecurringResult{Plan: plan, RRule: rule}, nil
}

func (s *service) CreateRecurring(ctx context.Context, req RecurringRequest) (*RecurringResult, error) {
	result, err := s.PlanRecurring(ctx, req)
	if err != nil {
		return nil, err
	}

	seriesID := uuid.NewString()
	var bookings []*Booking
	for _, item := range result.Plan.Items {
		if item.Conflict {
			continue
		}
		bookings = append(bookings, &Booking{
			ServiceID: req.ServiceID,
			StaffID:   req.StaffID,
			ClientID:  req.ClientID,
			SeriesID:  &seriesID,
			StartTime: item.Start,
			EndTime:   item.End,
			Status:    StatusPending,
			Notes:     req.Notes,
		})
	}

	if err := s.repo.CreateBatch(ctx, bookings); err != nil {
		return nil, err
	}

	result.Bookings = bookings
	return result, nil
}
