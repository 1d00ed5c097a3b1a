package offering

import (
	"context"
	"strings"

	"github.com/firmdesk/scheduling-backend/internal/staff"
)

type CreateRequest struct {
	Name           string
	Description    string
	DurationMin    int
	BufferMin      int
	DefaultStaffID *string
}

type UpdateRequest struct {
	Name           *string
	Description    *string
	DurationMin    *int
	BufferMin      *int
	DefaultStaffID *string
	IsActive       *bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Offering, error)
	GetByID(ctx context.Context, id string) (*Offering, error)
	List(ctx context.Context, filter Filter) ([]*Offering, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Offering, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo         Repository
	staffService staff.Service
}

func NewService(repo Repository, staffService staff.Service) Service {
	return &service{
		repo:         repo,
		staffService: staffService,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Offering, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}
	if req.DurationMin < 1 {
		return nil, ErrInvalidDuration
	}
	if req.BufferMin < 0 {
		return nil, ErrInvalidBuffer
	}

	// Validation: default staff member must exist when supplied
	if req.DefaultStaffID != nil {
		if _, err := s.staffService.GetByID(ctx, *req.DefaultStaffID); err != nil {
			return nil, ErrInvalidStaff
		}
	}

	o := &Offering{
		Name:           req.Name,
		Description:    req.Description,
		DurationMin:    req.DurationMin,
		BufferMin:      req.BufferMin,
		DefaultStaffID: req.DefaultStaffID,
		IsActive:       true,
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Offering, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Offering, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Offering, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		o.Name = *req.Name
	}
	if req.Description != nil {
		o.Description = *req.Description
	}
	if req.DurationMin != nil {
		if *req.DurationMin < 1 {
			return nil, ErrInvalidDuration
		}
		o.DurationMin = *req.DurationMin
	}
	if req.BufferMin != nil {
		if *req.BufferMin < 0 {
			return nil, ErrInvalidBuffer
		}
		o.BufferMin = *req.BufferMin
	}
	if req.DefaultStaffID != nil {
		if _, err := s.staffService.GetByID(ctx, *req.DefaultStaffID); err != nil {
			return nil, ErrInvalidStaff
		}
		o.DefaultStaffID = req.DefaultStaffID
	}
	if req.IsActive != nil {
		o.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
