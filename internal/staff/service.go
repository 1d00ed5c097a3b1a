package staff

import (
	"context"
	"errors"
	"strings"
)

type CreateRequest struct {
	DisplayName string
	Email       string
	Title       string
}

type UpdateRequest struct {
	DisplayName *string
	Email       *string
	Title       *string
	IsActive    *bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Member, error)
	GetByID(ctx context.Context, id string) (*Member, error)
	List(ctx context.Context, filter Filter) ([]*Member, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Member, error)
	Delete(ctx context.Context, id string) error

	// IsBookable implements the planner's staff directory: an unknown or
	// deactivated member cannot take bookings.
	IsBookable(ctx context.Context, staffID string) (bool, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Member, error) {
	if strings.TrimSpace(req.DisplayName) == "" {
		return nil, ErrEmptyName
	}

	m := &Member{
		DisplayName: strings.TrimSpace(req.DisplayName),
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		Title:       req.Title,
		IsActive:    true,
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Member, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Member, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Member, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		if strings.TrimSpace(*req.DisplayName) == "" {
			return nil, ErrEmptyName
		}
		m.DisplayName = strings.TrimSpace(*req.DisplayName)
	}
	if req.Email != nil {
		m.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Title != nil {
		m.Title = *req.Title
	}
	if req.IsActive != nil {
		m.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) IsBookable(ctx context.Context, staffID string) (bool, error) {
	m, err := s.repo.GetByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return m.IsActive, nil
}
