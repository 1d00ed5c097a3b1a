package hours

import (
	"context"
	"time"

	"github.com/firmdesk/scheduling-backend/internal/planner"
)

type UpsertRequest struct {
	ServiceID string
	Weekday   int
	OpenMin   int
	CloseMin  int
}

type Service interface {
	ListByService(ctx context.Context, serviceID string) ([]*Window, error)
	Upsert(ctx context.Context, req UpsertRequest) (*Window, error)
	Delete(ctx context.Context, serviceID string, weekday int) error

	// BusinessHours implements the planner's hours provider.
	BusinessHours(ctx context.Context, serviceID string) ([]planner.HoursWindow, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ListByService(ctx context.Context, serviceID string) ([]*Window, error) {
	return s.repo.ListByService(ctx, serviceID)
}

func (s *service) Upsert(ctx context.Context, req UpsertRequest) (*Window, error) {
	w := &Window{
		ServiceID: req.ServiceID,
		Weekday:   time.Weekday(req.Weekday),
		OpenMin:   req.OpenMin,
		CloseMin:  req.CloseMin,
	}
	if err := w.validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Upsert(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *service) Delete(ctx context.Context, serviceID string, weekday int) error {
	if weekday < 0 || weekday > 6 {
		return ErrInvalidDay
	}
	return s.repo.Delete(ctx, serviceID, weekday)
}

func (s *service) BusinessHours(ctx context.Context, serviceID string) ([]planner.HoursWindow, error) {
	windows, err := s.repo.ListByService(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	out := make([]planner.HoursWindow, len(windows))
	for i, w := range windows {
		out[i] = planner.HoursWindow{
			Weekday: w.Weekday,
			Open:    w.OpenMin,
			Close:   w.CloseMin,
		}
	}
	return out, nil
}
