package booking

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/firmdesk/scheduling-backend/internal/offering"
	"github.com/firmdesk/scheduling-backend/internal/planner"
	"github.com/firmdesk/scheduling-backend/internal/recurrence"
	"github.com/firmdesk/scheduling-backend/internal/staff"
)

// fakeRepo is an in-memory Repository for service tests.
type fakeRepo struct {
	bookings []*Booking
	nextID   int
}

func (r *fakeRepo) Create(_ context.Context, b *Booking) error {
	r.nextID++
	b.ID = fmt.Sprintf("booking-%d", r.nextID)
	b.CreatedAt = time.Now().UTC()
	b.UpdatedAt = b.CreatedAt
	r.bookings = append(r.bookings, b)
	return nil
}

func (r *fakeRepo) CreateBatch(ctx context.Context, bookings []*Booking) error {
	for _, b := range bookings {
		if err := r.Create(ctx, b); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*Booking, error) {
	for _, b := range r.bookings {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, ErrNotFound
}

func (r *fakeRepo) List(_ context.Context, filter Filter) ([]*Booking, int, error) {
	var out []*Booking
	for _, b := range r.bookings {
		if filter.ClientID != "" && b.ClientID != filter.ClientID {
			continue
		}
		if filter.SeriesID != "" && (b.SeriesID == nil || *b.SeriesID != filter.SeriesID) {
			continue
		}
		out = append(out, b)
	}
	return out, len(out), nil
}

func (r *fakeRepo) Update(_ context.Context, b *Booking) error {
	for i, existing := range r.bookings {
		if existing.ID == b.ID {
			r.bookings[i] = b
			return nil
		}
	}
	return ErrNotFound
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	for i, b := range r.bookings {
		if b.ID == id {
			r.bookings = append(r.bookings[:i], r.bookings[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *fakeRepo) FindOverlapping(_ context.Context, scope planner.Scope, start, end time.Time) ([]planner.Interval, error) {
	var out []planner.Interval
	for _, b := range r.bookings {
		if b.ServiceID != scope.ServiceID || b.Status == StatusCancelled {
			continue
		}
		if scope.StaffID != "" && (b.StaffID == nil || *b.StaffID != scope.StaffID) {
			continue
		}
		if planner.Overlaps(start, end, b.StartTime, b.EndTime) {
			out = append(out, planner.Interval{Start: b.StartTime, End: b.EndTime})
		}
	}
	return out, nil
}

func (r *fakeRepo) HasOverlap(_ context.Context, scope planner.Scope, start, end time.Time, excludeBookingID string) (bool, error) {
	for _, b := range r.bookings {
		if b.ID == excludeBookingID || b.ServiceID != scope.ServiceID || b.Status == StatusCancelled {
			continue
		}
		if scope.StaffID != "" && (b.StaffID == nil || *b.StaffID != scope.StaffID) {
			continue
		}
		if planner.Overlaps(start, end, b.StartTime, b.EndTime) {
			return true, nil
		}
	}
	return false, nil
}

// fakeOfferings serves GetByID from a fixed map; the service under test
// uses nothing else.
type fakeOfferings struct {
	items map[string]*offering.Offering
}

func (f *fakeOfferings) Create(context.Context, offering.CreateRequest) (*offering.Offering, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeOfferings) GetByID(_ context.Context, id string) (*offering.Offering, error) {
	if o, ok := f.items[id]; ok {
		return o, nil
	}
	return nil, offering.ErrNotFound
}

func (f *fakeOfferings) List(context.Context, offering.Filter) ([]*offering.Offering, int, error) {
	return nil, 0, errors.New("not implemented")
}

func (f *fakeOfferings) Update(context.Context, string, offering.UpdateRequest) (*offering.Offering, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeOfferings) Delete(context.Context, string) error {
	return errors.New("not implemented")
}

type fakeStaff struct {
	members map[string]*staff.Member
}

func (f *fakeStaff) Create(context.Context, staff.CreateRequest) (*staff.Member, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeStaff) GetByID(_ context.Context, id string) (*staff.Member, error) {
	if m, ok := f.members[id]; ok {
		return m, nil
	}
	return nil, staff.ErrNotFound
}

func (f *fakeStaff) List(context.Context, staff.Filter) ([]*staff.Member, int, error) {
	return nil, 0, errors.New("not implemented")
}

func (f *fakeStaff) Update(context.Context, string, staff.UpdateRequest) (*staff.Member, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeStaff) Delete(context.Context, string) error {
	return errors.New("not implemented")
}

func (f *fakeStaff) IsBookable(_ context.Context, id string) (bool, error) {
	m, ok := f.members[id]
	if !ok {
		return false, nil
	}
	return m.IsActive, nil
}

const (
	testServiceID = "5f8b7c9e-1a2b-4c3d-8e9f-0a1b2c3d4e5f"
	testStaffID   = "6a9c8d0f-2b3c-4d5e-9f0a-1b2c3d4e5f6a"
	testClientID  = "7b0d9e1a-3c4d-5e6f-a0b1-2c3d4e5f6a7b"
	otherClientID = "8c1e0f2b-4d5e-6f7a-b1c2-3d4e5f6a7b8c"
)

func newTestService() (Service, *fakeRepo) {
	repo := &fakeRepo{}
	offerings := &fakeOfferings{items: map[string]*offering.Offering{
		testServiceID: {ID: testServiceID, Name: "Quarterly tax review", DurationMin: 60, IsActive: true},
	}}
	staffDir := &fakeStaff{members: map[string]*staff.Member{
		testStaffID: {ID: testStaffID, DisplayName: "Dana", IsActive: true},
	}}

	detector := planner.NewDetector(repo, nil, staffDir)
	assembler := planner.NewAssembler(detector, zerolog.Nop())

	return NewService(repo, offerings, staffDir, assembler), repo
}

func futureTime(days int) time.Time {
	return time.Now().UTC().AddDate(0, 0, days).Truncate(time.Minute)
}

func TestCreateBooking(t *testing.T) {
	svc, repo := newTestService()
	start := futureTime(7)

	b, err := svc.Create(context.Background(), CreateRequest{
		ClientID:  testClientID,
		ServiceID: testServiceID,
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Notes:     "bring last year's returns",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, b.ID)
	assert.Equal(t, StatusPending, b.Status)
	assert.Len(t, repo.bookings, 1)
}

func TestCreateBookingValidation(t *testing.T) {
	svc, _ := newTestService()
	start := futureTime(7)

	tests := []struct {
		name    string
		req     CreateRequest
		wantErr error
	}{
		{
			name: "end before start",
			req: CreateRequest{
				ClientID: testClientID, ServiceID: testServiceID,
				StartTime: start, EndTime: start.Add(-time.Hour),
			},
			wantErr: ErrInvalidTimeRange,
		},
		{
			name: "start in the past",
			req: CreateRequest{
				ClientID: testClientID, ServiceID: testServiceID,
				StartTime: time.Now().UTC().Add(-time.Hour), EndTime: time.Now().UTC().Add(time.Hour),
			},
			wantErr: ErrStartTimePast,
		},
		{
			name: "unknown service",
			req: CreateRequest{
				ClientID: testClientID, ServiceID: "00000000-0000-0000-0000-000000000000",
				StartTime: start, EndTime: start.Add(time.Hour),
			},
			wantErr: ErrServiceNotFound,
		},
		{
			name: "unknown staff",
			req: CreateRequest{
				ClientID: testClientID, ServiceID: testServiceID,
				StaffID:   ptr("00000000-0000-0000-0000-000000000001"),
				StartTime: start, EndTime: start.Add(time.Hour),
			},
			wantErr: ErrStaffNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateBookingRejectsOverlap(t *testing.T) {
	svc, _ := newTestService()
	start := futureTime(7)

	_, err := svc.Create(context.Background(), CreateRequest{
		ClientID:  testClientID,
		ServiceID: testServiceID,
		StartTime: start,
		EndTime:   start.Add(time.Hour),
	})
	require.NoError(t, err)

	// Same slot again: the commit-time check must catch it even though
	// no preview was involved.
	_, err = svc.Create(context.Background(), CreateRequest{
		ClientID:  otherClientID,
		ServiceID: testServiceID,
		StartTime: start.Add(30 * time.Minute),
		EndTime:   start.Add(90 * time.Minute),
	})
	assert.ErrorIs(t, err, ErrTimeConflict)
}

func TestCreateBookingBackToBackAllowed(t *testing.T) {
	svc, _ := newTestService()
	start := futureTime(7)

	_, err := svc.Create(context.Background(), CreateRequest{
		ClientID:  testClientID,
		ServiceID: testServiceID,
		StartTime: start,
		EndTime:   start.Add(time.Hour),
	})
	require.NoError(t, err)

	// [10:00, 11:00) then [11:00, 12:00) must not collide.
	_, err = svc.Create(context.Background(), CreateRequest{
		ClientID:  otherClientID,
		ServiceID: testServiceID,
		StartTime: start.Add(time.Hour),
		EndTime:   start.Add(2 * time.Hour),
	})
	assert.NoError(t, err)
}

func TestUpdateBookingPermissions(t *testing.T) {
	svc, _ := newTestService()
	start := futureTime(7)

	b, err := svc.Create(context.Background(), CreateRequest{
		ClientID:  testClientID,
		ServiceID: testServiceID,
		StartTime: start,
		EndTime:   start.Add(time.Hour),
	})
	require.NoError(t, err)

	confirmed := string(StatusConfirmed)
	cancelled := string(StatusCancelled)

	// A stranger cannot touch the booking.
	_, err = svc.Update(context.Background(), b.ID, UpdateRequest{Status: &cancelled}, otherClientID, false)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	// The owner may cancel but not confirm.
	_, err = svc.Update(context.Background(), b.ID, UpdateRequest{Status: &confirmed}, testClientID, false)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	updated, err := svc.Update(context.Background(), b.ID, UpdateRequest{Status: &confirmed}, "staff-user", true)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, updated.Status)

	updated, err = svc.Update(context.Background(), b.ID, UpdateRequest{Status: &cancelled}, testClientID, false)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, updated.Status)
}

func TestUpdateBookingReschedule(t *testing.T) {
	svc, _ := newTestService()
	start := futureTime(7)

	b, err := svc.Create(context.Background(), CreateRequest{
		ClientID:  testClientID,
		ServiceID: testServiceID,
		StartTime: start,
		EndTime:   start.Add(time.Hour),
	})
	require.NoError(t, err)

	// The new slot overlaps the old one; a booking never conflicts with
	// itself.
	newStart := start.Add(30 * time.Minute)
	newEnd := newStart.Add(time.Hour)
	updated, err := svc.Update(context.Background(), b.ID, UpdateRequest{StartTime: &newStart, EndTime: &newEnd}, testClientID, false)
	require.NoError(t, err)
	assert.True(t, updated.StartTime.Equal(newStart))
	assert.True(t, updated.EndTime.Equal(newEnd))
}

func TestUpdateBookingMoveOntoOccupiedSlot(t *testing.T) {
	svc, _ := newTestService()
	start := futureTime(7)

	moved, err := svc.Create(context.Background(), CreateRequest{
		ClientID:  testClientID,
		ServiceID: testServiceID,
		StartTime: start,
		EndTime:   start.Add(time.Hour),
	})
	require.NoError(t, err)

	// A staff-pinned booking can share the hour with the unpinned one
	// because its overlap check only looks at the staff lane.
	staffID := testStaffID
	_, err = svc.Create(context.Background(), CreateRequest{
		ClientID:  otherClientID,
		ServiceID: testServiceID,
		StaffID:   &staffID,
		StartTime: start,
		EndTime:   start.Add(time.Hour),
	})
	require.NoError(t, err)

	// Moving the unpinned booking half an hour later lands on the pinned
	// one. Sharing the old interval must not shadow it from the check.
	newStart := start.Add(30 * time.Minute)
	newEnd := newStart.Add(time.Hour)
	_, err = svc.Update(context.Background(), moved.ID, UpdateRequest{StartTime: &newStart, EndTime: &newEnd}, testClientID, false)
	assert.ErrorIs(t, err, ErrTimeConflict)
}

func TestPlanRecurringDoesNotPersist(t *testing.T) {
	svc, repo := newTestService()
	count := 3

	result, err := svc.PlanRecurring(context.Background(), RecurringRequest{
		ClientID:        testClientID,
		ServiceID:       testServiceID,
		Anchor:          futureTime(7),
		DurationMinutes: 60,
		Pattern:         recurrence.Pattern{Frequency: recurrence.FreqDaily, Interval: 1, Count: &count},
	})
	require.NoError(t, err)

	assert.Len(t, result.Plan.Items, 3)
	assert.Equal(t, 3, result.Plan.Summary.Created)
	assert.Contains(t, result.RRule, "FREQ=DAILY")
	assert.Empty(t, repo.bookings, "preview must not write anything")
	assert.Empty(t, result.Bookings)
}

func TestCreateRecurringSkipsConflicts(t *testing.T) {
	svc, repo := newTestService()
	anchor := futureTime(7)
	count := 3

	// Occupy the second day's slot before the series is created.
	_, err := svc.Create(context.Background(), CreateRequest{
		ClientID:  otherClientID,
		ServiceID: testServiceID,
		StartTime: anchor.AddDate(0, 0, 1),
		EndTime:   anchor.AddDate(0, 0, 1).Add(time.Hour),
	})
	require.NoError(t, err)

	result, err := svc.CreateRecurring(context.Background(), RecurringRequest{
		ClientID:        testClientID,
		ServiceID:       testServiceID,
		Anchor:          anchor,
		DurationMinutes: 60,
		Pattern:         recurrence.Pattern{Frequency: recurrence.FreqDaily, Interval: 1, Count: &count},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Plan.Summary.Total)
	assert.Equal(t, 1, result.Plan.Summary.Conflicts)
	assert.Equal(t, 2, result.Plan.Summary.Created)

	require.Len(t, result.Bookings, 2)
	require.NotNil(t, result.Bookings[0].SeriesID)
	assert.Equal(t, *result.Bookings[0].SeriesID, *result.Bookings[1].SeriesID)

	// One pre-existing plus two committed occurrences.
	assert.Len(t, repo.bookings, 3)
}

func TestCreateRecurringInvalidPattern(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.CreateRecurring(context.Background(), RecurringRequest{
		ClientID:        testClientID,
		ServiceID:       testServiceID,
		Anchor:          futureTime(7),
		DurationMinutes: 60,
		Pattern:         recurrence.Pattern{Frequency: "yearly", Interval: 1},
	})
	assert.ErrorIs(t, err, recurrence.ErrInvalidPattern)
}

func ptr(s string) *string {
	return &s
}
