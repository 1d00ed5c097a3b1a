package planner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/firmdesk/scheduling-backend/internal/recurrence"
)

func intPtr(v int) *int { return &v }

// fakeLookup decides overlap per candidate via the rule func and records
// the order of scopes/intervals it was asked about.
type fakeLookup struct {
	rule  func(start, end time.Time) bool
	err   error
	errAt int // 0-based call index that fails; -1 for never
	calls int
	seen  []time.Time
}

func (f *fakeLookup) FindOverlapping(_ context.Context, _ Scope, start, end time.Time) ([]Interval, error) {
	idx := f.calls
	f.calls++
	f.seen = append(f.seen, start)

	if f.err != nil && idx == f.errAt {
		return nil, f.err
	}
	if f.rule != nil && f.rule(start, end) {
		// Return an interval that intersects the candidate.
		return []Interval{{Start: start, End: end}}, nil
	}
	return nil, nil
}

type fakeHours struct {
	windows []HoursWindow
}

func (f *fakeHours) BusinessHours(_ context.Context, _ string) ([]HoursWindow, error) {
	return f.windows, nil
}

type fakeStaff struct {
	bookable bool
}

func (f *fakeStaff) IsBookable(_ context.Context, _ string) (bool, error) {
	return f.bookable, nil
}

func newAssembler(lookup OverlapLookup, hours HoursProvider, staff StaffDirectory) *Assembler {
	return NewAssembler(NewDetector(lookup, hours, staff), zerolog.Nop())
}

func dailyRequest(count int) Request {
	return Request{
		ServiceID: "3f1c8a52-5f5e-4a9e-9a94-111111111111",
		Anchor:    time.Date(2025, 1, 1, 9, 1, 0, 0, time.UTC),
		Duration:  60 * time.Minute,
		Pattern: recurrence.Pattern{
			Frequency: recurrence.FreqDaily,
			Interval:  1,
			Count:     intPtr(count),
		},
	}
}

func TestPlanNoConflictsAgainstEmptyStore(t *testing.T) {
	lookup := &fakeLookup{errAt: -1}
	a := newAssembler(lookup, nil, nil)

	plan, err := a.Plan(context.Background(), dailyRequest(3))
	require.NoError(t, err)

	require.Len(t, plan.Items, 3)
	for _, it := range plan.Items {
		assert.False(t, it.Conflict)
		assert.Empty(t, it.Reason)
		assert.Equal(t, it.Start.Add(60*time.Minute), it.End)
	}
	assert.Equal(t, Summary{Total: 3, Created: 3, Conflicts: 0}, plan.Summary)
}

func TestPlanZipsDetectorResultsInOrder(t *testing.T) {
	// External rule: a candidate conflicts iff its day-of-month is even.
	// Verifies the assembler neither reorders nor miscounts when zipping
	// generator output with detector output.
	lookup := &fakeLookup{
		errAt: -1,
		rule: func(start, _ time.Time) bool {
			return start.Day()%2 == 0
		},
	}
	a := newAssembler(lookup, nil, nil)

	plan, err := a.Plan(context.Background(), dailyRequest(3))
	require.NoError(t, err)
	require.Len(t, plan.Items, 3)

	for i, it := range plan.Items {
		wantConflict := it.Start.Day()%2 == 0
		assert.Equal(t, wantConflict, it.Conflict, "item %d", i)
		if wantConflict {
			assert.Equal(t, ReasonOverlap, it.Reason, "item %d", i)
		}
	}

	// Chronological order preserved, matching lookup invocation order.
	for i := 1; i < len(plan.Items); i++ {
		assert.True(t, plan.Items[i].Start.After(plan.Items[i-1].Start))
	}
	assert.Equal(t, []time.Time{
		plan.Items[0].Start, plan.Items[1].Start, plan.Items[2].Start,
	}, lookup.seen)

	assert.Equal(t, plan.Summary.Total, len(plan.Items))
	assert.Equal(t, plan.Summary.Total, plan.Summary.Created+plan.Summary.Conflicts)
}

func TestPlanSummaryConsistency(t *testing.T) {
	lookup := &fakeLookup{
		errAt: -1,
		rule: func(start, _ time.Time) bool {
			return start.Day() == 2 || start.Day() == 4
		},
	}
	a := newAssembler(lookup, nil, nil)

	plan, err := a.Plan(context.Background(), dailyRequest(5))
	require.NoError(t, err)

	assert.Equal(t, 5, plan.Summary.Total)
	assert.Equal(t, len(plan.Items), plan.Summary.Total)
	assert.Equal(t, 2, plan.Summary.Conflicts)
	assert.Equal(t, 3, plan.Summary.Created)
}

func TestPlanFirstLookupFailureAborts(t *testing.T) {
	lookup := &fakeLookup{err: errors.New("connection refused"), errAt: 0}
	a := newAssembler(lookup, nil, nil)

	_, err := a.Plan(context.Background(), dailyRequest(3))
	assert.ErrorIs(t, err, ErrCheckFailed)
}

func TestPlanLaterLookupFailureMarksAndContinues(t *testing.T) {
	lookup := &fakeLookup{err: errors.New("timeout"), errAt: 1}
	a := newAssembler(lookup, nil, nil)

	plan, err := a.Plan(context.Background(), dailyRequest(3))
	require.NoError(t, err)

	// Full-length plan even under partial failure.
	require.Len(t, plan.Items, 3)
	assert.False(t, plan.Items[0].Conflict)
	assert.True(t, plan.Items[1].Conflict)
	assert.Equal(t, ReasonCheckFailed, plan.Items[1].Reason)
	assert.False(t, plan.Items[2].Conflict)
	assert.Equal(t, Summary{Total: 3, Created: 2, Conflicts: 1}, plan.Summary)
}

func TestPlanIntraPlanOverlap(t *testing.T) {
	// Duration longer than the daily step: every occurrence after the
	// first overlaps its predecessor within the same plan.
	lookup := &fakeLookup{errAt: -1}
	a := newAssembler(lookup, nil, nil)

	req := dailyRequest(3)
	req.Duration = 36 * time.Hour

	plan, err := a.Plan(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, plan.Items, 3)

	assert.False(t, plan.Items[0].Conflict)
	assert.True(t, plan.Items[1].Conflict)
	assert.Equal(t, ReasonPlanOverlap, plan.Items[1].Reason)
	// Item 2 does not overlap item 0 (accepted set), so it is clean.
	assert.False(t, plan.Items[2].Conflict)

	// Conflicting occurrences are never consulted against storage.
	assert.Equal(t, 2, lookup.calls)
}

func TestPlanOutsideBusinessHours(t *testing.T) {
	lookup := &fakeLookup{errAt: -1}
	hours := &fakeHours{windows: []HoursWindow{
		{Weekday: time.Wednesday, Open: 9 * 60, Close: 17 * 60},
		{Weekday: time.Thursday, Open: 13 * 60, Close: 17 * 60},
	}}
	a := newAssembler(lookup, hours, nil)

	// Wed Jan 1 2025 09:01 + 60m fits; Thu Jan 2 09:01 is before the
	// Thursday window; Fri Jan 3 has no window at all.
	plan, err := a.Plan(context.Background(), dailyRequest(3))
	require.NoError(t, err)
	require.Len(t, plan.Items, 3)

	assert.False(t, plan.Items[0].Conflict)
	assert.True(t, plan.Items[1].Conflict)
	assert.Equal(t, ReasonOutsideBusinessHours, plan.Items[1].Reason)
	assert.True(t, plan.Items[2].Conflict)
	assert.Equal(t, ReasonOutsideBusinessHours, plan.Items[2].Reason)
}

func TestPlanNoConfiguredHoursIsUnrestricted(t *testing.T) {
	lookup := &fakeLookup{errAt: -1}
	a := newAssembler(lookup, &fakeHours{}, nil)

	plan, err := a.Plan(context.Background(), dailyRequest(2))
	require.NoError(t, err)
	assert.Equal(t, 0, plan.Summary.Conflicts)
}

func TestPlanUnavailableStaff(t *testing.T) {
	lookup := &fakeLookup{errAt: -1}
	a := newAssembler(lookup, nil, &fakeStaff{bookable: false})

	req := dailyRequest(2)
	req.StaffID = "93b1e0a7-14a8-4a1b-ae01-222222222222"

	plan, err := a.Plan(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, plan.Items, 2)
	for _, it := range plan.Items {
		assert.True(t, it.Conflict)
		assert.Equal(t, ReasonResourceUnavailable, it.Reason)
	}
	assert.Equal(t, 0, lookup.calls, "unavailable staff short-circuits the overlap lookup")
}

func TestPlanInvalidDuration(t *testing.T) {
	a := newAssembler(&fakeLookup{errAt: -1}, nil, nil)

	req := dailyRequest(2)
	req.Duration = 0

	_, err := a.Plan(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestPlanInvalidPatternPropagates(t *testing.T) {
	a := newAssembler(&fakeLookup{errAt: -1}, nil, nil)

	req := dailyRequest(2)
	req.Pattern.Interval = 0

	_, err := a.Plan(context.Background(), req)
	assert.ErrorIs(t, err, recurrence.ErrInvalidPattern)
}

func TestPlanTruncatedSurfacesInSummary(t *testing.T) {
	lookup := &fakeLookup{errAt: -1}
	a := newAssembler(lookup, nil, nil)

	req := dailyRequest(1)
	req.Pattern.Count = nil // unbounded, hits the safety cap

	plan, err := a.Plan(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, plan.Summary.Truncated)
	assert.Equal(t, plan.Summary.Total, len(plan.Items))
}

func TestPlanRespectsCancellation(t *testing.T) {
	lookup := &fakeLookup{errAt: -1}
	a := newAssembler(lookup, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := a.Plan(ctx, dailyRequest(3))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOverlapsHalfOpen(t *testing.T) {
	base := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	at := func(m int) time.Time { return base.Add(time.Duration(m) * time.Minute) }

	tests := []struct {
		name                   string
		aStart, aEnd           time.Time
		bStart, bEnd           time.Time
		want                   bool
	}{
		{"disjoint", at(0), at(30), at(60), at(90), false},
		{"touching ends do not overlap", at(0), at(30), at(30), at(60), false},
		{"partial overlap", at(0), at(45), at(30), at(60), true},
		{"containment", at(0), at(120), at(30), at(60), true},
		{"identical", at(0), at(30), at(0), at(30), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			assert.Equal(t, tt.want, Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd))
		})
	}
}
