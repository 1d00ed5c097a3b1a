package planner

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrCheckFailed indicates the underlying booking lookup could not be
	// reached at all. Per-occurrence lookup failures after the first are
	// reported inside the plan instead (ReasonCheckFailed).
	ErrCheckFailed = errors.New("conflict check failed")
)

// Reason classifies why a candidate occurrence conflicts.
type Reason string

const (
	ReasonOverlap              Reason = "OVERLAP"
	ReasonOutsideBusinessHours Reason = "OUTSIDE_BUSINESS_HOURS"
	ReasonResourceUnavailable  Reason = "RESOURCE_UNAVAILABLE"
	ReasonPlanOverlap          Reason = "PLAN_OVERLAP"
	ReasonCheckFailed          Reason = "CHECK_FAILED"
)

// Scope identifies the dimension overlap is checked against. StaffID is
// optional; when empty, overlap is checked across the whole service.
type Scope struct {
	ServiceID string
	StaffID   string
}

// Interval is a committed booking's time range, half-open [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// OverlapLookup is supplied by the booking storage layer. It returns the
// committed intervals intersecting [start, end) for the scope. It must be
// read-only.
type OverlapLookup interface {
	FindOverlapping(ctx context.Context, scope Scope, start, end time.Time) ([]Interval, error)
}

// HoursWindow is an open interval on a weekday, in minutes from midnight.
type HoursWindow struct {
	Weekday time.Weekday
	Open    int
	Close   int
}

// HoursProvider exposes a service's configured business hours. An empty
// result means the service has no hours configured and candidates are not
// restricted.
type HoursProvider interface {
	BusinessHours(ctx context.Context, serviceID string) ([]HoursWindow, error)
}

// StaffDirectory reports whether a staff member can currently take
// bookings.
type StaffDirectory interface {
	IsBookable(ctx context.Context, staffID string) (bool, error)
}

// Result is the outcome of checking one candidate occurrence.
type Result struct {
	Conflict bool
	Reason   Reason
}

// Detector validates a single candidate occurrence against committed
// bookings and, when the collaborators are present, staff availability
// and business hours. All checks are point-in-time reads; the detector
// never mutates state and acquires no locks.
type Detector struct {
	lookup OverlapLookup
	hours  HoursProvider  // optional
	staff  StaffDirectory // optional
}

// NewDetector creates a detector. hours and staff may be nil, in which
// case the corresponding checks are skipped.
func NewDetector(lookup OverlapLookup, hours HoursProvider, staff StaffDirectory) *Detector {
	return &Detector{
		lookup: lookup,
		hours:  hours,
		staff:  staff,
	}
}

// Check evaluates the candidate [start, end) in the given scope. A
// non-nil error means the check itself could not be carried out; callers
// decide whether that blocks the occurrence or the whole plan.
func (d *Detector) Check(ctx context.Context, scope Scope, start, end time.Time) (Result, error) {
	if d.staff != nil && scope.StaffID != "" {
		bookable, err := d.staff.IsBookable(ctx, scope.StaffID)
		if err != nil {
			return Result{}, fmt.Errorf("staff availability check failed: %w", err)
		}
		if !bookable {
			return Result{Conflict: true, Reason: ReasonResourceUnavailable}, nil
		}
	}

	if d.hours != nil {
		within, err := d.withinBusinessHours(ctx, scope.ServiceID, start, end)
		if err != nil {
			return Result{}, fmt.Errorf("business hours check failed: %w", err)
		}
		if !within {
			return Result{Conflict: true, Reason: ReasonOutsideBusinessHours}, nil
		}
	}

	existing, err := d.lookup.FindOverlapping(ctx, scope, start, end)
	if err != nil {
		return Result{}, fmt.Errorf("overlap lookup failed: %w", err)
	}
	for _, iv := range existing {
		if Overlaps(start, end, iv.Start, iv.End) {
			return Result{Conflict: true, Reason: ReasonOverlap}, nil
		}
	}

	return Result{}, nil
}

// withinBusinessHours checks the candidate against the service's
// configured windows. No configured windows means unrestricted.
func (d *Detector) withinBusinessHours(ctx context.Context, serviceID string, start, end time.Time) (bool, error) {
	windows, err := d.hours.BusinessHours(ctx, serviceID)
	if err != nil {
		return false, err
	}
	if len(windows) == 0 {
		return true, nil
	}

	startMin := start.Hour()*60 + start.Minute()
	endMin := startMin + int(end.Sub(start).Minutes())

	for _, w := range windows {
		if w.Weekday != start.Weekday() {
			continue
		}
		if startMin >= w.Open && endMin <= w.Close {
			return true, nil
		}
	}
	return false, nil
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
