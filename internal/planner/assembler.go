package planner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/firmdesk/scheduling-backend/internal/recurrence"
)

var (
	ErrInvalidDuration = errors.New("duration must be positive")
)

// Request describes one recurring-booking planning pass.
type Request struct {
	ServiceID string
	StaffID   string // optional
	Anchor    time.Time
	Duration  time.Duration
	Pattern   recurrence.Pattern
}

// Item is one planned occurrence with its conflict annotation.
type Item struct {
	Start    time.Time
	End      time.Time
	Conflict bool
	Reason   Reason
}

// Summary aggregates the plan. Total always equals len(Items) and
// Created + Conflicts. Truncated reports that the generator's safety cap
// cut the series short.
type Summary struct {
	Total     int
	Created   int
	Conflicts int
	Truncated bool
}

// Plan is the advisory result shown to the user before any booking is
// committed. It is recomputed fresh on every request and never persisted;
// the booking layer re-validates conflicts at creation time.
type Plan struct {
	Items   []Item
	Summary Summary
}

// Assembler expands a recurrence pattern and runs each occurrence through
// the conflict detector, preserving chronological order.
type Assembler struct {
	detector *Detector
	log      zerolog.Logger
}

// NewAssembler creates an assembler backed by the given detector.
func NewAssembler(detector *Detector, log zerolog.Logger) *Assembler {
	return &Assembler{
		detector: detector,
		log:      log,
	}
}

// Plan expands req.Pattern from req.Anchor and checks every occurrence,
// in emission order, against committed bookings.
//
// Occurrences that would overlap an earlier non-conflicting occurrence of
// the same plan are reported as ReasonPlanOverlap without consulting
// storage. A lookup failure on the very first occurrence aborts the whole
// plan with ErrCheckFailed (the store is presumed unreachable); later
// failures mark only that occurrence as ReasonCheckFailed so the plan
// always contains one item per generated occurrence.
func (a *Assembler) Plan(ctx context.Context, req Request) (*Plan, error) {
	if req.Duration <= 0 {
		return nil, ErrInvalidDuration
	}

	starts, truncated, err := recurrence.Expand(req.Anchor, req.Pattern)
	if err != nil {
		return nil, err
	}

	scope := Scope{ServiceID: req.ServiceID, StaffID: req.StaffID}

	plan := &Plan{
		Items:   make([]Item, 0, len(starts)),
		Summary: Summary{Truncated: truncated},
	}

	var accepted []Interval

	for i, start := range starts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		end := start.Add(req.Duration)
		item := Item{Start: start, End: end}

		if overlapsAny(accepted, start, end) {
			item.Conflict = true
			item.Reason = ReasonPlanOverlap
		} else {
			res, err := a.detector.Check(ctx, scope, start, end)
			switch {
			case err != nil && i == 0:
				return nil, fmt.Errorf("%w: %v", ErrCheckFailed, err)
			case err != nil:
				// Unknown conflict state blocks the occurrence rather than
				// risking a silent double-booking.
				a.log.Warn().Err(err).Time("start", start).Msg("occurrence conflict check failed")
				item.Conflict = true
				item.Reason = ReasonCheckFailed
			default:
				item.Conflict = res.Conflict
				item.Reason = res.Reason
			}
		}

		if !item.Conflict {
			accepted = append(accepted, Interval{Start: start, End: end})
		}
		plan.Items = append(plan.Items, item)
	}

	plan.Summary.Total = len(plan.Items)
	for _, it := range plan.Items {
		if it.Conflict {
			plan.Summary.Conflicts++
		}
	}
	plan.Summary.Created = plan.Summary.Total - plan.Summary.Conflicts

	return plan, nil
}

func overlapsAny(accepted []Interval, start, end time.Time) bool {
	for _, iv := range accepted {
		if Overlaps(start, end, iv.Start, iv.End) {
			return true
		}
	}
	return false
}
