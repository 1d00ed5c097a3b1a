package recurrence

import (
	"errors"
	"time"
)

var (
	ErrInvalidPattern = errors.New("invalid recurrence pattern")
)

// Frequency is the base cadence of a recurrence pattern.
type Frequency string

const (
	FreqDaily   Frequency = "daily"
	FreqWeekly  Frequency = "weekly"
	FreqMonthly Frequency = "monthly"
)

// Pattern describes a repeating series of dates. It is supplied by the
// caller per request and never persisted on its own.
//
// Count and Until may both be set; expansion stops at whichever bound is
// reached first. When neither is set, expansion is bounded by the safety
// cap (see MaxOccurrences and MaxHorizon).
type Pattern struct {
	Frequency Frequency
	Interval  int // every Nth period, >= 1
	Count     *int
	Until     *time.Time
	ByWeekday []time.Weekday // weekly only; empty means no filter
}

// Validate reports whether the pattern is well-formed. Interval must
// already be defaulted to 1 by the caller when absent.
func (p Pattern) Validate() error {
	switch p.Frequency {
	case FreqDaily, FreqWeekly, FreqMonthly:
	default:
		return ErrInvalidPattern
	}
	if p.Interval < 1 {
		return ErrInvalidPattern
	}
	if p.Count != nil && *p.Count < 1 {
		return ErrInvalidPattern
	}
	for _, wd := range p.ByWeekday {
		if wd < time.Sunday || wd > time.Saturday {
			return ErrInvalidPattern
		}
	}
	return nil
}

// matchesWeekday reports whether d's weekday is in the ByWeekday set.
func (p Pattern) matchesWeekday(d time.Time) bool {
	for _, wd := range p.ByWeekday {
		if d.Weekday() == wd {
			return true
		}
	}
	return false
}
