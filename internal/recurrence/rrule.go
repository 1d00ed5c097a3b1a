package recurrence

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

var rruleWeekdays = [7]rrule.Weekday{
	rrule.SU, rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA,
}

// RRule renders the RFC 5545 RRULE string equivalent to the pattern, for
// API and calendar clients that want to display or re-expand the series
// themselves. Note that for weekly patterns with both an interval and a
// weekday filter, RFC 5545 counts weeks from WKST rather than from the
// anchor's week, so the rendered rule is an approximation of Expand's
// exact output.
func (p Pattern) RRule(anchor time.Time) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}

	opt := rrule.ROption{
		Dtstart:  anchor.UTC(),
		Interval: p.Interval,
	}
	switch p.Frequency {
	case FreqDaily:
		opt.Freq = rrule.DAILY
	case FreqWeekly:
		opt.Freq = rrule.WEEKLY
	case FreqMonthly:
		opt.Freq = rrule.MONTHLY
	}
	if p.Count != nil {
		opt.Count = *p.Count
	}
	if p.Until != nil {
		opt.Until = p.Until.UTC()
	}
	for _, wd := range p.ByWeekday {
		opt.Byweekday = append(opt.Byweekday, rruleWeekdays[wd])
	}

	rule, err := rrule.NewRRule(opt)
	if err != nil {
		return "", fmt.Errorf("build rrule failed: %w", err)
	}
	return rule.String(), nil
}
