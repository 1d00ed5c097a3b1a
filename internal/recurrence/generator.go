package recurrence

import "time"

// Safety cap for unbounded or very wide patterns. Expansion stops after
// MaxOccurrences emitted dates or once candidates pass MaxHorizonYears
// from the anchor, whichever triggers first. Hitting the cap is not an
// error; Expand reports it through its truncated result.
const (
	MaxOccurrences  = 366
	MaxHorizonYears = 2
)

// Expand generates the concrete occurrence start times for the pattern,
// anchored at anchor. The time-of-day component of every occurrence is
// taken from the anchor; only the date advances.
//
// The result is strictly increasing with no duplicates. The first element
// is the anchor itself, unless a weekly ByWeekday filter excludes it, in
// which case the first matching date is emitted instead. Weekly patterns
// with a ByWeekday filter count interval weeks from Sunday, consistent
// with weekday index 0 meaning Sunday. An empty result is valid. Expand
// is a pure function: identical inputs yield identical output.
func Expand(anchor time.Time, p Pattern) (starts []time.Time, truncated bool, err error) {
	if err := p.Validate(); err != nil {
		return nil, false, err
	}

	horizon := anchor.AddDate(MaxHorizonYears, 0, 0)

	// within reports whether the candidate may be emitted, and flags cap
	// truncation. Candidates past Until end the series without truncation.
	within := func(cand time.Time) (ok, capped bool) {
		if p.Until != nil && cand.After(*p.Until) {
			return false, false
		}
		if cand.After(horizon) {
			return false, true
		}
		if len(starts) >= MaxOccurrences {
			return false, true
		}
		return true, false
	}

	done := func() bool {
		return p.Count != nil && len(starts) >= *p.Count
	}

	switch p.Frequency {
	case FreqDaily:
		for k := 0; !done(); k++ {
			cand := anchor.AddDate(0, 0, k*p.Interval)
			ok, capped := within(cand)
			if !ok {
				truncated = capped
				break
			}
			starts = append(starts, cand)
		}

	case FreqWeekly:
		if len(p.ByWeekday) == 0 {
			for k := 0; !done(); k++ {
				cand := anchor.AddDate(0, 0, k*7*p.Interval)
				ok, capped := within(cand)
				if !ok {
					truncated = capped
					break
				}
				starts = append(starts, cand)
			}
			break
		}
		// With a weekday filter, walk day by day from the anchor and emit
		// days whose week offset from the anchor's week is a multiple of
		// the interval. Weeks start on Sunday, matching weekday index 0.
		week := 0
		for i := 0; !done(); i++ {
			cand := anchor.AddDate(0, 0, i)
			if i > 0 && cand.Weekday() == time.Sunday {
				week++
			}
			if week%p.Interval != 0 || !p.matchesWeekday(cand) {
				// Still bound the walk itself, not only emissions.
				if cand.After(horizon) {
					truncated = true
					break
				}
				if p.Until != nil && cand.After(*p.Until) {
					break
				}
				continue
			}
			ok, capped := within(cand)
			if !ok {
				truncated = capped
				break
			}
			starts = append(starts, cand)
		}

	case FreqMonthly:
		for k := 0; !done(); k++ {
			cand := addMonthsClamped(anchor, k*p.Interval)
			ok, capped := within(cand)
			if !ok {
				truncated = capped
				break
			}
			starts = append(starts, cand)
		}
	}

	return starts, truncated, nil
}

// addMonthsClamped advances t by the given number of calendar months,
// preserving day-of-month. When the source day exceeds the target month's
// length (e.g. Jan 31 + 1 month), the day is clamped to the month's last
// day instead of rolling over.
func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	first := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	if last := daysInMonth(first.Year(), first.Month()); day > last {
		day = last
	}
	hour, min, sec := t.Clock()
	return time.Date(first.Year(), first.Month(), day, hour, min, sec, t.Nanosecond(), t.Location())
}

// daysInMonth returns the number of days in the given month.
func daysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
