package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func timePtr(t time.Time) *time.Time { return &t }

func TestExpandDaily(t *testing.T) {
	anchor := time.Date(2025, 1, 1, 9, 1, 0, 0, time.UTC)

	starts, truncated, err := Expand(anchor, Pattern{
		Frequency: FreqDaily,
		Interval:  1,
		Count:     intPtr(3),
	})
	require.NoError(t, err)
	assert.False(t, truncated)

	want := []time.Time{
		time.Date(2025, 1, 1, 9, 1, 0, 0, time.UTC),
		time.Date(2025, 1, 2, 9, 1, 0, 0, time.UTC),
		time.Date(2025, 1, 3, 9, 1, 0, 0, time.UTC),
	}
	assert.Equal(t, want, starts)
}

func TestExpandDailyInterval(t *testing.T) {
	anchor := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)

	starts, _, err := Expand(anchor, Pattern{
		Frequency: FreqDaily,
		Interval:  3,
		Count:     intPtr(4),
	})
	require.NoError(t, err)
	require.Len(t, starts, 4)

	for i, s := range starts {
		assert.Equal(t, anchor.AddDate(0, 0, i*3), s)
	}
}

func TestExpandCountProducesExactlyN(t *testing.T) {
	anchor := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		pattern Pattern
	}{
		{"daily", Pattern{Frequency: FreqDaily, Interval: 1, Count: intPtr(7)}},
		{"weekly", Pattern{Frequency: FreqWeekly, Interval: 2, Count: intPtr(7)}},
		{"monthly", Pattern{Frequency: FreqMonthly, Interval: 1, Count: intPtr(7)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			starts, truncated, err := Expand(anchor, tt.pattern)
			require.NoError(t, err)
			assert.False(t, truncated)
			require.Len(t, starts, 7)

			// Strictly increasing, first equals the anchor.
			assert.True(t, starts[0].Equal(anchor))
			for i := 1; i < len(starts); i++ {
				assert.True(t, starts[i].After(starts[i-1]),
					"occurrence %d not after %d", i, i-1)
			}
		})
	}
}

func TestExpandWeeklyByWeekday(t *testing.T) {
	// 2025-01-06 is a Monday.
	anchor := time.Date(2025, 1, 6, 9, 3, 0, 0, time.UTC)

	starts, _, err := Expand(anchor, Pattern{
		Frequency: FreqWeekly,
		Interval:  1,
		Count:     intPtr(4),
		ByWeekday: []time.Weekday{time.Monday},
	})
	require.NoError(t, err)
	require.Len(t, starts, 4)

	for _, s := range starts {
		assert.Equal(t, time.Monday, s.Weekday())
		assert.Equal(t, 9, s.Hour())
		assert.Equal(t, 3, s.Minute())
	}
	assert.True(t, starts[0].Equal(anchor))
}

func TestExpandWeeklyMultipleWeekdays(t *testing.T) {
	// Every 2 weeks on Mon/Wed/Fri, anchored on a Monday.
	anchor := time.Date(2025, 1, 6, 8, 0, 0, 0, time.UTC)

	starts, _, err := Expand(anchor, Pattern{
		Frequency: FreqWeekly,
		Interval:  2,
		Count:     intPtr(6),
		ByWeekday: []time.Weekday{time.Monday, time.Wednesday, time.Friday},
	})
	require.NoError(t, err)

	want := []time.Time{
		time.Date(2025, 1, 6, 8, 0, 0, 0, time.UTC),  // Mon, week 0
		time.Date(2025, 1, 8, 8, 0, 0, 0, time.UTC),  // Wed, week 0
		time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC), // Fri, week 0
		time.Date(2025, 1, 20, 8, 0, 0, 0, time.UTC), // Mon, week 2
		time.Date(2025, 1, 22, 8, 0, 0, 0, time.UTC), // Wed, week 2
		time.Date(2025, 1, 24, 8, 0, 0, 0, time.UTC), // Fri, week 2
	}
	assert.Equal(t, want, starts)
}

func TestExpandWeeklyFilterSkipsAnchor(t *testing.T) {
	// Anchor on a Monday but only Thursdays requested: first emission is
	// later than the anchor.
	anchor := time.Date(2025, 1, 6, 11, 0, 0, 0, time.UTC)

	starts, _, err := Expand(anchor, Pattern{
		Frequency: FreqWeekly,
		Interval:  1,
		Count:     intPtr(2),
		ByWeekday: []time.Weekday{time.Thursday},
	})
	require.NoError(t, err)
	require.Len(t, starts, 2)
	assert.Equal(t, time.Date(2025, 1, 9, 11, 0, 0, 0, time.UTC), starts[0])
	assert.Equal(t, time.Date(2025, 1, 16, 11, 0, 0, 0, time.UTC), starts[1])
}

func TestExpandMonthlyClampsMonthEnd(t *testing.T) {
	// Jan 31 monthly: February clamps to the 28th, April to the 30th.
	anchor := time.Date(2025, 1, 31, 16, 0, 0, 0, time.UTC)

	starts, _, err := Expand(anchor, Pattern{
		Frequency: FreqMonthly,
		Interval:  1,
		Count:     intPtr(4),
	})
	require.NoError(t, err)

	want := []time.Time{
		time.Date(2025, 1, 31, 16, 0, 0, 0, time.UTC),
		time.Date(2025, 2, 28, 16, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 31, 16, 0, 0, 0, time.UTC),
		time.Date(2025, 4, 30, 16, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, want, starts)
}

func TestExpandUntilBound(t *testing.T) {
	anchor := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	until := time.Date(2025, 1, 5, 23, 59, 59, 0, time.UTC)

	starts, truncated, err := Expand(anchor, Pattern{
		Frequency: FreqDaily,
		Interval:  1,
		Until:     timePtr(until),
	})
	require.NoError(t, err)
	assert.False(t, truncated, "until-bounded series is not a cap truncation")
	require.Len(t, starts, 5)

	for _, s := range starts {
		assert.False(t, s.After(until), "occurrence %v exceeds until", s)
	}
}

func TestExpandCountAndUntilFirstBoundWins(t *testing.T) {
	anchor := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

	// until cuts the series before count does
	until := time.Date(2025, 1, 3, 12, 0, 0, 0, time.UTC)
	starts, _, err := Expand(anchor, Pattern{
		Frequency: FreqDaily,
		Interval:  1,
		Count:     intPtr(10),
		Until:     timePtr(until),
	})
	require.NoError(t, err)
	assert.Len(t, starts, 3)

	// count cuts the series before until does
	farUntil := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	starts, _, err = Expand(anchor, Pattern{
		Frequency: FreqDaily,
		Interval:  1,
		Count:     intPtr(2),
		Until:     timePtr(farUntil),
	})
	require.NoError(t, err)
	assert.Len(t, starts, 2)
}

func TestExpandUnboundedHitsSafetyCap(t *testing.T) {
	anchor := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

	starts, truncated, err := Expand(anchor, Pattern{
		Frequency: FreqDaily,
		Interval:  1,
	})
	require.NoError(t, err)
	assert.True(t, truncated)
	assert.Len(t, starts, MaxOccurrences)
}

func TestExpandHorizonCap(t *testing.T) {
	anchor := time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)

	// Monthly with no bounds passes the 2-year horizon long before 366
	// occurrences.
	starts, truncated, err := Expand(anchor, Pattern{
		Frequency: FreqMonthly,
		Interval:  1,
	})
	require.NoError(t, err)
	assert.True(t, truncated)
	assert.Len(t, starts, 25) // anchor plus 24 months

	horizon := anchor.AddDate(MaxHorizonYears, 0, 0)
	for _, s := range starts {
		assert.False(t, s.After(horizon))
	}
}

func TestExpandIsPure(t *testing.T) {
	anchor := time.Date(2025, 4, 7, 10, 15, 0, 0, time.UTC)
	pattern := Pattern{
		Frequency: FreqWeekly,
		Interval:  2,
		Count:     intPtr(9),
		ByWeekday: []time.Weekday{time.Monday, time.Friday},
	}

	first, firstTrunc, err := Expand(anchor, pattern)
	require.NoError(t, err)
	second, secondTrunc, err := Expand(anchor, pattern)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, firstTrunc, secondTrunc)
}

func TestExpandInvalidPattern(t *testing.T) {
	anchor := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		pattern Pattern
	}{
		{"zero interval", Pattern{Frequency: FreqDaily, Interval: 0}},
		{"negative interval", Pattern{Frequency: FreqDaily, Interval: -2}},
		{"unknown frequency", Pattern{Frequency: "yearly", Interval: 1}},
		{"zero count", Pattern{Frequency: FreqDaily, Interval: 1, Count: intPtr(0)}},
		{"weekday out of range", Pattern{
			Frequency: FreqWeekly, Interval: 1, ByWeekday: []time.Weekday{7},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Expand(anchor, tt.pattern)
			assert.ErrorIs(t, err, ErrInvalidPattern)
		})
	}
}

func TestExpandEmptyResultBeforeUntil(t *testing.T) {
	// Until falls before the first matching weekday: a valid empty series.
	anchor := time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC) // Monday
	until := time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC)

	starts, truncated, err := Expand(anchor, Pattern{
		Frequency: FreqWeekly,
		Interval:  1,
		Until:     timePtr(until),
		ByWeekday: []time.Weekday{time.Friday},
	})
	require.NoError(t, err)
	assert.False(t, truncated)
	assert.Empty(t, starts)
}
