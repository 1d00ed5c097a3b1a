package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRRuleRendering(t *testing.T) {
	anchor := time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)

	t.Run("daily with count", func(t *testing.T) {
		count := 3
		s, err := Pattern{Frequency: FreqDaily, Interval: 1, Count: &count}.RRule(anchor)
		require.NoError(t, err)
		assert.Contains(t, s, "FREQ=DAILY")
		assert.Contains(t, s, "COUNT=3")
	})

	t.Run("weekly with weekday filter", func(t *testing.T) {
		s, err := Pattern{
			Frequency: FreqWeekly,
			Interval:  2,
			ByWeekday: []time.Weekday{time.Monday, time.Wednesday, time.Friday},
		}.RRule(anchor)
		require.NoError(t, err)
		assert.Contains(t, s, "FREQ=WEEKLY")
		assert.Contains(t, s, "INTERVAL=2")
		assert.Contains(t, s, "BYDAY=MO,WE,FR")
	})

	t.Run("monthly with until", func(t *testing.T) {
		until := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
		s, err := Pattern{Frequency: FreqMonthly, Interval: 1, Until: &until}.RRule(anchor)
		require.NoError(t, err)
		assert.Contains(t, s, "FREQ=MONTHLY")
		assert.Contains(t, s, "UNTIL=20250630")
	})

	t.Run("invalid pattern", func(t *testing.T) {
		_, err := Pattern{Frequency: "hourly", Interval: 1}.RRule(anchor)
		assert.ErrorIs(t, err, ErrInvalidPattern)
	})
}
