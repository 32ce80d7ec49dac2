package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntervalNext(t *testing.T) {
	base := time.Date(2024, 1, 17, 7, 39, 0, 0, time.FixedZone("UTC+3", 3*3600))

	tests := []struct {
		name     string
		interval Interval
		wantDays int
	}{
		{"daily", IntervalDaily, 1},
		{"every 2 days", IntervalEveryTwoDays, 2},
		{"every 3 days", IntervalEveryThreeDays, 3},
		{"weekly", IntervalWeekly, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, err := tt.interval.Next(base)
			require.NoError(t, err)
			assert.Equal(t, base.AddDate(0, 0, tt.wantDays), next)

			// deterministic: a second application from the same input
			// yields the same output
			again, err := tt.interval.Next(base)
			require.NoError(t, err)
			assert.Equal(t, next, again)
		})
	}
}

func TestIntervalNextUnknown(t *testing.T) {
	base := time.Now()

	next, err := Interval("fortnightly").Next(base)
	require.ErrorIs(t, err, ErrUnknownInterval)
	assert.Equal(t, base, next, "unknown interval must leave the time unchanged")
}

func TestIntervalValid(t *testing.T) {
	assert.True(t, IntervalDaily.Valid())
	assert.True(t, IntervalEveryTwoDays.Valid())
	assert.True(t, IntervalEveryThreeDays.Valid())
	assert.True(t, IntervalWeekly.Valid())

	assert.False(t, Interval("").Valid())
	assert.False(t, Interval("monthly").Valid())
	assert.False(t, Interval("Daily").Valid())
}
