package model

import (
	"errors"
	"time"
)

// MaxHabitDuration bounds how long executing a habit may take.
const MaxHabitDuration = 120 * time.Second

// Interval is the closed set of recurrence rules a habit can carry.
type Interval string

const (
	IntervalDaily          Interval = "daily"
	IntervalEveryTwoDays   Interval = "every_2_days"
	IntervalEveryThreeDays Interval = "every_3_days"
	IntervalWeekly         Interval = "weekly"
)

// ErrUnknownInterval is returned when a stored habit carries a recurrence tag
// outside the closed set. That is a configuration error, not a runtime
// fallback: callers log it and leave the schedule unchanged.
var ErrUnknownInterval = errors.New("unknown recurrence interval")

// Valid reports whether the tag belongs to the closed interval set.
func (i Interval) Valid() bool {
	switch i {
	case IntervalDaily, IntervalEveryTwoDays, IntervalEveryThreeDays, IntervalWeekly:
		return true
	}
	return false
}

// Next advances a scheduled occurrence by the recurrence rule.
func (i Interval) Next(t time.Time) (time.Time, error) {
	switch i {
	case IntervalDaily:
		return t.AddDate(0, 0, 1), nil
	case IntervalEveryTwoDays:
		return t.AddDate(0, 0, 2), nil
	case IntervalEveryThreeDays:
		return t.AddDate(0, 0, 3), nil
	case IntervalWeekly:
		return t.AddDate(0, 0, 7), nil
	}
	return t, ErrUnknownInterval
}

// Habit is a recurring user-defined action with a schedule and an optional
// reward or companion habit.
type Habit struct {
	ID        int64         `json:"id"`
	OwnerID   int64         `json:"owner_id"`
	Place     string        `json:"place"`
	Action    string        `json:"action"`
	StartTime time.Time     `json:"start_time"`
	Interval  Interval      `json:"interval"`
	IsNice    bool          `json:"is_nice"`
	RelatedTo *int64        `json:"related_to,omitempty"`
	Reward    string        `json:"reward,omitempty"`
	Duration  time.Duration `json:"-"`
	IsPublic  bool          `json:"is_public"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
