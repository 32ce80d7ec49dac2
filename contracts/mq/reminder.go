package mq

import "time"

// Routing keys for reminder outcome events.
const (
	ReminderSentKey   = "reminder.sent"
	ReminderFailedKey = "reminder.failed"
)

type ReminderSentPayload struct {
	HabitID      int64     `json:"habit_id"`
	UserID       int64     `json:"user_id"`
	ScheduledFor time.Time `json:"scheduled_for"`
	SentAt       time.Time `json:"sent_at"`
}

type ReminderFailedPayload struct {
	HabitID      int64     `json:"habit_id"`
	UserID       int64     `json:"user_id"`
	ScheduledFor time.Time `json:"scheduled_for"`
	Error        string    `json:"error"`
}
