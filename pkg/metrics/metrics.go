package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Reminder delivery outcomes per sweep: sent, failed, skipped.
	RemindersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reminders_total",
			Help: "Total number of reminder deliveries by outcome",
		},
		[]string{"status"},
	)

	// Habits picked up by a sweep window.
	HabitsDueTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reminder_habits_due_total",
			Help: "Total number of habits selected as due across sweeps",
		},
	)

	// Full sweep duration.
	SweepDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "reminder_sweep_duration_seconds",
			Help:    "Duration of a full reminder sweep in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 14), // 1ms to ~16s
		},
	)

	// HTTP request latency.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)
)

// IncReminder records a single reminder delivery outcome.
func IncReminder(status string) {
	RemindersTotal.WithLabelValues(status).Inc()
}

// AddHabitsDue records the number of habits a sweep selected.
func AddHabitsDue(n int) {
	HabitsDueTotal.Add(float64(n))
}

// ObserveSweepDuration records how long a sweep took.
func ObserveSweepDuration(d time.Duration) {
	SweepDuration.Observe(d.Seconds())
}

// RecordHTTPRequestDuration records the latency of a handled HTTP request.
func RecordHTTPRequestDuration(method, path, status string, d time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(d.Seconds())
}
