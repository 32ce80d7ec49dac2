package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	contracts "habittracker/contracts/mq"
	"habittracker/internal/model"
	"habittracker/internal/notifier"
	"habittracker/pkg/metrics"
)

// HabitStore is the slice of the habit repository the sweep needs.
type HabitStore interface {
	ListDueBetween(ctx context.Context, lower, upper time.Time) ([]model.Habit, error)
	UpdateStartTime(ctx context.Context, id int64, t time.Time) error
}

// UserStore resolves habit owners to their messaging identifiers.
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
}

// Deduper guards against re-delivery of the same occurrence. Optional.
type Deduper interface {
	AcquireOnce(ctx context.Context, habitID int64, occurrence time.Time) bool
}

// EventPublisher emits reminder outcome events. Optional.
type EventPublisher interface {
	Publish(routingKey string, payload any) error
}

// Config carries the sweep parameters. Period must equal the trigger
// interval: consecutive windows [now+lookahead, now+lookahead+period) then
// partition time, so each due habit lands in exactly one sweep.
type Config struct {
	Lookahead     time.Duration
	Period        time.Duration
	NotifyTimeout time.Duration
	ReportZone    *time.Location
}

// Reminder runs the periodic reminder sweep.
type Reminder struct {
	cfg      Config
	habits   HabitStore
	users    UserStore
	notifier notifier.Notifier
	dedup    Deduper
	events   EventPublisher
	logger   *zap.Logger

	cron *cron.Cron
	now  func() time.Time
}

func New(
	cfg Config,
	habits HabitStore,
	users UserStore,
	n notifier.Notifier,
	dedup Deduper,
	events EventPublisher,
	logger *zap.Logger,
) *Reminder {
	if cfg.ReportZone == nil {
		cfg.ReportZone = time.UTC
	}
	return &Reminder{
		cfg:      cfg,
		habits:   habits,
		users:    users,
		notifier: n,
		dedup:    dedup,
		events:   events,
		logger:   logger,
		now:      time.Now,
	}
}

// Start registers the sweep on a cron trigger firing every Period.
// SkipIfStillRunning keeps a long sweep from overlapping the next window;
// the window itself is computed from the actual fire time, so a skipped run
// does not shift subsequent windows.
func (r *Reminder) Start() error {
	r.cron = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DiscardLogger),
	))

	spec := fmt.Sprintf("@every %s", r.cfg.Period)
	if _, err := r.cron.AddFunc(spec, func() {
		r.Sweep(context.Background())
	}); err != nil {
		return fmt.Errorf("schedule reminder sweep: %w", err)
	}

	r.cron.Start()
	r.logger.Info("Reminder scheduler started",
		zap.Duration("period", r.cfg.Period),
		zap.Duration("lookahead", r.cfg.Lookahead),
	)
	return nil
}

// Stop halts the trigger and waits for an in-flight sweep to finish.
func (r *Reminder) Stop() {
	if r.cron == nil {
		return
	}
	<-r.cron.Stop().Done()
	r.logger.Info("Reminder scheduler stopped")
}

// Sweep runs one reminder cycle: select habits due in the lookahead window,
// notify each owner, and advance each habit's schedule.
func (r *Reminder) Sweep(ctx context.Context) {
	started := time.Now()
	now := r.now()

	lower := now.Add(r.cfg.Lookahead)
	upper := lower.Add(r.cfg.Period)

	habits, err := r.habits.ListDueBetween(ctx, lower, upper)
	if err != nil {
		r.logger.Error("Sweep failed to list due habits", zap.Error(err))
		return
	}

	metrics.AddHabitsDue(len(habits))
	r.logger.Info("Sweep selected due habits",
		zap.Time("lower", lower),
		zap.Time("upper", upper),
		zap.Int("count", len(habits)),
	)

	for _, h := range habits {
		r.process(ctx, h)
	}

	metrics.ObserveSweepDuration(time.Since(started))
}

// process handles a single habit. Delivery outcome only influences logging,
// metrics and events; the schedule advances regardless, so a failed delivery
// never stalls the recurrence. Failures here are contained per habit.
func (r *Reminder) process(ctx context.Context, h model.Habit) {
	occurrence := h.StartTime

	status := "sent"
	var deliveryErr error
	if r.dedup != nil && !r.dedup.AcquireOnce(ctx, h.ID, occurrence) {
		status = "skipped"
	} else if deliveryErr = r.notify(ctx, h); deliveryErr != nil {
		status = "failed"
		r.logger.Warn("Reminder delivery failed",
			zap.Int64("habit_id", h.ID),
			zap.Int64("owner_id", h.OwnerID),
			zap.Error(deliveryErr),
		)
	}

	metrics.IncReminder(status)
	r.publishOutcome(h, occurrence, status, deliveryErr)

	next, err := h.Interval.Next(occurrence)
	if err != nil {
		r.logger.Error("Habit carries an unknown recurrence interval, schedule left unchanged",
			zap.Int64("habit_id", h.ID),
			zap.String("recurrence", string(h.Interval)),
		)
		return
	}

	if err := r.habits.UpdateStartTime(ctx, h.ID, next); err != nil {
		// e.g. habit deleted mid-sweep; skip it, keep the sweep going
		r.logger.Error("Failed to persist advanced start time",
			zap.Int64("habit_id", h.ID),
			zap.Time("next", next),
			zap.Error(err),
		)
	}
}

func (r *Reminder) notify(ctx context.Context, h model.Habit) error {
	owner, err := r.users.GetByID(ctx, h.OwnerID)
	if err != nil {
		return fmt.Errorf("resolve owner %d: %w", h.OwnerID, err)
	}

	local := h.StartTime.In(r.cfg.ReportZone)
	text := fmt.Sprintf("Don't forget: today at %02d:%02d you planned to %s at %s.",
		local.Hour(), local.Minute(), h.Action, h.Place)

	sendCtx, cancel := context.WithTimeout(ctx, r.cfg.NotifyTimeout)
	defer cancel()

	return r.notifier.Send(sendCtx, owner.TgChatID, text)
}

func (r *Reminder) publishOutcome(h model.Habit, occurrence time.Time, status string, deliveryErr error) {
	if r.events == nil || status == "skipped" {
		return
	}

	var err error
	switch status {
	case "sent":
		err = r.events.Publish(contracts.ReminderSentKey, contracts.ReminderSentPayload{
			HabitID:      h.ID,
			UserID:       h.OwnerID,
			ScheduledFor: occurrence,
			SentAt:       time.Now(),
		})
	case "failed":
		msg := ""
		if deliveryErr != nil {
			msg = deliveryErr.Error()
		}
		err = r.events.Publish(contracts.ReminderFailedKey, contracts.ReminderFailedPayload{
			HabitID:      h.ID,
			UserID:       h.OwnerID,
			ScheduledFor: occurrence,
			Error:        msg,
		})
	}
	if err != nil {
		r.logger.Warn("Failed to publish reminder event",
			zap.Int64("habit_id", h.ID),
			zap.String("status", status),
			zap.Error(err),
		)
	}
}
