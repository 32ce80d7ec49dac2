package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"habittracker/internal/model"
)

const habitColumns = `id, owner_id, place, action, start_time, recurrence, is_nice,
	related_to, reward, duration_seconds, is_public, created_at, updated_at`

type HabitRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewHabitRepository(db *pgxpool.Pool, logger *zap.Logger) *HabitRepository {
	return &HabitRepository{
		db:     db,
		logger: logger,
	}
}

func scanHabit(row pgx.Row) (*model.Habit, error) {
	var h model.Habit
	var durationSeconds int
	err := row.Scan(
		&h.ID,
		&h.OwnerID,
		&h.Place,
		&h.Action,
		&h.StartTime,
		&h.Interval,
		&h.IsNice,
		&h.RelatedTo,
		&h.Reward,
		&durationSeconds,
		&h.IsPublic,
		&h.CreatedAt,
		&h.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	h.Duration = time.Duration(durationSeconds) * time.Second
	return &h, nil
}

func (r *HabitRepository) collect(rows pgx.Rows) ([]model.Habit, error) {
	defer rows.Close()

	var habits []model.Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			r.logger.Error("Failed to scan habit", zap.Error(err))
			return nil, err
		}
		habits = append(habits, *h)
	}
	return habits, rows.Err()
}

func (r *HabitRepository) Insert(ctx context.Context, h *model.Habit) (int64, error) {
	r.logger.Debug("Inserting habit",
		zap.Int64("owner_id", h.OwnerID),
		zap.String("action", h.Action),
		zap.String("recurrence", string(h.Interval)),
	)

	query := `
        INSERT INTO habits (owner_id, place, action, start_time, recurrence, is_nice,
                            related_to, reward, duration_seconds, is_public)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING id
    `
	var id int64
	err := r.db.QueryRow(ctx, query,
		h.OwnerID,
		h.Place,
		h.Action,
		h.StartTime,
		h.Interval,
		h.IsNice,
		h.RelatedTo,
		h.Reward,
		int(h.Duration.Seconds()),
		h.IsPublic,
	).Scan(&id)

	if err != nil {
		r.logger.Error("Failed to insert habit", zap.Error(err))
		return 0, err
	}

	r.logger.Info("Habit inserted successfully",
		zap.Int64("id", id),
		zap.Int64("owner_id", h.OwnerID),
	)
	return id, nil
}

func (r *HabitRepository) GetByID(ctx context.Context, id int64) (*model.Habit, error) {
	query := `SELECT ` + habitColumns + ` FROM habits WHERE id = $1`

	h, err := scanHabit(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		r.logger.Error("Failed to get habit", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return h, nil
}

// ListVisible returns the union of the user's own habits and all public
// habits, ordered by id. The single WHERE clause deduplicates the user's own
// public habits for free.
func (r *HabitRepository) ListVisible(ctx context.Context, userID int64, limit, offset int) ([]model.Habit, error) {
	query := `
        SELECT ` + habitColumns + `
        FROM habits
        WHERE owner_id = $1 OR is_public = TRUE
        ORDER BY id ASC
        LIMIT $2 OFFSET $3
    `

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.logger.Error("Failed to list visible habits", zap.Error(err))
		return nil, err
	}
	return r.collect(rows)
}

func (r *HabitRepository) ListOwned(ctx context.Context, userID int64) ([]model.Habit, error) {
	query := `
        SELECT ` + habitColumns + `
        FROM habits
        WHERE owner_id = $1
        ORDER BY id ASC
    `

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error("Failed to list owned habits", zap.Int64("owner_id", userID), zap.Error(err))
		return nil, err
	}
	return r.collect(rows)
}

// ListDueBetween returns habits scheduled inside [lower, upper).
// Used exclusively by the reminder sweep.
func (r *HabitRepository) ListDueBetween(ctx context.Context, lower, upper time.Time) ([]model.Habit, error) {
	query := `
        SELECT ` + habitColumns + `
        FROM habits
        WHERE start_time >= $1 AND start_time < $2
        ORDER BY id ASC
    `

	rows, err := r.db.Query(ctx, query, lower, upper)
	if err != nil {
		r.logger.Error("Failed to list due habits", zap.Error(err))
		return nil, err
	}
	return r.collect(rows)
}

func (r *HabitRepository) Update(ctx context.Context, h *model.Habit) error {
	query := `
        UPDATE habits
        SET place = $2, action = $3, start_time = $4, recurrence = $5, is_nice = $6,
            related_to = $7, reward = $8, duration_seconds = $9, is_public = $10,
            updated_at = NOW()
        WHERE id = $1
    `

	tag, err := r.db.Exec(ctx, query,
		h.ID,
		h.Place,
		h.Action,
		h.StartTime,
		h.Interval,
		h.IsNice,
		h.RelatedTo,
		h.Reward,
		int(h.Duration.Seconds()),
		h.IsPublic,
	)
	if err != nil {
		r.logger.Error("Failed to update habit", zap.Int64("id", h.ID), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateStartTime advances a single habit's schedule. It is an isolated
// read-modify-write per habit: the sweep never wraps its updates in a
// cross-habit transaction.
func (r *HabitRepository) UpdateStartTime(ctx context.Context, id int64, t time.Time) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE habits SET start_time = $2, updated_at = NOW() WHERE id = $1`,
		id, t,
	)
	if err != nil {
		r.logger.Error("Failed to advance habit start time", zap.Int64("id", id), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		// habit deleted mid-sweep
		return ErrNotFound
	}
	return nil
}

func (r *HabitRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM habits WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete habit", zap.Int64("id", id), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	r.logger.Info("Habit deleted", zap.Int64("id", id))
	return nil
}
