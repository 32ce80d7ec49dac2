package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGSERIAL PRIMARY KEY,
		email         TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		tg_chat_id    TEXT NOT NULL DEFAULT '',
		first_name    TEXT NOT NULL DEFAULT '',
		is_admin      BOOLEAN NOT NULL DEFAULT FALSE,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS habits (
		id               BIGSERIAL PRIMARY KEY,
		owner_id         BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		place            TEXT NOT NULL,
		action           TEXT NOT NULL,
		start_time       TIMESTAMPTZ NOT NULL,
		recurrence       TEXT NOT NULL,
		is_nice          BOOLEAN NOT NULL DEFAULT FALSE,
		related_to       BIGINT REFERENCES habits(id) ON DELETE CASCADE,
		reward           TEXT NOT NULL DEFAULT '',
		duration_seconds INT NOT NULL DEFAULT 120,
		is_public        BOOLEAN NOT NULL DEFAULT FALSE,
		created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_habits_start_time ON habits (start_time)`,
	`CREATE INDEX IF NOT EXISTS idx_habits_owner ON habits (owner_id)`,
}

// EnsureSchema creates the tables on startup if they do not exist yet.
func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
