package util

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Deduper guards reminder delivery against duplicates. The sweep windows
// already partition time, so this only matters when a restart or an
// overlapping deploy replays part of a window.
type Deduper struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewDeduper(rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *Deduper {
	return &Deduper{
		rdb:    rdb,
		ttl:    ttl,
		logger: logger,
	}
}

// AcquireOnce tries to claim the (habit, occurrence) pair.
// Returns true if this is the first delivery attempt for that occurrence,
// false when another sweep already claimed it. A Redis outage fails open:
// delivery is allowed rather than silently dropped.
func (d *Deduper) AcquireOnce(ctx context.Context, habitID int64, occurrence time.Time) bool {
	key := fmt.Sprintf("reminder:%d:%d", habitID, occurrence.Unix())

	ok, err := d.rdb.SetNX(ctx, key, 1, d.ttl).Result()
	if err != nil {
		if d.logger != nil {
			d.logger.Warn("Redis dedup check failed, allowing delivery",
				zap.Int64("habit_id", habitID),
				zap.Error(err),
			)
		}
		return true
	}

	if !ok && d.logger != nil {
		d.logger.Info("Skipped duplicate reminder",
			zap.Int64("habit_id", habitID),
			zap.String("dedup_key", key),
		)
	}

	return ok
}
