package redis

import (
	"github.com/redis/go-redis/v9"

	"habittracker/pkg/config"
)

// NewClient builds a Redis client from config. Callers decide whether the
// address being empty means the feature backed by Redis is disabled.
func NewClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}
