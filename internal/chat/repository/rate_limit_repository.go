package repository

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// RateLimitRepository is a fixed-window counter over Redis.
type RateLimitRepository interface {
	// Allow increments the window counter for key and reports whether the
	// call stayed within limit.
	Allow(key string, limit int, window time.Duration) (bool, int64, error)
}

type rateLimitRepository struct {
	client *redis.Client
	ctx    context.Context
}

// NewRateLimitRepository create a RateLimitRepository
func NewRateLimitRepository(client *redis.Client) RateLimitRepository {
	return &rateLimitRepository{
		client: client,
		ctx:    context.Background(),
	}
}

func (r *rateLimitRepository) Allow(key string, limit int, window time.Duration) (bool, int64, error) {
	count, err := r.client.Incr(r.ctx, key).Result()
	if err != nil {
		return false, 0, err
	}

	if count == 1 {
		r.client.Expire(r.ctx, key, window)
	}

	return count <= int64(limit), count, nil
}
