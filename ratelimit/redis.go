package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisLimiter is a sliding-window limiter backed by a Redis sorted set
// per identifier, scored by attempt time. State survives restarts and is
// shared across instances.
type RedisLimiter struct {
	cfg    Config
	client redis.UniversalClient
	prefix string

	now func() time.Time
}

// NewRedisLimiter creates a limiter storing windows under
// "<prefix>:<identifier>".
func NewRedisLimiter(client redis.UniversalClient, prefix string, cfg Config) *RedisLimiter {
	return &RedisLimiter{
		cfg:    cfg,
		client: client,
		prefix: prefix,
		now:    time.Now,
	}
}

func (l *RedisLimiter) key(identifier string) string {
	return l.prefix + ":" + identifier
}

// Limited checks and records one attempt. Expired members are removed
// before counting, and the key expires with the window so abandoned
// identifiers clean themselves up.
func (l *RedisLimiter) Limited(ctx context.Context, identifier string) (bool, error) {
	key := l.key(identifier)
	now := l.now()
	cutoff := strconv.FormatInt(now.Add(-l.cfg.Window).UnixNano(), 10)

	if err := l.client.ZRemRangeByScore(ctx, key, "-inf", "("+cutoff).Err(); err != nil {
		return false, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	count, err := l.client.ZCard(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	if count >= int64(l.cfg.MaxRequests) {
		return true, nil
	}

	member := redis.Z{Score: float64(now.UnixNano()), Member: uuid.NewString()}
	if err := l.client.ZAdd(ctx, key, member).Err(); err != nil {
		return false, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	if err := l.client.Expire(ctx, key, l.cfg.Window).Err(); err != nil {
		return false, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	return false, nil
}

// Reset clears the identifier's window.
func (l *RedisLimiter) Reset(ctx context.Context, identifier string) error {
	if err := l.client.Del(ctx, l.key(identifier)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	return nil
}
