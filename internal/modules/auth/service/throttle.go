package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginThrottle counts failed logins per email inside a fixed window.
type LoginThrottle interface {
	Allowed(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

type redisThrottle struct {
	rdb         *redis.Client
	maxAttempts int
	window      time.Duration
}

// NewRedisThrottle returns a throttle that always allows when rdb is nil.
func NewRedisThrottle(rdb *redis.Client, maxAttempts int, window time.Duration) LoginThrottle {
	return &redisThrottle{rdb: rdb, maxAttempts: maxAttempts, window: window}
}

func throttleKey(email string) string {
	return fmt.Sprintf("login_failures:%s", email)
}

func (t *redisThrottle) Allowed(ctx context.Context, email string) (bool, error) {
	if t.rdb == nil || t.maxAttempts <= 0 {
		return true, nil
	}

	failures, err := t.rdb.Get(ctx, throttleKey(email)).Int()
	if err == redis.Nil {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read login throttle from redis: %w", err)
	}
	return failures < t.maxAttempts, nil
}

func (t *redisThrottle) RecordFailure(ctx context.Context, email string) error {
	if t.rdb == nil {
		return nil
	}

	key := throttleKey(email)
	failures, err := t.rdb.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("failed to record login failure in redis: %w", err)
	}
	if failures == 1 {
		if err := t.rdb.Expire(ctx, key, t.window).Err(); err != nil {
			return fmt.Errorf("failed to set login throttle window: %w", err)
		}
	}
	return nil
}

func (t *redisThrottle) Reset(ctx context.Context, email string) error {
	if t.rdb == nil {
		return nil
	}
	return t.rdb.Del(ctx, throttleKey(email)).Err()
}
