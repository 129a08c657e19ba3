package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/luminett/booking-api/internal/core/domain"
)

const (
	maxFailures    = 5
	lockoutWindow  = 15 * time.Minute
	failureCounter = "loginfail:%s"
	lockoutMarker  = "loginlock:%s"
)

// LoginLimiter throttles brute-force login attempts per client address.
// After maxFailures consecutive failures the key is locked out for
// lockoutWindow; the failure counter resets when the lockout is set, so the
// next window starts clean. It implements ports.LoginLimiter.
type LoginLimiter struct {
	client *redis.Client
}

func NewLoginLimiter(client *redis.Client) *LoginLimiter {
	return &LoginLimiter{client: client}
}

// Check returns a domain.ErrRateLimited-wrapped error while key is locked out,
// including the remaining wait rounded up to whole minutes.
func (l *LoginLimiter) Check(ctx context.Context, key string) error {
	ttl, err := l.client.TTL(ctx, fmt.Sprintf(lockoutMarker, key)).Result()
	if err != nil {
		return fmt.Errorf("lockout check: %w", err)
	}
	if ttl <= 0 {
		// -2 key absent, -1 no expiry (never set by us).
		return nil
	}

	minutes := int64((ttl + time.Minute - 1) / time.Minute)
	return fmt.Errorf("%w: retry in %d min", domain.ErrRateLimited, minutes)
}

// RecordFailure increments the failure counter and installs the lockout once
// the threshold is reached.
func (l *LoginLimiter) RecordFailure(ctx context.Context, key string) error {
	counter := fmt.Sprintf(failureCounter, key)

	n, err := l.client.Incr(ctx, counter).Result()
	if err != nil {
		return fmt.Errorf("record failure: %w", err)
	}
	if n == 1 {
		// Stale counters from an abandoned attempt series expire on their own.
		if err := l.client.Expire(ctx, counter, lockoutWindow).Err(); err != nil {
			return fmt.Errorf("expire counter: %w", err)
		}
	}
	if n < maxFailures {
		return nil
	}

	pipe := l.client.TxPipeline()
	pipe.Set(ctx, fmt.Sprintf(lockoutMarker, key), "1", lockoutWindow)
	pipe.Del(ctx, counter)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("install lockout: %w", err)
	}
	return nil
}

// Clear wipes both the counter and any active lockout after a successful login.
func (l *LoginLimiter) Clear(ctx context.Context, key string) error {
	return l.client.Del(ctx,
		fmt.Sprintf(failureCounter, key),
		fmt.Sprintf(lockoutMarker, key),
	).Err()
}
