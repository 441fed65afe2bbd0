package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LockoutPolicy configures the failed-login lock.
type LockoutPolicy struct {
	MaxAttempts int
	Window      time.Duration
	LockFor     time.Duration
}

// DefaultLockoutPolicy locks an account for 30 minutes after 5 failures
// within 15 minutes.
var DefaultLockoutPolicy = LockoutPolicy{MaxAttempts: 5, Window: 15 * time.Minute, LockFor: 30 * time.Minute}

// Lockout counts failed logins per username.
// Key format: login:fail:<username> and login:lock:<username>
type Lockout struct {
	client *redis.Client
	policy LockoutPolicy
}

// NewLockout wraps the client. Zero policy fields take the defaults.
func NewLockout(client *redis.Client, policy LockoutPolicy) *Lockout {
	if policy.MaxAttempts <= 0 {
		policy.MaxAttempts = DefaultLockoutPolicy.MaxAttempts
	}
	if policy.Window <= 0 {
		policy.Window = DefaultLockoutPolicy.Window
	}
	if policy.LockFor <= 0 {
		policy.LockFor = DefaultLockoutPolicy.LockFor
	}
	return &Lockout{client: client, policy: policy}
}

// Remaining reports how long the account stays locked.
func (l *Lockout) Remaining(ctx context.Context, username string) (time.Duration, error) {
	ttl, err := l.client.PTTL(ctx, lockKey(username)).Result()
	if err != nil {
		return 0, fmt.Errorf("lockout check: %w", err)
	}
	if ttl < 0 {
		return 0, nil
	}
	return ttl, nil
}

// RecordFailure counts a failure. Reaching the limit sets the lock and clears
// the counter.
func (l *Lockout) RecordFailure(ctx context.Context, username string) (bool, error) {
	key := failKey(username)
	n, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("lockout count: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, key, l.policy.Window).Err(); err != nil {
			return false, fmt.Errorf("lockout window: %w", err)
		}
	}
	if n < int64(l.policy.MaxAttempts) {
		return false, nil
	}

	_, err = l.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, lockKey(username), "1", l.policy.LockFor)
		p.Del(ctx, key)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("lockout set: %w", err)
	}
	return true, nil
}

// Reset clears both the counter and any lock.
func (l *Lockout) Reset(ctx context.Context, username string) error {
	return l.client.Del(ctx, failKey(username), lockKey(username)).Err()
}

func failKey(username string) string { return "login:fail:" + username }
func lockKey(username string) string { return "login:lock:" + username }
