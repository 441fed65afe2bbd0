package ports

import (
	"context"
	"time"

	"github.com/adsc/report-system/internal/core/domain"
)

// LoginLockout tracks failed logins per username.
type LoginLockout interface {
	// Remaining returns how long the account stays locked, or 0.
	Remaining(ctx context.Context, username string) (time.Duration, error)
	// RecordFailure counts a failed attempt and reports whether it locked the account.
	RecordFailure(ctx context.Context, username string) (locked bool, err error)
	Reset(ctx context.Context, username string) error
}

// RateLimiter is a fixed-window request counter.
type RateLimiter interface {
	// Allow counts one hit for key and reports whether it is within limit.
	// retryAfter is the time left in the window when denied.
	Allow(ctx context.Context, key string, limit int, window time.Duration) (allowed bool, retryAfter time.Duration, err error)
}

// PermissionCache stores resolved custom-role bags by role key.
type PermissionCache interface {
	Get(ctx context.Context, roleKey string) (domain.Permissions, bool, error)
	Set(ctx context.Context, roleKey string, perms domain.Permissions) error
	Invalidate(ctx context.Context, roleKey string) error
}

// ActivityRecorder accepts audit entries without blocking the caller.
type ActivityRecorder interface {
	Record(entry domain.ActivityLog)
}

// RequestMeta is the client information attached to audit entries.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}
