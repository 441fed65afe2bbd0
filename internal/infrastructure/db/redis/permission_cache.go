package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/adsc/report-system/internal/core/domain"
)

const permissionTTL = 5 * time.Minute

// PermissionCache keeps resolved custom-role bags.
// Key format: role:perm:<role key>
type PermissionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPermissionCache wraps the client. ttl <= 0 uses five minutes.
func NewPermissionCache(client *redis.Client, ttl time.Duration) *PermissionCache {
	if ttl <= 0 {
		ttl = permissionTTL
	}
	return &PermissionCache{client: client, ttl: ttl}
}

func (c *PermissionCache) Get(ctx context.Context, roleKey string) (domain.Permissions, bool, error) {
	raw, err := c.client.Get(ctx, permKey(roleKey)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Permissions{}, false, nil
	}
	if err != nil {
		return domain.Permissions{}, false, fmt.Errorf("permission cache get: %w", err)
	}
	var p domain.Permissions
	if err := json.Unmarshal(raw, &p); err != nil {
		return domain.Permissions{}, false, fmt.Errorf("permission cache decode: %w", err)
	}
	return p, true, nil
}

func (c *PermissionCache) Set(ctx context.Context, roleKey string, perms domain.Permissions) error {
	raw, err := json.Marshal(perms)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, permKey(roleKey), raw, c.ttl).Err()
}

func (c *PermissionCache) Invalidate(ctx context.Context, roleKey string) error {
	return c.client.Del(ctx, permKey(roleKey)).Err()
}

func permKey(roleKey string) string { return "role:perm:" + roleKey }
