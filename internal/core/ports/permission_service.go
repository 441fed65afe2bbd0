package ports

import (
	"context"

	"github.com/adsc/report-system/internal/core/domain"
)

// PermissionResolver maps role names to permission bags. None of its methods
// fail: lookups that cannot be satisfied degrade to the employee bag.
type PermissionResolver interface {
	Resolve(ctx context.Context, roleName string) domain.ResolvedRole
	HasCapability(ctx context.Context, roleName string, c domain.Capability) bool
	// Deprecated: tier checks remain for compatibility; routes use HasCapability.
	HasRole(ctx context.Context, userRole, requiredRole string) bool
	Invalidate(ctx context.Context, roleName string)
}
