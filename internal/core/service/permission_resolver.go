package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/adsc/report-system/internal/core/domain"
	"github.com/adsc/report-system/internal/core/ports"
)

// PermissionResolver resolves role names to permission bags: system roles from
// constants, custom roles from the store through an optional cache, and
// anything else to the employee bag.
type PermissionResolver struct {
	roles  ports.RoleRepository
	cache  ports.PermissionCache
	logger zerolog.Logger
}

// NewPermissionResolver builds a resolver. cache may be nil.
func NewPermissionResolver(roles ports.RoleRepository, cache ports.PermissionCache, logger zerolog.Logger) *PermissionResolver {
	return &PermissionResolver{roles: roles, cache: cache, logger: logger}
}

func (r *PermissionResolver) Resolve(ctx context.Context, roleName string) domain.ResolvedRole {
	if tier, perms, ok := domain.SystemRole(roleName); ok {
		return domain.ResolvedRole{Name: roleName, Kind: domain.RoleKindSystem, Tier: tier, Permissions: perms}
	}

	key := domain.RoleKey(roleName)
	if key != "" && r.cache != nil {
		perms, ok, err := r.cache.Get(ctx, key)
		if err != nil {
			r.logger.Warn().Err(err).Str("role", roleName).Msg("permission cache read failed")
		} else if ok {
			return domain.ResolvedRole{Name: roleName, Kind: domain.RoleKindCustom, Permissions: perms}
		}
	}

	if key != "" {
		role, err := r.roles.FindByName(ctx, roleName)
		switch {
		case err == nil:
			if r.cache != nil {
				if err := r.cache.Set(ctx, key, role.Permissions); err != nil {
					r.logger.Warn().Err(err).Str("role", role.Name).Msg("permission cache write failed")
				}
			}
			return domain.ResolvedRole{Name: role.Name, Kind: domain.RoleKindCustom, Permissions: role.Permissions}
		case errors.Is(err, domain.ErrRoleNotFound):
			r.logger.Warn().Str("role", roleName).Msg("unknown role, using employee permissions")
		default:
			r.logger.Error().Err(err).Str("role", roleName).Msg("role lookup failed, using employee permissions")
		}
	}

	return domain.ResolvedRole{Name: roleName, Kind: domain.RoleKindCustom, Permissions: domain.EmployeePermissions}
}

func (r *PermissionResolver) HasCapability(ctx context.Context, roleName string, c domain.Capability) bool {
	return r.Resolve(ctx, roleName).Can(c)
}

// representativeCapability backs HasRole when either side is not a system role.
var representativeCapability = map[string]domain.Capability{
	domain.RoleAdmin:    domain.CanManageUsers,
	domain.RoleManager:  domain.CanAccessAdmin,
	domain.RoleEmployee: domain.CanViewReports,
}

// HasRole compares system tiers, falling back to the capability that stands
// for requiredRole when userRole is custom.
//
// Deprecated: routes authorize on capabilities. Kept for callers that still
// speak in tiers.
func (r *PermissionResolver) HasRole(ctx context.Context, userRole, requiredRole string) bool {
	userTier, _, userIsSystem := domain.SystemRole(userRole)
	requiredTier, _, requiredIsSystem := domain.SystemRole(requiredRole)
	if userIsSystem && requiredIsSystem {
		return userTier >= requiredTier
	}

	c, ok := representativeCapability[requiredRole]
	if !ok {
		return false
	}
	return r.HasCapability(ctx, userRole, c)
}

// Invalidate drops a cached custom-role bag.
func (r *PermissionResolver) Invalidate(ctx context.Context, roleName string) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Invalidate(ctx, domain.RoleKey(roleName)); err != nil {
		r.logger.Warn().Err(err).Str("role", roleName).Msg("permission cache invalidation failed")
	}
}
