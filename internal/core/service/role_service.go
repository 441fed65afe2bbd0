package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/adsc/report-system/internal/core/domain"
	"github.com/adsc/report-system/internal/core/ports"
)

// RoleService manages custom roles. System roles are listed but immutable.
type RoleService struct {
	roles    ports.RoleRepository
	users    ports.UserRepository
	resolver ports.PermissionResolver
	audit    auditor
	logger   zerolog.Logger
}

func NewRoleService(
	roles ports.RoleRepository,
	users ports.UserRepository,
	resolver ports.PermissionResolver,
	recorder ports.ActivityRecorder,
	logger zerolog.Logger,
) *RoleService {
	return &RoleService{roles: roles, users: users, resolver: resolver, audit: newAuditor(recorder), logger: logger}
}

// List returns the system roles followed by the custom ones.
func (s *RoleService) List(ctx context.Context) ([]ports.RoleView, error) {
	custom, err := s.roles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}

	views := make([]ports.RoleView, 0, len(domain.SystemRoleNames)+len(custom))
	for _, name := range domain.SystemRoleNames {
		_, perms, _ := domain.SystemRole(name)
		views = append(views, ports.RoleView{Name: name, Permissions: perms, IsSystem: true})
	}
	for _, r := range custom {
		views = append(views, ports.RoleView{
			ID:          r.ID,
			Name:        r.Name,
			Description: r.Description,
			Permissions: r.Permissions,
			CreatedBy:   r.CreatedBy,
		})
	}
	return views, nil
}

func (s *RoleService) Get(ctx context.Context, id string) (*domain.CustomRole, error) {
	return s.roles.FindByID(ctx, id)
}

// Permissions resolves any role name, known or not.
func (s *RoleService) Permissions(ctx context.Context, roleName string) domain.ResolvedRole {
	return s.resolver.Resolve(ctx, roleName)
}

// buildPermissions starts from the employee bag and applies the overrides.
func buildPermissions(overrides map[domain.Capability]bool) (domain.Permissions, error) {
	perms := domain.EmployeePermissions
	for c, v := range overrides {
		if !isCapability(c) {
			return domain.Permissions{}, domain.NewValidationError(fmt.Sprintf("unknown permission %q", c))
		}
		perms = perms.With(c, v)
	}
	return perms, nil
}

func isCapability(c domain.Capability) bool {
	for _, known := range domain.AllCapabilities {
		if c == known {
			return true
		}
	}
	return false
}

// checkName rejects reserved names and names taken by another custom role.
func (s *RoleService) checkName(ctx context.Context, name, selfID string) error {
	if domain.IsReservedRoleName(name) {
		return domain.ErrReservedRole
	}
	existing, err := s.roles.FindByName(ctx, name)
	switch {
	case errors.Is(err, domain.ErrRoleNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("check role name: %w", err)
	case existing.ID != selfID:
		return domain.ErrRoleExists
	}
	return nil
}

func (s *RoleService) Create(ctx context.Context, actor *domain.Identity, in ports.RoleInput, meta ports.RequestMeta) (*domain.CustomRole, error) {
	if err := authorize(actor, domain.CanManageUsers); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if err := domain.ValidateRoleDefinition(name, in.Description); err != nil {
		return nil, err
	}
	perms, err := buildPermissions(in.Permissions)
	if err != nil {
		return nil, err
	}
	if err := s.checkName(ctx, name, ""); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.roles.Create(ctx, &domain.CustomRole{
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Permissions: perms,
		CreatedBy:   actor.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, err
	}

	s.resolver.Invalidate(ctx, created.Name)
	s.audit.record(actor, domain.ActionRoleCreated, domain.ResourceRole, created.ID, meta, map[string]string{"name": created.Name})
	s.logger.Info().Str("role", created.Name).Str("by", actor.Username).Msg("custom role created")
	return created, nil
}

// Update replaces the role definition. Renaming a role that users still
// reference is refused.
func (s *RoleService) Update(ctx context.Context, actor *domain.Identity, id string, in ports.RoleInput, meta ports.RequestMeta) (*domain.CustomRole, error) {
	if err := authorize(actor, domain.CanManageUsers); err != nil {
		return nil, err
	}
	role, err := s.roles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = role.Name
	}
	if err := domain.ValidateRoleDefinition(name, in.Description); err != nil {
		return nil, err
	}
	perms, err := buildPermissions(in.Permissions)
	if err != nil {
		return nil, err
	}

	oldName := role.Name
	if name != oldName {
		if err := s.checkName(ctx, name, role.ID); err != nil {
			return nil, err
		}
		if err := s.ensureUnused(ctx, oldName); err != nil {
			return nil, err
		}
	}

	role.Name = name
	role.Description = strings.TrimSpace(in.Description)
	role.Permissions = perms
	role.UpdatedAt = time.Now().UTC()

	updated, err := s.roles.Update(ctx, role)
	if err != nil {
		return nil, err
	}

	s.resolver.Invalidate(ctx, oldName)
	s.resolver.Invalidate(ctx, updated.Name)
	s.audit.record(actor, domain.ActionRoleUpdated, domain.ResourceRole, updated.ID, meta, map[string]string{"name": updated.Name})
	return updated, nil
}

func (s *RoleService) ensureUnused(ctx context.Context, name string) error {
	n, err := s.users.CountByRole(ctx, name)
	if err != nil {
		return fmt.Errorf("count role users: %w", err)
	}
	if n > 0 {
		return fmt.Errorf("%w: %d user(s) must be reassigned first", domain.ErrRoleInUse, n)
	}
	return nil
}

// Delete removes a custom role nobody is assigned to.
func (s *RoleService) Delete(ctx context.Context, actor *domain.Identity, id string, meta ports.RequestMeta) error {
	if err := authorize(actor, domain.CanManageUsers); err != nil {
		return err
	}
	role, err := s.roles.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.ensureUnused(ctx, role.Name); err != nil {
		return err
	}
	if err := s.roles.Delete(ctx, role.ID); err != nil {
		return fmt.Errorf("delete role: %w", err)
	}

	s.resolver.Invalidate(ctx, role.Name)
	s.audit.record(actor, domain.ActionRoleDeleted, domain.ResourceRole, role.ID, meta, map[string]string{"name": role.Name})
	s.logger.Info().Str("role", role.Name).Str("by", actor.Username).Msg("custom role deleted")
	return nil
}
