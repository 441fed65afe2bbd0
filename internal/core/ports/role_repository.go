package ports

import (
	"context"

	"github.com/adsc/report-system/internal/core/domain"
)

// RoleRepository persists custom roles. Name lookups are case-insensitive.
type RoleRepository interface {
	Create(ctx context.Context, role *domain.CustomRole) (*domain.CustomRole, error)
	FindByID(ctx context.Context, id string) (*domain.CustomRole, error)
	FindByName(ctx context.Context, name string) (*domain.CustomRole, error)
	List(ctx context.Context) ([]domain.CustomRole, error)
	Update(ctx context.Context, role *domain.CustomRole) (*domain.CustomRole, error)
	Delete(ctx context.Context, id string) error
}
