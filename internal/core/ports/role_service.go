package ports

import (
	"context"

	"github.com/adsc/report-system/internal/core/domain"
)

// RoleInput defines a custom role. Capabilities missing from Permissions take
// the employee default.
type RoleInput struct {
	Name        string
	Description string
	Permissions map[domain.Capability]bool
}

// RoleView is a system or custom role as listed to administrators.
type RoleView struct {
	ID          string             `json:"id,omitempty"`
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Permissions domain.Permissions `json:"permissions"`
	IsSystem    bool               `json:"isSystem"`
	CreatedBy   string             `json:"createdBy,omitempty"`
}

type RoleService interface {
	List(ctx context.Context) ([]RoleView, error)
	Get(ctx context.Context, id string) (*domain.CustomRole, error)
	Create(ctx context.Context, actor *domain.Identity, input RoleInput, meta RequestMeta) (*domain.CustomRole, error)
	Update(ctx context.Context, actor *domain.Identity, id string, input RoleInput, meta RequestMeta) (*domain.CustomRole, error)
	Delete(ctx context.Context, actor *domain.Identity, id string, meta RequestMeta) error
	Permissions(ctx context.Context, roleName string) domain.ResolvedRole
}
