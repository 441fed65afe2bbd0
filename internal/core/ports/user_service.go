package ports

import (
	"context"

	"github.com/adsc/report-system/internal/core/domain"
)

type CreateUserInput struct {
	Username string
	Password string
	Email    string
	Role     string
}

// UpdateUserInput carries optional changes; nil fields are left untouched.
type UpdateUserInput struct {
	Email    *string
	Role     *string
	IsActive *bool
	Password *string
}

type UserService interface {
	List(ctx context.Context) ([]domain.User, error)
	Create(ctx context.Context, actor *domain.Identity, input CreateUserInput, meta RequestMeta) (*domain.User, error)
	Update(ctx context.Context, actor *domain.Identity, id string, input UpdateUserInput, meta RequestMeta) (*domain.User, error)
	Delete(ctx context.Context, actor *domain.Identity, id string, meta RequestMeta) error
}
