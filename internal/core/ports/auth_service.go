package ports

import (
	"context"

	"github.com/adsc/report-system/internal/core/domain"
)

// AdminSeed describes the bootstrap administrator.
type AdminSeed struct {
	Username string
	Password string
	Email    string
}

type AuthService interface {
	Login(ctx context.Context, username, password string, meta RequestMeta) (string, *domain.User, error)
	Logout(ctx context.Context, identity *domain.Identity, meta RequestMeta)
	ChangePassword(ctx context.Context, identity *domain.Identity, current, next string, meta RequestMeta) error
	// EnsureAdmin creates the bootstrap admin when it does not exist yet.
	EnsureAdmin(ctx context.Context, seed AdminSeed) (user *domain.User, created bool, err error)
}
