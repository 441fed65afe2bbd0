package ports

import (
	"context"
	"time"

	"github.com/adsc/report-system/internal/core/domain"
)

// UserRepository defines persistence for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	// CountByRole counts users whose role equals name exactly.
	CountByRole(ctx context.Context, name string) (int64, error)
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
}
