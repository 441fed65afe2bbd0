package ports

import (
	"context"

	"github.com/adsc/report-system/internal/core/domain"
)

type GoalRepository interface {
	Create(ctx context.Context, goal *domain.Goal) (*domain.Goal, error)
	FindByID(ctx context.Context, id string) (*domain.Goal, error)
	ListByOwner(ctx context.Context, userID string) ([]domain.Goal, error)
	Delete(ctx context.Context, id string) error
}
