package ports

import (
	"context"

	"github.com/adsc/report-system/internal/core/domain"
)

// ActivityRepository is append-only: entries are never updated or removed.
type ActivityRepository interface {
	Insert(ctx context.Context, entry *domain.ActivityLog) error
	// List returns entries newest first, bounded by filter.Limit.
	List(ctx context.Context, filter domain.ActivityFilter) ([]domain.ActivityLog, error)
}
