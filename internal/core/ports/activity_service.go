package ports

import (
	"context"

	"github.com/adsc/report-system/internal/core/domain"
)

// ActivityService writes and reads the audit trail.
type ActivityService interface {
	Write(ctx context.Context, entry domain.ActivityLog) error
	List(ctx context.Context, filter domain.ActivityFilter) ([]domain.ActivityLog, error)
}
