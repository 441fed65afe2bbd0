package ports

import (
	"context"

	"github.com/adsc/report-system/internal/core/domain"
)

// ReportRepository persists reports. List returns reports newest date first.
type ReportRepository interface {
	Create(ctx context.Context, r *domain.Report) (*domain.Report, error)
	FindByID(ctx context.Context, id string) (*domain.Report, error)
	List(ctx context.Context, filter domain.ReportFilter) ([]domain.Report, error)
	// Update replaces every mutable field of the report.
	Update(ctx context.Context, r *domain.Report) (*domain.Report, error)
	Delete(ctx context.Context, id string) error
}
