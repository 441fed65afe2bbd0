package ports

import (
	"context"

	"github.com/adsc/report-system/internal/core/analytics"
	"github.com/adsc/report-system/internal/core/domain"
)

type AnalyticsService interface {
	Summary(ctx context.Context, identity *domain.Identity, query analytics.Query) (*analytics.Summary, error)
	Compare(ctx context.Context, identity *domain.Identity, reportID, baselineID string) (*analytics.Comparison, error)
}

// GoalInput creates a goal. Target is in minor units.
type GoalInput struct {
	Name   string
	Type   domain.GoalType
	Target domain.Money
}

// GoalStatus is a goal with its current progress.
type GoalStatus struct {
	Goal     domain.Goal        `json:"goal"`
	Progress analytics.Progress `json:"progress"`
}

type GoalService interface {
	List(ctx context.Context, identity *domain.Identity) ([]domain.Goal, error)
	Create(ctx context.Context, identity *domain.Identity, input GoalInput) (*domain.Goal, error)
	Delete(ctx context.Context, identity *domain.Identity, id string) error
	Progress(ctx context.Context, identity *domain.Identity) ([]GoalStatus, error)
}
