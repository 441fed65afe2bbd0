package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/adsc/report-system/internal/core/analytics"
	"github.com/adsc/report-system/internal/core/domain"
	"github.com/adsc/report-system/internal/core/ports"
)

// GoalService keeps per-user profit goals and measures them against the
// reports the user can read.
type GoalService struct {
	goals   ports.GoalRepository
	reports ports.ReportService
	now     func() time.Time
}

func NewGoalService(goals ports.GoalRepository, reports ports.ReportService) *GoalService {
	return &GoalService{goals: goals, reports: reports, now: time.Now}
}

func (s *GoalService) List(ctx context.Context, identity *domain.Identity) ([]domain.Goal, error) {
	if err := authorize(identity, domain.CanViewReports); err != nil {
		return nil, err
	}
	goals, err := s.goals.ListByOwner(ctx, identity.ID)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	return goals, nil
}

func (s *GoalService) Create(ctx context.Context, identity *domain.Identity, in ports.GoalInput) (*domain.Goal, error) {
	if err := authorize(identity, domain.CanViewReports); err != nil {
		return nil, err
	}
	verr := domain.NewValidationError()
	name := strings.TrimSpace(in.Name)
	if name == "" {
		verr.Add("name is required")
	}
	if !in.Type.Valid() {
		verr.Add("type must be one of: daily weekly monthly")
	}
	if in.Target <= 0 {
		verr.Add("target must be greater than 0")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	return s.goals.Create(ctx, &domain.Goal{
		Name:      name,
		Type:      in.Type,
		Target:    in.Target,
		CreatedBy: identity.ID,
		CreatedAt: s.now().UTC(),
	})
}

func (s *GoalService) Delete(ctx context.Context, identity *domain.Identity, id string) error {
	if err := authorize(identity, domain.CanViewReports); err != nil {
		return err
	}
	goal, err := s.goals.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if goal.CreatedBy != identity.ID {
		return domain.ErrForbidden
	}
	return s.goals.Delete(ctx, goal.ID)
}

// Progress evaluates every goal of the identity at the current time.
func (s *GoalService) Progress(ctx context.Context, identity *domain.Identity) ([]ports.GoalStatus, error) {
	goals, err := s.List(ctx, identity)
	if err != nil {
		return nil, err
	}
	reports, err := s.reports.List(ctx, identity, analytics.Query{})
	if err != nil {
		return nil, err
	}

	now := s.now()
	out := make([]ports.GoalStatus, 0, len(goals))
	for _, g := range goals {
		out = append(out, ports.GoalStatus{Goal: g, Progress: analytics.GoalProgress(g.Type, g.Target, reports, now)})
	}
	return out, nil
}
