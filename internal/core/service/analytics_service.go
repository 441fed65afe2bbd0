package service

import (
	"context"

	"github.com/adsc/report-system/internal/core/analytics"
	"github.com/adsc/report-system/internal/core/domain"
	"github.com/adsc/report-system/internal/core/ports"
)

// DefaultTrendPoints bounds the dashboard timeline.
const DefaultTrendPoints = 30

// AnalyticsService computes dashboard figures over the reports an identity
// may read.
type AnalyticsService struct {
	reports ports.ReportService
}

func NewAnalyticsService(reports ports.ReportService) *AnalyticsService {
	return &AnalyticsService{reports: reports}
}

func (s *AnalyticsService) Summary(ctx context.Context, identity *domain.Identity, query analytics.Query) (*analytics.Summary, error) {
	reports, err := s.reports.List(ctx, identity, query)
	if err != nil {
		return nil, err
	}
	summary := analytics.Summarize(reports, DefaultTrendPoints)
	return &summary, nil
}

// Compare diffs reportID against baselineID.
func (s *AnalyticsService) Compare(ctx context.Context, identity *domain.Identity, reportID, baselineID string) (*analytics.Comparison, error) {
	if reportID == "" || baselineID == "" {
		return nil, domain.NewValidationError("both report ids are required")
	}
	r, err := s.reports.Read(ctx, identity, reportID)
	if err != nil {
		return nil, err
	}
	base, err := s.reports.Read(ctx, identity, baselineID)
	if err != nil {
		return nil, err
	}
	c := analytics.Compare(*r, *base)
	return &c, nil
}
