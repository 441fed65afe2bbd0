package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/adsc/report-system/internal/core/domain"
	"github.com/adsc/report-system/internal/core/ports"
)

// ActivityService persists and lists audit entries.
type ActivityService struct {
	repo   ports.ActivityRepository
	logger zerolog.Logger
}

func NewActivityService(repo ports.ActivityRepository, logger zerolog.Logger) *ActivityService {
	return &ActivityService{repo: repo, logger: logger}
}

// Write stores one entry. Unknown actions are rejected.
func (s *ActivityService) Write(ctx context.Context, entry domain.ActivityLog) error {
	if !entry.Action.Valid() {
		return domain.NewValidationError(fmt.Sprintf("unknown activity action %q", entry.Action))
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	if err := s.repo.Insert(ctx, &entry); err != nil {
		return fmt.Errorf("write activity: %w", err)
	}
	return nil
}

// List returns entries newest first. The limit defaults to 100 and is capped.
func (s *ActivityService) List(ctx context.Context, filter domain.ActivityFilter) ([]domain.ActivityLog, error) {
	switch {
	case filter.Limit <= 0:
		filter.Limit = domain.DefaultActivityLimit
	case filter.Limit > domain.MaxActivityLimit:
		filter.Limit = domain.MaxActivityLimit
	}
	logs, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	return logs, nil
}

// auditor stamps and hands entries to the async recorder.
type auditor struct {
	recorder ports.ActivityRecorder
}

type discardRecorder struct{}

func (discardRecorder) Record(domain.ActivityLog) {}

// newAuditor wraps recorder. A nil interface discards entries; a typed nil
// pointer is not detected and must not be passed.
func newAuditor(recorder ports.ActivityRecorder) auditor {
	if recorder == nil {
		recorder = discardRecorder{}
	}
	return auditor{recorder: recorder}
}

func (a auditor) record(actor *domain.Identity, action domain.ActivityAction, resourceType, resourceID string, meta ports.RequestMeta, metadata map[string]string) {
	if a.recorder == nil {
		return
	}
	entry := domain.ActivityLog{
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Metadata:     metadata,
		IPAddress:    meta.IPAddress,
		UserAgent:    meta.UserAgent,
		Timestamp:    time.Now().UTC(),
	}
	if actor != nil {
		entry.UserID = actor.ID
		entry.Username = actor.Username
	}
	a.recorder.Record(entry)
}
