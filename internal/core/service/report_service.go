package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/adsc/report-system/internal/core/analytics"
	"github.com/adsc/report-system/internal/core/domain"
	"github.com/adsc/report-system/internal/core/ports"
)

// ReportService owns the report lifecycle. Totals are always derived from the
// line items here; whatever the client sent is discarded.
type ReportService struct {
	repo   ports.ReportRepository
	roles  ports.RoleRepository
	audit  auditor
	logger zerolog.Logger
	now    func() time.Time
}

func NewReportService(repo ports.ReportRepository, roles ports.RoleRepository, recorder ports.ActivityRecorder, logger zerolog.Logger) *ReportService {
	return &ReportService{
		repo:   repo,
		roles:  roles,
		audit:  newAuditor(recorder),
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// prepare normalises line items, recomputes totals and validates the draft.
func (s *ReportService) prepare(draft *domain.Report) error {
	draft.Date = strings.TrimSpace(draft.Date)
	draft.Services = normaliseItems(draft.Services)
	draft.Expenses = normaliseItems(draft.Expenses)

	claimed := draft.TotalServices != 0 || draft.TotalExpenses != 0 || draft.NetProfit != 0
	sent := [3]domain.Money{draft.TotalServices, draft.TotalExpenses, draft.NetProfit}
	if draft.Recompute() && claimed {
		s.logger.Warn().
			Str("date", draft.Date).
			Str("claimed_services", sent[0].String()).
			Str("claimed_expenses", sent[1].String()).
			Str("claimed_profit", sent[2].String()).
			Str("net_profit", draft.NetProfit.String()).
			Msg("client totals disagree with line items, using recomputed totals")
	}
	return draft.Validate()
}

func normaliseItems(items []domain.LineItem) []domain.LineItem {
	out := make([]domain.LineItem, 0, len(items))
	for _, it := range items {
		it.Name = strings.TrimSpace(it.Name)
		if it.ID == "" {
			it.ID = uuid.NewString()
		}
		out = append(out, it)
	}
	return out
}

func (s *ReportService) Create(ctx context.Context, identity *domain.Identity, draft domain.Report, meta ports.RequestMeta) (*domain.Report, error) {
	if err := authorize(identity, domain.CanCreateReports); err != nil {
		return nil, err
	}
	if err := s.prepare(&draft); err != nil {
		return nil, err
	}

	now := s.now()
	draft.ID = ""
	draft.CreatedBy = identity.ID
	draft.CreatedByUsername = identity.Username
	draft.CreatedAt = now
	draft.UpdatedAt = now

	created, err := s.repo.Create(ctx, &draft)
	if err != nil {
		return nil, fmt.Errorf("create report: %w", err)
	}

	s.audit.record(identity, domain.ActionReportCreated, domain.ResourceReport, created.ID, meta, map[string]string{"date": created.Date})
	s.logger.Info().Str("report_id", created.ID).Str("date", created.Date).Str("user", identity.Username).Msg("report created")
	return created, nil
}

// Get returns a report the identity may read.
func (s *ReportService) Get(ctx context.Context, identity *domain.Identity, id string, meta ports.RequestMeta) (*domain.Report, error) {
	if err := authorize(identity, domain.CanViewReports); err != nil {
		return nil, err
	}
	r, err := s.findReadable(ctx, identity, id)
	if err != nil {
		return nil, err
	}
	s.audit.record(identity, domain.ActionReportViewed, domain.ResourceReport, r.ID, meta, nil)
	return r, nil
}

// Read returns a readable report without recording a view.
func (s *ReportService) Read(ctx context.Context, identity *domain.Identity, id string) (*domain.Report, error) {
	if err := authorize(identity, domain.CanViewReports); err != nil {
		return nil, err
	}
	return s.findReadable(ctx, identity, id)
}

func (s *ReportService) findReadable(ctx context.Context, identity *domain.Identity, id string) (*domain.Report, error) {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !identity.CanRead(r) {
		return nil, domain.ErrForbidden
	}
	return r, nil
}

// ownedFilter narrows filter to the identity's own reports unless it may read
// every report.
func ownedFilter(identity *domain.Identity, filter domain.ReportFilter) domain.ReportFilter {
	if !identity.SeesAllReports() {
		filter.CreatedBy = identity.ID
	}
	return filter
}

// scope keeps only the reports the identity may read.
func scope(identity *domain.Identity, reports []domain.Report) []domain.Report {
	if identity.SeesAllReports() {
		return reports
	}
	out := make([]domain.Report, 0, len(reports))
	for i := range reports {
		if identity.CanRead(&reports[i]) {
			out = append(out, reports[i])
		}
	}
	return out
}

func (s *ReportService) readable(ctx context.Context, identity *domain.Identity, filter domain.ReportFilter) ([]domain.Report, error) {
	if err := authorize(identity, domain.CanViewReports); err != nil {
		return nil, err
	}
	reports, err := s.repo.List(ctx, ownedFilter(identity, filter))
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return scope(identity, reports), nil
}

func (s *ReportService) List(ctx context.Context, identity *domain.Identity, query analytics.Query) ([]domain.Report, error) {
	reports, err := s.readable(ctx, identity, domain.ReportFilter{DateFrom: query.DateFrom, DateTo: query.DateTo})
	if err != nil {
		return nil, err
	}
	return query.Apply(reports), nil
}

func (s *ReportService) ListByDate(ctx context.Context, identity *domain.Identity, date string) ([]domain.Report, error) {
	if _, err := time.Parse(domain.DateLayout, date); err != nil {
		return nil, domain.NewValidationError("date must be YYYY-MM-DD")
	}
	return s.readable(ctx, identity, domain.ReportFilter{Date: date})
}

// Update replaces the report's date, line items and payments.
func (s *ReportService) Update(ctx context.Context, identity *domain.Identity, id string, draft domain.Report, meta ports.RequestMeta) (*domain.Report, error) {
	if err := authorize(identity, domain.CanEditReports); err != nil {
		return nil, err
	}
	existing, err := s.findReadable(ctx, identity, id)
	if err != nil {
		return nil, err
	}
	if err := s.prepare(&draft); err != nil {
		return nil, err
	}

	existing.Date = draft.Date
	existing.Services = draft.Services
	existing.Expenses = draft.Expenses
	existing.OnlinePayment = draft.OnlinePayment
	existing.CashPayment = draft.CashPayment
	existing.Recompute()
	existing.UpdatedAt = s.now()

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, fmt.Errorf("update report: %w", err)
	}
	s.audit.record(identity, domain.ActionReportUpdated, domain.ResourceReport, updated.ID, meta, map[string]string{"date": updated.Date})
	return updated, nil
}

func (s *ReportService) Delete(ctx context.Context, identity *domain.Identity, id string, meta ports.RequestMeta) error {
	if err := authorize(identity, domain.CanDeleteReports); err != nil {
		return err
	}
	r, err := s.findReadable(ctx, identity, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, r.ID); err != nil {
		return fmt.Errorf("delete report: %w", err)
	}
	s.audit.record(identity, domain.ActionReportDeleted, domain.ResourceReport, r.ID, meta, map[string]string{"date": r.Date})
	s.logger.Info().Str("report_id", r.ID).Str("user", identity.Username).Msg("report deleted")
	return nil
}

// BulkRestore recreates reports from a backup, owned by the restoring user.
// Invalid entries are reported per date and do not stop the batch.
func (s *ReportService) BulkRestore(ctx context.Context, identity *domain.Identity, drafts []domain.Report, meta ports.RequestMeta) (*ports.RestoreResult, error) {
	if err := authorize(identity, domain.CanBackupRestore); err != nil {
		return nil, err
	}
	if len(drafts) == 0 {
		return nil, domain.NewValidationError("no reports to restore")
	}

	result := &ports.RestoreResult{Success: true, Total: len(drafts), Errors: []ports.RestoreError{}}
	for _, draft := range drafts {
		if err := s.prepare(&draft); err != nil {
			result.Errors = append(result.Errors, ports.RestoreError{Date: draft.Date, Error: err.Error()})
			continue
		}
		now := s.now()
		draft.ID = ""
		draft.CreatedBy = identity.ID
		draft.CreatedByUsername = identity.Username
		if draft.CreatedAt.IsZero() {
			draft.CreatedAt = now
		}
		draft.UpdatedAt = now

		if _, err := s.repo.Create(ctx, &draft); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, fmt.Errorf("bulk restore: %w", ctxErr)
			}
			result.Errors = append(result.Errors, ports.RestoreError{Date: draft.Date, Error: err.Error()})
			continue
		}
		result.Restored++
	}

	s.audit.record(identity, domain.ActionReportsRestored, domain.ResourceReport, "", meta, map[string]string{
		"totalReports": strconv.Itoa(result.Total),
		"successCount": strconv.Itoa(result.Restored),
		"errorCount":   strconv.Itoa(len(result.Errors)),
	})
	s.logger.Info().Int("restored", result.Restored).Int("total", result.Total).Msg("bulk restore finished")
	return result, nil
}

// Export builds a backup. Holders of the backup capability get every report
// and the custom roles; holders of the export capability get their readable
// reports only.
func (s *ReportService) Export(ctx context.Context, identity *domain.Identity, meta ports.RequestMeta) (*ports.Backup, error) {
	full := identity.Can(domain.CanBackupRestore)
	if !full {
		if err := authorize(identity, domain.CanExportData); err != nil {
			return nil, err
		}
	}

	backup := &ports.Backup{Version: ports.BackupVersion, ExportDate: s.now().Format(time.RFC3339)}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		reports, err := s.repo.List(gctx, ownedFilter(identity, domain.ReportFilter{}))
		if err != nil {
			return fmt.Errorf("export reports: %w", err)
		}
		backup.Reports = scope(identity, reports)
		return nil
	})
	if full {
		g.Go(func() error {
			roles, err := s.roles.List(gctx)
			if err != nil {
				return fmt.Errorf("export roles: %w", err)
			}
			backup.CustomRoles = roles
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.audit.record(identity, domain.ActionReportExported, domain.ResourceReport, "", meta, map[string]string{
		"count": strconv.Itoa(len(backup.Reports)),
	})
	return backup, nil
}
