package ports

import (
	"context"

	"github.com/adsc/report-system/internal/core/analytics"
	"github.com/adsc/report-system/internal/core/domain"
)

// RestoreError names a report that could not be restored.
type RestoreError struct {
	Date  string `json:"date"`
	Error string `json:"error"`
}

// RestoreResult summarises a bulk restore.
type RestoreResult struct {
	Success  bool           `json:"success"`
	Restored int            `json:"restored"`
	Total    int            `json:"total"`
	Errors   []RestoreError `json:"errors"`
}

// BackupVersion is written to every export.
const BackupVersion = "1.0"

// Backup is an export of reports and custom roles.
type Backup struct {
	Version     string              `json:"version"`
	ExportDate  string              `json:"exportDate"`
	Reports     []domain.Report     `json:"reports"`
	CustomRoles []domain.CustomRole `json:"customRoles,omitempty"`
}

// ReportService applies authorization scoping and keeps totals derived.
type ReportService interface {
	Create(ctx context.Context, identity *domain.Identity, draft domain.Report, meta RequestMeta) (*domain.Report, error)
	Get(ctx context.Context, identity *domain.Identity, id string, meta RequestMeta) (*domain.Report, error)
	// Read is Get without the activity entry, for derived views.
	Read(ctx context.Context, identity *domain.Identity, id string) (*domain.Report, error)
	List(ctx context.Context, identity *domain.Identity, query analytics.Query) ([]domain.Report, error)
	ListByDate(ctx context.Context, identity *domain.Identity, date string) ([]domain.Report, error)
	Update(ctx context.Context, identity *domain.Identity, id string, draft domain.Report, meta RequestMeta) (*domain.Report, error)
	Delete(ctx context.Context, identity *domain.Identity, id string, meta RequestMeta) error
	BulkRestore(ctx context.Context, identity *domain.Identity, drafts []domain.Report, meta RequestMeta) (*RestoreResult, error)
	Export(ctx context.Context, identity *domain.Identity, meta RequestMeta) (*Backup, error)
}
