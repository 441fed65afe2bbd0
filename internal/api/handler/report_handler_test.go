package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/adsc/report-system/internal/core/analytics"
	"github.com/adsc/report-system/internal/core/domain"
	"github.com/adsc/report-system/internal/core/ports"
)

type stubReportService struct {
	createFn  func(ctx context.Context, identity *domain.Identity, draft domain.Report) (*domain.Report, error)
	getFn     func(ctx context.Context, identity *domain.Identity, id string) (*domain.Report, error)
	listFn    func(ctx context.Context, identity *domain.Identity, query analytics.Query) ([]domain.Report, error)
	deleteFn  func(ctx context.Context, identity *domain.Identity, id string) error
	restoreFn func(ctx context.Context, identity *domain.Identity, drafts []domain.Report) (*ports.RestoreResult, error)
	exportFn  func(ctx context.Context, identity *domain.Identity) (*ports.Backup, error)
}

func (s *stubReportService) Create(ctx context.Context, identity *domain.Identity, draft domain.Report, _ ports.RequestMeta) (*domain.Report, error) {
	return s.createFn(ctx, identity, draft)
}

func (s *stubReportService) Get(ctx context.Context, identity *domain.Identity, id string, _ ports.RequestMeta) (*domain.Report, error) {
	return s.getFn(ctx, identity, id)
}

func (s *stubReportService) Read(ctx context.Context, identity *domain.Identity, id string) (*domain.Report, error) {
	return s.getFn(ctx, identity, id)
}

func (s *stubReportService) List(ctx context.Context, identity *domain.Identity, query analytics.Query) ([]domain.Report, error) {
	return s.listFn(ctx, identity, query)
}

func (s *stubReportService) ListByDate(ctx context.Context, identity *domain.Identity, date string) ([]domain.Report, error) {
	return s.listFn(ctx, identity, analytics.Query{DateFrom: date, DateTo: date})
}

func (s *stubReportService) Update(ctx context.Context, identity *domain.Identity, _ string, draft domain.Report, _ ports.RequestMeta) (*domain.Report, error) {
	return s.createFn(ctx, identity, draft)
}

func (s *stubReportService) Delete(ctx context.Context, identity *domain.Identity, id string, _ ports.RequestMeta) error {
	return s.deleteFn(ctx, identity, id)
}

func (s *stubReportService) BulkRestore(ctx context.Context, identity *domain.Identity, drafts []domain.Report, _ ports.RequestMeta) (*ports.RestoreResult, error) {
	return s.restoreFn(ctx, identity, drafts)
}

func (s *stubReportService) Export(ctx context.Context, identity *domain.Identity, _ ports.RequestMeta) (*ports.Backup, error) {
	return s.exportFn(ctx, identity)
}

func TestReportHandler_List_QueryDefaults(t *testing.T) {
	var got analytics.Query
	stub := &stubReportService{
		listFn: func(_ context.Context, _ *domain.Identity, q analytics.Query) ([]domain.Report, error) {
			got = q
			return []domain.Report{{ID: "r1", Date: "2024-03-01", NetProfit: 1250}}, nil
		},
	}
	handler := NewReportHandler(stub)

	c, rec := newTestContext(http.MethodGet, "/api/reports?dateFrom=2024-03-01&outcome=profit&search=rent", "", systemIdentity("e1", domain.RoleEmployee))
	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got.DateFrom != "2024-03-01" || got.Outcome != analytics.OutcomeProfit || got.Search != "rent" {
		t.Fatalf("unexpected query: %+v", got)
	}
	if got.SortBy != analytics.SortByDate || got.Ascending {
		t.Fatalf("expected newest-first default, got %+v", got)
	}

	resp := decode(t, rec)
	items, _ := resp["items"].([]any)
	if len(items) != 1 || resp["total"] != float64(1) {
		t.Fatalf("unexpected list payload: %+v", resp)
	}
	if first := items[0].(map[string]any); first["netProfit"] != "12.50" {
		t.Fatalf("expected money as decimal string, got %v", first["netProfit"])
	}
}

func TestReportHandler_List_InvalidQuery(t *testing.T) {
	handler := NewReportHandler(&stubReportService{})

	c, _ := newTestContext(http.MethodGet, "/api/reports?outcome=break-even&dateTo=03/01/2024", "", systemIdentity("e1", domain.RoleEmployee))
	var verr *domain.ValidationError
	if err := handler.List(c); !errors.As(err, &verr) || len(verr.Fields) != 2 {
		t.Fatalf("expected two validation errors, got %v", err)
	}
}

func TestReportHandler_Create_MapsMoney(t *testing.T) {
	var draft domain.Report
	stub := &stubReportService{
		createFn: func(_ context.Context, identity *domain.Identity, d domain.Report) (*domain.Report, error) {
			draft = d
			d.ID = "r9"
			d.CreatedBy = identity.ID
			d.Recompute()
			return &d, nil
		},
	}
	handler := NewReportHandler(stub)

	body := `{"date":"2024-03-10","services":[{"name":"Haircut","amount":"150.50"},{"name":"Color","amount":49.5}],"expenses":[{"name":"Rent","amount":"100"}],"netProfit":"999"}`
	c, rec := newTestContext(http.MethodPost, "/api/reports", body, systemIdentity("e1", domain.RoleEmployee))
	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if len(draft.Services) != 2 || draft.Services[0].Amount != 15050 || draft.Services[1].Amount != 4950 {
		t.Fatalf("unexpected services: %+v", draft.Services)
	}
	if draft.NetProfit != 99900 {
		t.Fatalf("claimed totals should reach the service untouched, got %d", draft.NetProfit)
	}
	if resp := decode(t, rec); resp["netProfit"] != "100.00" || resp["createdBy"] != "e1" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestReportHandler_Create_MissingDate(t *testing.T) {
	handler := NewReportHandler(&stubReportService{})

	c, _ := newTestContext(http.MethodPost, "/api/reports", `{"services":[]}`, systemIdentity("e1", domain.RoleEmployee))
	if err := handler.Create(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestReportHandler_Create_AmountOutOfRange(t *testing.T) {
	handler := NewReportHandler(&stubReportService{})

	body := `{"date":"2024-03-10","services":[{"name":"Haircut","amount":"184467440737095516.17"}]}`
	c, _ := newTestContext(http.MethodPost, "/api/reports", body, systemIdentity("e1", domain.RoleEmployee))
	err := handler.Create(c)
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(verr.Fields) != 1 || !strings.Contains(verr.Fields[0], "out of range") {
		t.Fatalf("unexpected details %v", verr.Fields)
	}
}

func TestReportHandler_Get_ForbiddenPassesThrough(t *testing.T) {
	stub := &stubReportService{
		getFn: func(context.Context, *domain.Identity, string) (*domain.Report, error) {
			return nil, domain.ErrForbidden
		},
	}
	handler := NewReportHandler(stub)

	c, _ := newTestContext(http.MethodGet, "/api/reports/r1", "", systemIdentity("e1", domain.RoleEmployee))
	c.SetParamNames("id")
	c.SetParamValues("r1")
	if err := handler.Get(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestReportHandler_Delete(t *testing.T) {
	var deleted string
	stub := &stubReportService{
		deleteFn: func(_ context.Context, _ *domain.Identity, id string) error {
			deleted = id
			return nil
		},
	}
	handler := NewReportHandler(stub)

	c, rec := newTestContext(http.MethodDelete, "/api/reports/r7", "", systemIdentity("a1", domain.RoleAdmin))
	c.SetParamNames("id")
	c.SetParamValues("r7")
	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent || deleted != "r7" {
		t.Fatalf("expected 204 for r7, got %d for %q", rec.Code, deleted)
	}
}

func TestReportHandler_BulkRestore(t *testing.T) {
	stub := &stubReportService{
		restoreFn: func(_ context.Context, _ *domain.Identity, drafts []domain.Report) (*ports.RestoreResult, error) {
			return &ports.RestoreResult{Success: true, Restored: len(drafts), Total: len(drafts), Errors: []ports.RestoreError{}}, nil
		},
	}
	handler := NewReportHandler(stub)

	body := `{"reports":[{"date":"2024-01-01","services":[{"name":"A","amount":"1"}]},{"date":"2024-01-02"}]}`
	c, rec := newTestContext(http.MethodPost, "/api/reports/bulk-restore", body, systemIdentity("a1", domain.RoleAdmin))
	if err := handler.BulkRestore(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if resp := decode(t, rec); resp["restored"] != float64(2) {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestReportHandler_Backup_Filename(t *testing.T) {
	stub := &stubReportService{
		exportFn: func(context.Context, *domain.Identity) (*ports.Backup, error) {
			return &ports.Backup{Version: ports.BackupVersion, Reports: []domain.Report{}}, nil
		},
	}
	handler := NewReportHandler(stub)

	c, rec := newTestContext(http.MethodGet, "/api/backup", "", systemIdentity("a1", domain.RoleAdmin))
	if err := handler.Backup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, `filename="backup-`) {
		t.Fatalf("unexpected Content-Disposition %q", cd)
	}

	c, rec = newTestContext(http.MethodGet, "/api/reports/export", "", systemIdentity("e1", domain.RoleEmployee))
	if err := handler.Backup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, `filename="reports-`) {
		t.Fatalf("unexpected Content-Disposition %q", cd)
	}
}
