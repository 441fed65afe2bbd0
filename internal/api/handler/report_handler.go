package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/adsc/report-system/internal/api/metrics"
	"github.com/adsc/report-system/internal/core/domain"
	"github.com/adsc/report-system/internal/core/ports"
)

// ReportHandler handles HTTP requests for daily reports, backups and restores.
type ReportHandler struct {
	service ports.ReportService
}

func NewReportHandler(service ports.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// List handles GET /api/reports.
//
// @Summary      List reports
// @Description  Employees only see their own reports.
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        dateFrom  query     string  false  "Lower date bound (YYYY-MM-DD)"
// @Param        dateTo    query     string  false  "Upper date bound (YYYY-MM-DD)"
// @Param        outcome   query     string  false  "profit or loss"
// @Param        search    query     string  false  "Match on date or line item names"
// @Param        sortBy    query     string  false  "date, profit or revenue"
// @Param        order     query     string  false  "asc or desc"
// @Success      200       {object}  reportListResponse
// @Failure      401       {object}  errorBody
// @Failure      403       {object}  errorBody
// @Failure      422       {object}  errorBody
// @Router       /api/reports [get]
func (h *ReportHandler) List(c echo.Context) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	var req reportQueryRequest
	if err := bindQuery(c, &req); err != nil {
		return err
	}

	reports, err := h.service.List(c.Request().Context(), identity, toQuery(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toReportList(reports))
}

// Get handles GET /api/reports/:id.
//
// @Summary      Get a report
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Report id"
// @Success      200  {object}  reportResponse
// @Failure      403  {object}  errorBody
// @Failure      404  {object}  errorBody
// @Router       /api/reports/{id} [get]
func (h *ReportHandler) Get(c echo.Context) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	r, err := h.service.Get(c.Request().Context(), identity, c.Param("id"), requestMeta(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toReportResponse(r))
}

// ByDate handles GET /api/reports/date/:date.
//
// @Summary      List reports of one day
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        date  path      string  true  "Day (YYYY-MM-DD)"
// @Success      200   {object}  reportListResponse
// @Failure      422   {object}  errorBody
// @Router       /api/reports/date/{date} [get]
func (h *ReportHandler) ByDate(c echo.Context) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	reports, err := h.service.ListByDate(c.Request().Context(), identity, c.Param("date"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toReportList(reports))
}

// Create handles POST /api/reports.
//
// @Summary      Create a report
// @Description  Totals are recomputed from the line items.
// @Tags         reports
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      reportRequest  true  "Report"
// @Success      201   {object}  reportResponse
// @Failure      400   {object}  errorBody
// @Failure      422   {object}  errorBody
// @Router       /api/reports [post]
func (h *ReportHandler) Create(c echo.Context) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	var req reportRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	created, err := h.service.Create(c.Request().Context(), identity, toReportDraft(req), requestMeta(c))
	if err != nil {
		return err
	}
	metrics.ReportsMutationsTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, toReportResponse(created))
}

// Update handles PUT /api/reports/:id.
//
// @Summary      Update a report
// @Tags         reports
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Report id"
// @Param        body  body      reportRequest  true  "Report"
// @Success      200   {object}  reportResponse
// @Failure      403   {object}  errorBody
// @Failure      404   {object}  errorBody
// @Failure      422   {object}  errorBody
// @Router       /api/reports/{id} [put]
func (h *ReportHandler) Update(c echo.Context) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	var req reportRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	updated, err := h.service.Update(c.Request().Context(), identity, c.Param("id"), toReportDraft(req), requestMeta(c))
	if err != nil {
		return err
	}
	metrics.ReportsMutationsTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, toReportResponse(updated))
}

// Delete handles DELETE /api/reports/:id.
//
// @Summary      Delete a report
// @Tags         reports
// @Security     BearerAuth
// @Param        id   path  string  true  "Report id"
// @Success      204
// @Failure      403  {object}  errorBody
// @Failure      404  {object}  errorBody
// @Router       /api/reports/{id} [delete]
func (h *ReportHandler) Delete(c echo.Context) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), identity, c.Param("id"), requestMeta(c)); err != nil {
		return err
	}
	metrics.ReportsMutationsTotal.WithLabelValues("delete").Inc()
	return c.NoContent(http.StatusNoContent)
}

// BulkRestore handles POST /api/reports/bulk-restore.
//
// @Summary      Restore reports from a backup
// @Description  Restored reports are owned by the caller. Invalid entries are reported and skipped.
// @Tags         backup
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      restoreRequest  true  "Reports to restore"
// @Success      200   {object}  ports.RestoreResult
// @Failure      403   {object}  errorBody
// @Failure      422   {object}  errorBody
// @Router       /api/reports/bulk-restore [post]
func (h *ReportHandler) BulkRestore(c echo.Context) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	var req restoreRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	result, err := h.service.BulkRestore(c.Request().Context(), identity, toReportDrafts(req.Reports), requestMeta(c))
	if err != nil {
		return err
	}
	metrics.ReportsMutationsTotal.WithLabelValues("restore").Add(float64(result.Restored))
	return c.JSON(http.StatusOK, result)
}

// Backup handles GET /api/backup and GET /api/reports/export. The content
// depends on the caller: a full backup with custom roles for holders of the
// backup capability, the readable reports otherwise.
//
// @Summary      Export reports
// @Tags         backup
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.Backup
// @Failure      403  {object}  errorBody
// @Router       /api/backup [get]
// @Router       /api/reports/export [get]
func (h *ReportHandler) Backup(c echo.Context) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	backup, err := h.service.Export(c.Request().Context(), identity, requestMeta(c))
	if err != nil {
		return err
	}

	prefix := "reports"
	if identity.Can(domain.CanBackupRestore) {
		prefix = "backup"
	}
	filename := fmt.Sprintf("%s-%s.json", prefix, time.Now().UTC().Format(domain.DateLayout))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.JSON(http.StatusOK, backup)
}
