package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/adsc/report-system/internal/core/domain"
	"github.com/adsc/report-system/internal/core/ports"
)

// AnalyticsHandler serves dashboard figures and goal tracking.
type AnalyticsHandler struct {
	analytics ports.AnalyticsService
	goals     ports.GoalService
}

func NewAnalyticsHandler(analytics ports.AnalyticsService, goals ports.GoalService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics, goals: goals}
}

// Summary handles GET /api/analytics/summary.
//
// @Summary      Analytics summary
// @Description  Totals, monthly rollup, categories, top items and trend over the readable reports.
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Param        dateFrom  query     string  false  "Lower date bound (YYYY-MM-DD)"
// @Param        dateTo    query     string  false  "Upper date bound (YYYY-MM-DD)"
// @Param        outcome   query     string  false  "profit or loss"
// @Param        search    query     string  false  "Match on date or line item names"
// @Success      200       {object}  analytics.Summary
// @Failure      422       {object}  errorBody
// @Router       /api/analytics/summary [get]
func (h *AnalyticsHandler) Summary(c echo.Context) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	var req reportQueryRequest
	if err := bindQuery(c, &req); err != nil {
		return err
	}
	summary, err := h.analytics.Summary(c.Request().Context(), identity, toQuery(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}

// Compare handles GET /api/analytics/compare?a=&b=. Report a is diffed
// against the baseline b.
//
// @Summary      Compare two reports
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Param        a    query     string  true  "Compared report id"
// @Param        b    query     string  true  "Baseline report id"
// @Success      200  {object}  analytics.Comparison
// @Failure      403  {object}  errorBody
// @Failure      404  {object}  errorBody
// @Failure      422  {object}  errorBody
// @Router       /api/analytics/compare [get]
func (h *AnalyticsHandler) Compare(c echo.Context) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	cmp, err := h.analytics.Compare(c.Request().Context(), identity, c.QueryParam("a"), c.QueryParam("b"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cmp)
}

type goalRequest struct {
	Name   string `json:"name" validate:"required,max=100"`
	Type   string `json:"type" validate:"required,oneof=daily weekly monthly"`
	Target string `json:"target" validate:"required" example:"500.00"`
}

// ListGoals handles GET /api/goals.
//
// @Summary      List goals
// @Tags         goals
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Goal
// @Router       /api/goals [get]
func (h *AnalyticsHandler) ListGoals(c echo.Context) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	goals, err := h.goals.List(c.Request().Context(), identity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, goals)
}

// CreateGoal handles POST /api/goals.
//
// @Summary      Create a goal
// @Tags         goals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      goalRequest  true  "Goal"
// @Success      201   {object}  domain.Goal
// @Failure      422   {object}  errorBody
// @Router       /api/goals [post]
func (h *AnalyticsHandler) CreateGoal(c echo.Context) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	var req goalRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	target, err := domain.ParseMoney(req.Target)
	if err != nil {
		return domain.NewValidationError("target must be a decimal amount")
	}

	goal, err := h.goals.Create(c.Request().Context(), identity, ports.GoalInput{
		Name:   req.Name,
		Type:   domain.GoalType(req.Type),
		Target: target,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, goal)
}

// DeleteGoal handles DELETE /api/goals/:id.
//
// @Summary      Delete a goal
// @Tags         goals
// @Security     BearerAuth
// @Param        id   path  string  true  "Goal id"
// @Success      204
// @Failure      403  {object}  errorBody
// @Failure      404  {object}  errorBody
// @Router       /api/goals/{id} [delete]
func (h *AnalyticsHandler) DeleteGoal(c echo.Context) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	if err := h.goals.Delete(c.Request().Context(), identity, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// GoalProgress handles GET /api/goals/progress.
//
// @Summary      Goal progress
// @Tags         goals
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  ports.GoalStatus
// @Router       /api/goals/progress [get]
func (h *AnalyticsHandler) GoalProgress(c echo.Context) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	statuses, err := h.goals.Progress(c.Request().Context(), identity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statuses)
}
