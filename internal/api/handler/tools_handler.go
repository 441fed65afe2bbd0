package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/adsc/report-system/internal/api/metrics"
	"github.com/adsc/report-system/internal/core/analytics"
	"github.com/adsc/report-system/internal/core/domain"
)

// ToolsHandler serves stateless calculators.
type ToolsHandler struct{}

func NewToolsHandler() *ToolsHandler {
	return &ToolsHandler{}
}

// goalSeekRequest selects formula mode when Formula is set and simple mode
// ("base op x = goal") otherwise.
type goalSeekRequest struct {
	Formula  string   `json:"formula" example:"x * 25 - 300"`
	Variable string   `json:"variable" example:"x"`
	Target   *float64 `json:"target"`

	Base *float64 `json:"base"`
	Op   string   `json:"op" example:"*"`
	Goal *float64 `json:"goal"`
}

type goalSeekResponse struct {
	Found      bool    `json:"found"`
	Mode       string  `json:"mode"`
	X          float64 `json:"x"`
	FX         float64 `json:"fx"`
	Iterations int     `json:"iterations,omitempty"`
}

// GoalSeek handles POST /api/tools/goal-seek. A search that does not converge
// is a normal answer with found=false.
//
// @Summary      Goal seek
// @Description  Solves formula(x) = target by Newton-Raphson, or base op x = goal directly.
// @Tags         tools
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      goalSeekRequest  true  "Formula or simple equation"
// @Success      200   {object}  goalSeekResponse
// @Failure      422   {object}  errorBody
// @Router       /api/tools/goal-seek [post]
func (h *ToolsHandler) GoalSeek(c echo.Context) error {
	var req goalSeekRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	var (
		resp goalSeekResponse
		err  error
	)
	if strings.TrimSpace(req.Formula) != "" {
		resp, err = seekFormula(req)
	} else {
		resp, err = seekSimple(req)
	}
	if err != nil {
		return err
	}

	result := "not_found"
	if resp.Found {
		result = "found"
	}
	metrics.GoalSeekTotal.WithLabelValues(resp.Mode, result).Inc()
	return c.JSON(http.StatusOK, resp)
}

func seekFormula(req goalSeekRequest) (goalSeekResponse, error) {
	variable := strings.TrimSpace(req.Variable)
	if variable == "" {
		variable = "x"
	}
	verr := domain.NewValidationError()
	if !analytics.ValidVariable(variable) {
		verr.Add("variable must be a single identifier")
	}
	if req.Target == nil {
		verr.Add("target is required")
	}
	if err := verr.OrNil(); err != nil {
		return goalSeekResponse{}, err
	}

	f, err := analytics.ParseFormula(req.Formula, variable)
	if err != nil {
		return goalSeekResponse{}, err
	}
	resp := goalSeekResponse{Mode: "formula"}
	sol, ok := analytics.SolveForTarget(f, *req.Target)
	if !ok {
		return resp, nil
	}
	metrics.GoalSeekIterations.Observe(float64(sol.Iterations))
	resp.Found = true
	resp.X, resp.FX, resp.Iterations = sol.X, sol.FX, sol.Iterations
	return resp, nil
}

func seekSimple(req goalSeekRequest) (goalSeekResponse, error) {
	verr := domain.NewValidationError()
	if req.Base == nil {
		verr.Add("base is required")
	}
	if req.Goal == nil {
		verr.Add("goal is required")
	}
	switch analytics.Operator(req.Op) {
	case analytics.OpAdd, analytics.OpSub, analytics.OpMul, analytics.OpDiv:
	default:
		verr.Add("op must be one of: + - * /")
	}
	if err := verr.OrNil(); err != nil {
		return goalSeekResponse{}, err
	}

	resp := goalSeekResponse{Mode: "simple"}
	x, ok := analytics.SolveSimple(*req.Base, analytics.Operator(req.Op), *req.Goal)
	if !ok {
		return resp, nil
	}
	resp.Found = true
	resp.X, resp.FX = x, *req.Goal
	return resp, nil
}
