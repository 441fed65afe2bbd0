package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/adsc/report-system/internal/api/middleware"
	"github.com/adsc/report-system/internal/core/domain"
	"github.com/adsc/report-system/internal/core/ports"
)

// currentIdentity returns the identity resolved by the Identity middleware.
// Routes are mounted behind RequireCapability, so a missing identity means the
// middleware chain was misconfigured; it is still answered with 401.
func currentIdentity(c echo.Context) (*domain.Identity, error) {
	id := middleware.CurrentIdentity(c)
	if id == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return id, nil
}

// requestMeta captures the client details recorded on activity entries.
func requestMeta(c echo.Context) ports.RequestMeta {
	return ports.RequestMeta{
		IPAddress: c.RealIP(),
		UserAgent: c.Request().UserAgent(),
	}
}

// bindAndValidate decodes the request into req and runs the echo validator.
// Decoding failures are answered with 400 before validation runs, except
// field values rejected by their own decoder, which surface as validation
// errors.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			return verr
		}
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if c.Echo().Validator == nil {
		return nil
	}
	return c.Validate(req)
}

type messageResponse struct {
	Message string `json:"message"`
}

// errorBody documents the error envelope rendered by the central error handler.
type errorBody struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// bindQuery decodes query parameters into req and validates them.
func bindQuery(c echo.Context, req any) error {
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}
	if c.Echo().Validator == nil {
		return nil
	}
	return c.Validate(req)
}
