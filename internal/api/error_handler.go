package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/adsc/report-system/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>", "details": [...]}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, middleware rejections)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return http.StatusUnprocessableEntity, errorResponse{Error: "validation failed", Details: verr.Fields}
	}

	if code, ok := statusFor(err); ok {
		return code, errorResponse{Error: rootMessage(err)}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}

var statusTable = []struct {
	err  error
	code int
}{
	{domain.ErrValidation, http.StatusUnprocessableEntity},
	{domain.ErrNoSolution, http.StatusUnprocessableEntity},
	{domain.ErrUnauthenticated, http.StatusUnauthorized},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized},
	{domain.ErrForbidden, http.StatusForbidden},
	{domain.ErrAccountInactive, http.StatusForbidden},
	{domain.ErrReportNotFound, http.StatusNotFound},
	{domain.ErrUserNotFound, http.StatusNotFound},
	{domain.ErrRoleNotFound, http.StatusNotFound},
	{domain.ErrGoalNotFound, http.StatusNotFound},
	{domain.ErrUserExists, http.StatusConflict},
	{domain.ErrRoleExists, http.StatusConflict},
	{domain.ErrReservedRole, http.StatusConflict},
	{domain.ErrRoleInUse, http.StatusConflict},
	{domain.ErrSelfDelete, http.StatusConflict},
	{domain.ErrSelfDemotion, http.StatusConflict},
	{domain.ErrAccountLocked, http.StatusTooManyRequests},
	{domain.ErrRateLimited, http.StatusTooManyRequests},
}

func statusFor(err error) (int, bool) {
	for _, entry := range statusTable {
		if errors.Is(err, entry.err) {
			return entry.code, true
		}
	}
	return 0, false
}

// rootMessage keeps wrapped context such as "1 user(s) must be reassigned"
// for conflicts, but hides the store details of lookups.
func rootMessage(err error) string {
	for _, nf := range []error{domain.ErrReportNotFound, domain.ErrUserNotFound, domain.ErrRoleNotFound, domain.ErrGoalNotFound} {
		if errors.Is(err, nf) {
			return nf.Error()
		}
	}
	return err.Error()
}
