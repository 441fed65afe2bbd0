package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/adsc/report-system/internal/api/metrics"
	"github.com/adsc/report-system/internal/core/domain"
	"github.com/adsc/report-system/internal/core/service"
)

// RequireCapability admits requests whose identity holds c. A missing identity
// is 401; a missing capability is 403.
func RequireCapability(c domain.Capability) echo.MiddlewareFunc {
	label := string(c)
	if label == "" {
		label = "none"
	}
	req := service.Requirement{Capability: c}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ec echo.Context) error {
			d := service.Authorize(CurrentIdentity(ec), req)
			if d.Admit {
				return next(ec)
			}

			metrics.AuthDenialsTotal.WithLabelValues(label, d.Reason.String()).Inc()
			if d.Reason == service.DenyUnauthenticated {
				return ec.JSON(http.StatusUnauthorized, map[string]string{"error": "authentication required"})
			}
			return ec.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
		}
	}
}

// RequireIdentity admits any authenticated request.
func RequireIdentity() echo.MiddlewareFunc {
	return RequireCapability("")
}
