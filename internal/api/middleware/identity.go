package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/adsc/report-system/internal/core/domain"
)

const ctxIdentity = "identity"

// UserFinder is the part of the user store Identity needs.
type UserFinder interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// RoleResolver binds a role name to its permission bag.
type RoleResolver interface {
	Resolve(ctx context.Context, roleName string) domain.ResolvedRole
}

// Identity loads the token's user and resolves its current role. The role
// stored on the user wins over the role claim, so role changes apply without
// a new login. Deleted or deactivated accounts are rejected with 401.
func Identity(users UserFinder, resolver RoleResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, _ := c.Get(CtxUserID).(string)
			if id == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}

			ctx := c.Request().Context()
			user, err := users.FindByID(ctx, id)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					return echo.NewHTTPError(http.StatusUnauthorized, "account no longer exists")
				}
				return err
			}
			if !user.IsActive {
				return echo.NewHTTPError(http.StatusUnauthorized, "account is deactivated")
			}

			c.Set(ctxIdentity, &domain.Identity{
				ID:       user.ID,
				Username: user.Username,
				Role:     resolver.Resolve(ctx, user.Role),
			})
			return next(c)
		}
	}
}

// CurrentIdentity returns the identity set by Identity, or nil.
func CurrentIdentity(c echo.Context) *domain.Identity {
	id, _ := c.Get(ctxIdentity).(*domain.Identity)
	return id
}

// WithIdentity stores identity on the context. Tests and internal callers only.
func WithIdentity(c echo.Context, identity *domain.Identity) {
	c.Set(ctxIdentity, identity)
}
