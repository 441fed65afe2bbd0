package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/adsc/report-system/internal/api/metrics"
	"github.com/adsc/report-system/internal/core/domain"
	"github.com/adsc/report-system/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	resolver    ports.PermissionResolver
}

func NewAuthHandler(authService ports.AuthService, resolver ports.PermissionResolver) *AuthHandler {
	return &AuthHandler{authService: authService, resolver: resolver}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required"`
}

type userResponse struct {
	ID          string             `json:"id"`
	Username    string             `json:"username"`
	Email       string             `json:"email,omitempty"`
	Role        string             `json:"role"`
	RoleKind    domain.RoleKind    `json:"roleKind"`
	Permissions domain.Permissions `json:"permissions"`
	IsAdmin     bool               `json:"isAdmin"`
	IsManager   bool               `json:"isManager"`
}

type authResponse struct {
	Token string        `json:"token"`
	User  *userResponse `json:"user"`
}

// toUserResponse attaches the resolved bag of role to the account fields.
func (h *AuthHandler) toUserResponse(c echo.Context, id, username, email, role string) *userResponse {
	ctx := c.Request().Context()
	resolved := h.resolver.Resolve(ctx, role)
	return &userResponse{
		ID:          id,
		Username:    username,
		Email:       email,
		Role:        resolved.Name,
		RoleKind:    resolved.Kind,
		Permissions: resolved.Permissions,
		IsAdmin:     h.resolver.HasRole(ctx, role, domain.RoleAdmin),
		IsManager:   h.resolver.HasRole(ctx, role, domain.RoleManager),
	}
}

// Login authenticates a user and returns a JWT token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorBody
// @Failure      401   {object}  errorBody
// @Failure      403   {object}  errorBody
// @Failure      429   {object}  errorBody
// @Router       /api/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Username, req.Password, requestMeta(c))
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginResult(err)).Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	return c.JSON(http.StatusOK, authResponse{
		Token: token,
		User:  h.toUserResponse(c, user.ID, user.Username, user.Email, user.Role),
	})
}

func loginResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrValidation):
		return "invalid"
	case errors.Is(err, domain.ErrAccountLocked):
		return "locked"
	case errors.Is(err, domain.ErrAccountInactive):
		return "inactive"
	}
	return "error"
}

// Logout records the logout. Tokens are stateless and expire on their own.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorBody
// @Router       /api/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	h.authService.Logout(c.Request().Context(), identity, requestMeta(c))
	return c.JSON(http.StatusOK, messageResponse{Message: "logged out"})
}

// Me returns the caller with its resolved permissions.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Failure      401  {object}  errorBody
// @Router       /api/user [get]
func (h *AuthHandler) Me(c echo.Context) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.toUserResponse(c, identity.ID, identity.Username, "", identity.Role.Name))
}

// ChangePassword replaces the caller's password after checking the current one.
//
// @Summary      Change password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      changePasswordRequest  true  "Current and new password"
// @Success      200   {object}  messageResponse
// @Failure      401   {object}  errorBody
// @Failure      422   {object}  errorBody
// @Router       /api/change-password [post]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	var req changePasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.authService.ChangePassword(c.Request().Context(), identity, req.CurrentPassword, req.NewPassword, requestMeta(c)); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "password updated"})
}
