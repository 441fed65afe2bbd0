package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/adsc/report-system/internal/core/domain"
	"github.com/adsc/report-system/internal/core/ports"
)

// AdminHandler serves user, role and audit trail administration.
type AdminHandler struct {
	users    ports.UserService
	roles    ports.RoleService
	activity ports.ActivityService
}

func NewAdminHandler(users ports.UserService, roles ports.RoleService, activity ports.ActivityService) *AdminHandler {
	return &AdminHandler{users: users, roles: roles, activity: activity}
}

// --- Users ---

type createUserRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
	Role     string `json:"role"`
}

type updateUserRequest struct {
	Email    *string `json:"email" validate:"omitempty,email"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"isActive"`
	Password *string `json:"password"`
}

// ListUsers handles GET /api/users.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.User
// @Failure      403  {object}  errorBody
// @Router       /api/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// CreateUser handles POST /api/users.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "Account"
// @Success      201   {object}  domain.User
// @Failure      409   {object}  errorBody
// @Failure      422   {object}  errorBody
// @Failure      429   {object}  errorBody
// @Router       /api/users [post]
func (h *AdminHandler) CreateUser(c echo.Context) error {
	actor, err := currentIdentity(c)
	if err != nil {
		return err
	}
	var req createUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	user, err := h.users.Create(c.Request().Context(), actor, ports.CreateUserInput{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		Role:     req.Role,
	}, requestMeta(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}

// UpdateUser handles PUT /api/users/:id. Omitted fields are unchanged.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Changes"
// @Success      200   {object}  domain.User
// @Failure      404   {object}  errorBody
// @Failure      409   {object}  errorBody
// @Router       /api/users/{id} [put]
func (h *AdminHandler) UpdateUser(c echo.Context) error {
	actor, err := currentIdentity(c)
	if err != nil {
		return err
	}
	var req updateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	user, err := h.users.Update(c.Request().Context(), actor, c.Param("id"), ports.UpdateUserInput{
		Email:    req.Email,
		Role:     req.Role,
		IsActive: req.IsActive,
		Password: req.Password,
	}, requestMeta(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// DeleteUser handles DELETE /api/users/:id.
//
// @Summary      Delete a user
// @Tags         users
// @Security     BearerAuth
// @Param        id   path  string  true  "User id"
// @Success      204
// @Failure      404  {object}  errorBody
// @Failure      409  {object}  errorBody
// @Router       /api/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	actor, err := currentIdentity(c)
	if err != nil {
		return err
	}
	if err := h.users.Delete(c.Request().Context(), actor, c.Param("id"), requestMeta(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// --- Roles ---

type roleRequest struct {
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description"`
	Permissions map[string]bool `json:"permissions"`
}

func (r roleRequest) toInput() ports.RoleInput {
	perms := make(map[domain.Capability]bool, len(r.Permissions))
	for k, v := range r.Permissions {
		perms[domain.Capability(k)] = v
	}
	return ports.RoleInput{Name: r.Name, Description: r.Description, Permissions: perms}
}

// ListRoles handles GET /api/roles.
//
// @Summary      List roles
// @Description  System roles first, then custom roles.
// @Tags         roles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  ports.RoleView
// @Router       /api/roles [get]
func (h *AdminHandler) ListRoles(c echo.Context) error {
	roles, err := h.roles.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, roles)
}

// GetRole handles GET /api/roles/:id.
//
// @Summary      Get a custom role
// @Tags         roles
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Role id"
// @Success      200  {object}  domain.CustomRole
// @Failure      404  {object}  errorBody
// @Router       /api/roles/{id} [get]
func (h *AdminHandler) GetRole(c echo.Context) error {
	role, err := h.roles.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, role)
}

// CreateRole handles POST /api/roles.
//
// @Summary      Create a custom role
// @Description  Permissions not listed take the employee default.
// @Tags         roles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      roleRequest  true  "Role"
// @Success      201   {object}  domain.CustomRole
// @Failure      409   {object}  errorBody
// @Failure      422   {object}  errorBody
// @Router       /api/roles [post]
func (h *AdminHandler) CreateRole(c echo.Context) error {
	actor, err := currentIdentity(c)
	if err != nil {
		return err
	}
	var req roleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	role, err := h.roles.Create(c.Request().Context(), actor, req.toInput(), requestMeta(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, role)
}

// UpdateRole handles PUT /api/roles/:id.
//
// @Summary      Update a custom role
// @Tags         roles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "Role id"
// @Param        body  body      roleRequest  true  "Role"
// @Success      200   {object}  domain.CustomRole
// @Failure      404   {object}  errorBody
// @Failure      409   {object}  errorBody
// @Router       /api/roles/{id} [put]
func (h *AdminHandler) UpdateRole(c echo.Context) error {
	actor, err := currentIdentity(c)
	if err != nil {
		return err
	}
	var req roleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	role, err := h.roles.Update(c.Request().Context(), actor, c.Param("id"), req.toInput(), requestMeta(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, role)
}

// DeleteRole handles DELETE /api/roles/:id.
//
// @Summary      Delete a custom role
// @Tags         roles
// @Security     BearerAuth
// @Param        id   path  string  true  "Role id"
// @Success      204
// @Failure      404  {object}  errorBody
// @Failure      409  {object}  errorBody
// @Router       /api/roles/{id} [delete]
func (h *AdminHandler) DeleteRole(c echo.Context) error {
	actor, err := currentIdentity(c)
	if err != nil {
		return err
	}
	if err := h.roles.Delete(c.Request().Context(), actor, c.Param("id"), requestMeta(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

type rolePermissionsResponse struct {
	Role         domain.ResolvedRole `json:"role"`
	Capabilities []domain.Capability `json:"capabilities"`
}

// RolePermissions handles GET /api/roles/:name/permissions. Unknown names
// resolve to the employee bag.
//
// @Summary      Resolve a role's permissions
// @Tags         roles
// @Produce      json
// @Security     BearerAuth
// @Param        name  path      string  true  "Role name"
// @Success      200   {object}  rolePermissionsResponse
// @Router       /api/roles/{name}/permissions [get]
func (h *AdminHandler) RolePermissions(c echo.Context) error {
	resolved := h.roles.Permissions(c.Request().Context(), c.Param("name"))
	granted := make([]domain.Capability, 0, len(domain.AllCapabilities))
	for _, capability := range domain.AllCapabilities {
		if resolved.Can(capability) {
			granted = append(granted, capability)
		}
	}
	return c.JSON(http.StatusOK, rolePermissionsResponse{Role: resolved, Capabilities: granted})
}

// --- Activity ---

// ListActivity handles GET /api/activity-logs.
//
// @Summary      List activity logs
// @Description  Newest first. limit defaults to 100 and is capped at 1000.
// @Tags         activity
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query     int     false  "Maximum entries"
// @Param        userId  query     string  false  "Only entries of this user"
// @Success      200     {array}   domain.ActivityLog
// @Failure      403     {object}  errorBody
// @Failure      422     {object}  errorBody
// @Router       /api/activity-logs [get]
func (h *AdminHandler) ListActivity(c echo.Context) error {
	filter := domain.ActivityFilter{UserID: c.QueryParam("userId")}
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return domain.NewValidationError("limit must be an integer")
		}
		filter.Limit = n
	}

	logs, err := h.activity.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, logs)
}
