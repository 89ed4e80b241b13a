package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Themiya19/Quotation-System-sub001/internal/core/domain"
	"github.com/Themiya19/Quotation-System-sub001/internal/core/ports"
)

type RoleHandler struct {
	roles ports.RoleService
}

func NewRoleHandler(roles ports.RoleService) *RoleHandler {
	return &RoleHandler{roles: roles}
}

type roleRequest struct {
	Name        string `json:"name"        validate:"required"`
	Description string `json:"description" validate:"required"`
}

// parseNamespace validates the :namespace path parameter.
func parseNamespace(c echo.Context) (string, error) {
	ns := c.Param("namespace")
	if ns != domain.NamespaceInternal && ns != domain.NamespaceExternal {
		return "", echo.NewHTTPError(http.StatusBadRequest, "namespace must be internal or external")
	}
	return ns, nil
}

// List returns the role table for a namespace.
//
// @Summary      List roles
// @Tags         roles
// @Produce      json
// @Param        namespace  path      string  true  "internal or external"
// @Success      200        {array}   domain.Role
// @Failure      403        {object}  map[string]string
// @Router       /v1/roles/{namespace} [get]
func (h *RoleHandler) List(c echo.Context) error {
	ns, err := parseNamespace(c)
	if err != nil {
		return err
	}
	roles, err := h.roles.List(c.Request().Context(), ns)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, roles)
}

// Create adds a role; the id is derived from the display name.
//
// @Summary      Create a role
// @Tags         roles
// @Accept       json
// @Produce      json
// @Param        namespace  path      string       true  "internal or external"
// @Param        body       body      roleRequest  true  "Role name and description"
// @Success      201        {object}  domain.Role
// @Failure      400        {object}  map[string]string
// @Failure      409        {object}  map[string]string
// @Router       /v1/roles/{namespace} [post]
func (h *RoleHandler) Create(c echo.Context) error {
	ns, err := parseNamespace(c)
	if err != nil {
		return err
	}

	var req roleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	role, err := h.roles.Create(c.Request().Context(), ns, req.Name, req.Description)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, role)
}

// Update rewrites a role's display metadata.
//
// @Summary      Update a role
// @Tags         roles
// @Accept       json
// @Produce      json
// @Param        namespace  path      string       true  "internal or external"
// @Param        id         path      string       true  "Role id"
// @Param        body       body      roleRequest  true  "Role name and description"
// @Success      200        {object}  domain.Role
// @Failure      404        {object}  map[string]string
// @Router       /v1/roles/{namespace}/{id} [put]
func (h *RoleHandler) Update(c echo.Context) error {
	ns, err := parseNamespace(c)
	if err != nil {
		return err
	}

	var req roleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	role, err := h.roles.Update(c.Request().Context(), ns, c.Param("id"), req.Name, req.Description)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, role)
}

// Delete removes a role. Protected defaults (admin, ext_client) are always
// rejected with 409.
//
// @Summary      Delete a role
// @Tags         roles
// @Produce      json
// @Param        namespace  path  string  true  "internal or external"
// @Param        id         path  string  true  "Role id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /v1/roles/{namespace}/{id} [delete]
func (h *RoleHandler) Delete(c echo.Context) error {
	ns, err := parseNamespace(c)
	if err != nil {
		return err
	}
	if err := h.roles.Delete(c.Request().Context(), ns, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
