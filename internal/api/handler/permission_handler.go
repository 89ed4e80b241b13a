package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Themiya19/Quotation-System-sub001/internal/api/metrics"
	"github.com/Themiya19/Quotation-System-sub001/internal/core/domain"
	"github.com/Themiya19/Quotation-System-sub001/internal/core/ports"
)

// viewRolesFeature is the composite id the UI asks about to decide whether
// to show the role-administration navigation entry.
const viewRolesFeature = "view_roles"

// PermissionHandler answers UI permission-gate queries: the feature table
// comes from the store on every call, the role from the session cookie.
type PermissionHandler struct {
	perms ports.PermissionEvaluator
}

func NewPermissionHandler(perms ports.PermissionEvaluator) *PermissionHandler {
	return &PermissionHandler{perms: perms}
}

type permissionResponse struct {
	Feature string `json:"feature"`
	Allowed bool   `json:"allowed"`
}

// Check evaluates one feature gate for the calling session. The special id
// "view_roles" resolves the composite manage_roles OR manage_features.
//
// @Summary      Check a permission gate
// @Tags         permissions
// @Produce      json
// @Param        feature  path      string  true  "Feature id"
// @Success      200      {object}  permissionResponse
// @Failure      401      {object}  map[string]string
// @Router       /v1/permissions/{feature} [get]
func (h *PermissionHandler) Check(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	featureID := c.Param("feature")
	namespace := domain.NamespaceInternal
	if actor.Category == domain.CategoryExternal {
		namespace = domain.NamespaceExternal
	}

	var allowed bool
	if featureID == viewRolesFeature {
		allowed = h.perms.CanViewRoles(c.Request().Context(), namespace, actor.Role)
	} else {
		allowed = h.perms.Can(c.Request().Context(), namespace, actor.Role, featureID)
	}

	result := "deny"
	if allowed {
		result = "allow"
	}
	metrics.PermissionChecksTotal.WithLabelValues(featureID, result).Inc()

	return c.JSON(http.StatusOK, permissionResponse{Feature: featureID, Allowed: allowed})
}
