package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Themiya19/Quotation-System-sub001/internal/api/metrics"
	"github.com/Themiya19/Quotation-System-sub001/internal/core/domain"
	"github.com/Themiya19/Quotation-System-sub001/internal/core/ports"
)

// RequireFeature gates a route on the permission evaluator. The feature id
// is selected by the session category: internalFeature for staff sessions,
// externalFeature for client sessions. An empty id denies that category
// outright; an absent gate is a denial.
func RequireFeature(perms ports.PermissionEvaluator, internalFeature, externalFeature string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			category, _ := c.Get("category").(string)

			namespace, feature := domain.NamespaceInternal, internalFeature
			if category == domain.CategoryExternal {
				namespace, feature = domain.NamespaceExternal, externalFeature
			}

			allowed := feature != "" && perms.Can(c.Request().Context(), namespace, role, feature)
			observe(feature, allowed)
			if !allowed {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}

// RequireRolesView gates the role-administration read surface: allowed when
// the session role holds either manage_roles or manage_features.
func RequireRolesView(perms ports.PermissionEvaluator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			category, _ := c.Get("category").(string)
			if category == domain.CategoryExternal {
				// Role administration is an internal surface.
				observe(domain.FeatureManageRoles, false)
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}

			allowed := perms.CanViewRoles(c.Request().Context(), domain.NamespaceInternal, role)
			observe(domain.FeatureManageRoles, allowed)
			if !allowed {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}

func observe(feature string, allowed bool) {
	if feature == "" {
		feature = "none"
	}
	result := "deny"
	if allowed {
		result = "allow"
	}
	metrics.PermissionChecksTotal.WithLabelValues(feature, result).Inc()
}
