package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Themiya19/Quotation-System-sub001/internal/core/domain"
	"github.com/Themiya19/Quotation-System-sub001/internal/core/ports"
)

// ctxActor builds the acting principal from the claims injected by the
// Session middleware and fast-fails before any service call:
//   - category must be non-empty (presence proves the middleware ran).
//   - an external session requires a company id; without one the cookie
//     cannot scope any query and is rejected with 401.
func ctxActor(c echo.Context) (ports.Actor, error) {
	category, _ := c.Get("category").(string)
	if category == "" {
		return ports.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing session claims")
	}

	actor := ports.Actor{Category: category}
	actor.Email, _ = c.Get("email").(string)
	actor.Role, _ = c.Get("role").(string)
	actor.CompanyID, _ = c.Get("company").(string)

	if category == domain.CategoryExternal && actor.CompanyID == "" {
		return ports.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "session missing company identity")
	}
	return actor, nil
}

// ctxSessionID extracts the session id claim.
func ctxSessionID(c echo.Context) (string, error) {
	sid, _ := c.Get("session_id").(string)
	if sid == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing session claims")
	}
	return sid, nil
}
