package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Themiya19/Quotation-System-sub001/internal/core/domain"
	"github.com/Themiya19/Quotation-System-sub001/internal/core/ports"
)

// invalidatedResponse tells the client why its session was invalidated and
// what to do about it.
type invalidatedResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason"`
}

// Authenticated resolves the session against the registry on every request.
// It enforces idle expiry, surfaces drift-watcher invalidations, and touches
// last-activity for sessions in good standing. Must run after Session.
func Authenticated(sessions ports.SessionService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sid, _ := c.Get("session_id").(string)
			if sid == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing session")
			}

			sess, err := sessions.Resolve(c.Request().Context(), sid)
			if err != nil {
				if errors.Is(err, domain.ErrSessionNotFound) || errors.Is(err, domain.ErrSessionExpired) {
					ClearSessionCookie(c)
					return echo.NewHTTPError(http.StatusUnauthorized, "session expired")
				}
				return err
			}

			if sess.State == domain.StateInvalidated {
				if sess.Reason == domain.ReasonAccountDeleted {
					ClearSessionCookie(c)
					return c.JSON(http.StatusUnauthorized, invalidatedResponse{
						Error:  "account deleted",
						Reason: string(domain.ReasonAccountDeleted),
					})
				}
				// Role drift: the client must acknowledge via the session
				// refresh endpoint to continue under the corrected role.
				return c.JSON(http.StatusConflict, invalidatedResponse{
					Error:  "permissions changed",
					Reason: string(domain.ReasonRoleChanged),
				})
			}

			return next(c)
		}
	}
}
