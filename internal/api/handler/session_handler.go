package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Themiya19/Quotation-System-sub001/internal/api/middleware"
	"github.com/Themiya19/Quotation-System-sub001/internal/core/domain"
	"github.com/Themiya19/Quotation-System-sub001/internal/core/ports"
)

// SessionHandler is the client poll surface for the drift detector. These
// routes run behind Session (cookie claims) but not Authenticated, so an
// invalidated session can still inspect and acknowledge its own state.
type SessionHandler struct {
	sessions ports.SessionService
	auth     ports.AuthService
}

func NewSessionHandler(sessions ports.SessionService, auth ports.AuthService) *SessionHandler {
	return &SessionHandler{sessions: sessions, auth: auth}
}

type sessionStatusResponse struct {
	State    string `json:"state"`
	Reason   string `json:"reason,omitempty"`
	Email    string `json:"email"`
	Category string `json:"category"`
	Role     string `json:"role"`
}

// Status reports the registry's current view of the session. For a drifted
// session the role is already the corrected, authoritative one.
//
// @Summary      Session status
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionStatusResponse
// @Failure      401  {object}  map[string]string
// @Router       /v1/session [get]
func (h *SessionHandler) Status(c echo.Context) error {
	sid, err := ctxSessionID(c)
	if err != nil {
		return err
	}

	sess, err := h.sessions.Peek(c.Request().Context(), sid)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			middleware.ClearSessionCookie(c)
		}
		return err
	}

	return c.JSON(http.StatusOK, sessionStatusResponse{
		State:    string(sess.State),
		Reason:   string(sess.Reason),
		Email:    sess.Email,
		Category: sess.Category,
		Role:     sess.Role,
	})
}

// Refresh is the manual acknowledgment control for an invalidated session.
// A role-drifted session is returned to Watching and a fresh cookie is
// issued under the corrected role; a deleted account gets its cookie
// cleared and must log in again.
//
// @Summary      Acknowledge session invalidation
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionStatusResponse
// @Failure      401  {object}  map[string]string
// @Router       /v1/session/refresh [post]
func (h *SessionHandler) Refresh(c echo.Context) error {
	sid, err := ctxSessionID(c)
	if err != nil {
		return err
	}

	sess, err := h.sessions.Refresh(c.Request().Context(), sid)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			middleware.ClearSessionCookie(c)
		}
		return err
	}

	token, err := h.auth.IssueToken(sess)
	if err != nil {
		return err
	}
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return c.JSON(http.StatusOK, sessionStatusResponse{
		State:    string(sess.State),
		Email:    sess.Email,
		Category: sess.Category,
		Role:     sess.Role,
	})
}
