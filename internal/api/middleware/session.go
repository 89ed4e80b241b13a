package middleware

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/Themiya19/Quotation-System-sub001/internal/core/domain"
)

// SessionCookie is the name of the signed session cookie.
const SessionCookie = "qs_session"

// Session validates the session cookie JWT and injects its claims into the
// echo context: session_id, email, category, role, company, department.
// The role claim read here is the client-cached role every permission gate
// trusts until the drift watcher corrects it.
func Session(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing session cookie")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(cookie.Value, claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid session")
			}

			category, _ := claims["category"].(string)
			c.Set("session_id", claims["sid"])
			c.Set("email", claims["email"])
			c.Set("category", category)

			if category == domain.CategoryExternal {
				c.Set("role", claims["ext_role"])
				c.Set("company", claims["company"])
			} else {
				c.Set("role", claims["role"])
				c.Set("department", claims["department"])
			}

			return next(c)
		}
	}
}

// ClearSessionCookie expires the session cookie on the response.
func ClearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
