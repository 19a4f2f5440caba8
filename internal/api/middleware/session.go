package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/yonyossef/yiftach-sign/internal/core/ports"
)

// CookieName is the cookie carrying the client-held session token.
const CookieName = "sign_session"

// TokenFromRequest extracts the raw session token from the request cookie.
// Returns "" when the cookie is absent.
func TokenFromRequest(c echo.Context) string {
	cookie, err := c.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// Session resolves the request's session cookie and injects the verification
// result into context. It never rejects: anonymous requests pass through with
// authenticated=false, so read endpoints stay public.
func Session(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			result := auth.Verify(c.Request().Context(), TokenFromRequest(c))
			c.Set("authenticated", result.Authenticated)
			c.Set("username", result.Username)
			return next(c)
		}
	}
}

// RequireAuth gates write endpoints on a live authenticated session.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authed, _ := c.Get("authenticated").(bool)
			if !authed {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}
			return next(c)
		}
	}
}
