// Package auth implements the back-office access check: a single static
// cookie shared by every admin session. There is no per-user identity, no
// expiry rotation and no server-side session state; the scheme is kept
// exactly as weak as the storefront it replaces.
package auth

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const (
	// CookieName is the admin session cookie.
	CookieName = "admin-auth"
	// cookieMarker is the shared-secret value the cookie must carry.
	cookieMarker = "authenticated"
	// cookieMaxAge is one week, matching the login flow.
	cookieMaxAge = 7 * 24 * time.Hour
)

// IsAuthenticated reports whether the request carries a valid admin cookie.
func IsAuthenticated(c echo.Context) bool {
	cookie, err := c.Cookie(CookieName)
	if err != nil {
		return false
	}
	return cookie.Value == cookieMarker
}

// AdminMiddleware rejects requests without the admin cookie.
func AdminMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !IsAuthenticated(c) {
				return c.JSON(http.StatusUnauthorized, map[string]any{
					"success": false,
					"error":   "Unauthorized",
				})
			}
			return next(c)
		}
	}
}

// SetAuthCookie marks the client as an authenticated admin.
func SetAuthCookie(c echo.Context, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    cookieMarker,
		Path:     "/",
		MaxAge:   int(cookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// ClearAuthCookie logs the client out.
func ClearAuthCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
