package handlers

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/winshop/winshop/internal/auth"
)

// AdminHandler handles back-office session requests.
type AdminHandler struct {
	adminPassword string
	secureCookies bool
}

func NewAdminHandler(adminPassword string, secureCookies bool) *AdminHandler {
	return &AdminHandler{
		adminPassword: adminPassword,
		secureCookies: secureCookies,
	}
}

type loginRequest struct {
	Password string `json:"password"`
}

// Login handles POST /api/admin/login. A correct password sets the shared
// admin cookie for a week.
func (h *AdminHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Corps de requête vide")
	}

	if h.adminPassword == "" ||
		subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.adminPassword)) != 1 {
		return c.JSON(http.StatusUnauthorized, Response{Success: false})
	}

	auth.SetAuthCookie(c, h.secureCookies)
	return respondOK(c, http.StatusOK)
}

// Logout handles POST /api/admin/logout.
func (h *AdminHandler) Logout(c echo.Context) error {
	auth.ClearAuthCookie(c)
	return respondOK(c, http.StatusOK)
}

// CheckAuth handles GET /api/admin/check-auth.
func (h *AdminHandler) CheckAuth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]bool{
		"authenticated": auth.IsAuthenticated(c),
	})
}
