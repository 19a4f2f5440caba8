package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/yonyossef/yiftach-sign/internal/api/metrics"
	"github.com/yonyossef/yiftach-sign/internal/api/middleware"
	"github.com/yonyossef/yiftach-sign/internal/core/domain"
	"github.com/yonyossef/yiftach-sign/internal/core/ports"
)

// AuthHandler exposes login, session verification, and logout.
type AuthHandler struct {
	auth         ports.AuthService
	cookieTTL    time.Duration
	secureCookie bool
}

func NewAuthHandler(auth ports.AuthService, cookieTTL time.Duration, secureCookie bool) *AuthHandler {
	return &AuthHandler{auth: auth, cookieTTL: cookieTTL, secureCookie: secureCookie}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type successResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type verifyResponse struct {
	Authenticated bool   `json:"authenticated"`
	Username      string `json:"username,omitempty"`
}

// Login authenticates the admin and issues the session cookie.
//
// @Summary      Admin login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Admin credentials"
// @Success      200   {object}  successResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	// Absent fields are a malformed request, not a failed credential check.
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "username and password required"})
	}

	token, err := h.auth.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			metrics.LoginsTotal.WithLabelValues("invalid").Inc()
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
		case errors.Is(err, domain.ErrServerMisconfigured):
			metrics.LoginsTotal.WithLabelValues("misconfigured").Inc()
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "server configuration error"})
		default:
			metrics.LoginsTotal.WithLabelValues("error").Inc()
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "login failed"})
		}
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	metrics.SessionsActive.Inc()
	c.SetCookie(h.sessionCookie(token, h.cookieTTL))

	return c.JSON(http.StatusOK, successResponse{Success: true, Message: "Login successful"})
}

// Verify reports whether the request carries a live session.
//
// @Summary      Verify session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  verifyResponse
// @Router       /api/verify [get]
func (h *AuthHandler) Verify(c echo.Context) error {
	result := h.auth.Verify(c.Request().Context(), middleware.TokenFromRequest(c))
	return c.JSON(http.StatusOK, verifyResponse{
		Authenticated: result.Authenticated,
		Username:      result.Username,
	})
}

// Logout destroys the session, if any, and clears the cookie. Logging out
// without a session still succeeds.
//
// @Summary      Admin logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  successResponse
// @Failure      500  {object}  map[string]string
// @Router       /api/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.auth.Logout(c.Request().Context(), middleware.TokenFromRequest(c)); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "logout failed"})
	}

	if authed, _ := c.Get("authenticated").(bool); authed {
		metrics.SessionsActive.Dec()
	}
	c.SetCookie(h.sessionCookie("", -time.Hour))

	return c.JSON(http.StatusOK, successResponse{Success: true, Message: "Logout successful"})
}

func (h *AuthHandler) sessionCookie(token string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.secureCookie,
	}
}
