package handler

import (
	"net/http"
	"time"

	"github.com/iamsashka/Kursach/internal/middleware"
	"github.com/iamsashka/Kursach/internal/service"
	"github.com/iamsashka/Kursach/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// LoginRequest is the login form payload
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthHandler exposes registration, login and logout
type AuthHandler struct {
	auth       *service.AuthService
	users      *service.UserService
	sessionTTL time.Duration
}

// NewAuthHandler creates an auth handler
func NewAuthHandler(auth *service.AuthService, users *service.UserService, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{auth: auth, users: users, sessionTTL: sessionTTL}
}

// Register creates a customer account
func (h *AuthHandler) Register(c echo.Context) error {
	var req service.RegisterInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if req.Email == "" || req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email, username and password are required"})
	}

	user, err := h.auth.Register(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, user)
}

// Login verifies credentials, sets the web session cookie and returns the JWT
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	result, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    result.SessionToken,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(h.sessionTTL),
	})

	return c.JSON(http.StatusOK, echo.Map{
		"token": result.Token,
		"user":  result.User,
	})
}

// Logout drops the web session and clears the cookie
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(middleware.SessionCookieName); err == nil {
		if err := h.auth.Logout(c.Request().Context(), cookie.Value); err != nil {
			logger.FromEcho(c).Warn("Failed to drop session", zap.Error(err))
		}
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

// Me returns the authenticated profile and its capability list
func (h *AuthHandler) Me(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	user, err := h.users.Get(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user":         user,
		"capabilities": middleware.CapabilitiesForRole(user.Role),
	})
}
