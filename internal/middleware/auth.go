package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/iamsashka/Kursach/internal/repository"
	"github.com/iamsashka/Kursach/internal/session"
	"github.com/iamsashka/Kursach/pkg/jwtutil"
	"github.com/iamsashka/Kursach/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// SessionCookieName is the cookie carrying the web session token
const SessionCookieName = "session_token"

// Authenticator resolves the caller from either credential the login flow
// issues: a Bearer JWT on the API surface or a session cookie on the web
// surface. Either one populates user_id, email and role on the echo context.
type Authenticator struct {
	jwt      *jwtutil.JWTUtil
	sessions session.Store
	store    repository.Store
}

// NewAuthenticator creates an authenticator
func NewAuthenticator(jwt *jwtutil.JWTUtil, sessions session.Store, store repository.Store) *Authenticator {
	return &Authenticator{jwt: jwt, sessions: sessions, store: store}
}

// Require rejects unauthenticated requests
func (a *Authenticator) Require(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromEcho(c)

		if header := c.Request().Header.Get("Authorization"); header != "" {
			parts := strings.Split(header, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				log.Warn("Invalid Authorization header format")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authorization format, expected Bearer token"})
			}

			claims, err := a.jwt.ValidateToken(parts[1])
			if err != nil {
				log.Warn("Invalid JWT token", zap.Error(err))
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
			}

			c.Set("user_id", claims.UserID)
			c.Set("email", claims.Email)
			c.Set("role", claims.Role)
			return next(c)
		}

		cookie, err := c.Cookie(SessionCookieName)
		if err != nil || cookie.Value == "" {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
		}

		userID, err := a.sessions.Get(c.Request().Context(), cookie.Value)
		if err != nil {
			if errors.Is(err, session.ErrNotFound) {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "session expired"})
			}
			log.Error("Session lookup failed", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
		}

		// The session only stores the user id; role and email come from the
		// profile so role changes take effect without re-login
		user, err := a.store.Users().FindByID(c.Request().Context(), userID)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "session expired"})
		}
		if !user.Enabled {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "account disabled"})
		}

		if err := a.store.Users().TouchLastActivity(c.Request().Context(), user.ID); err != nil {
			log.Warn("Failed to update last activity", zap.Uint("user_id", user.ID), zap.Error(err))
		}

		c.Set("user_id", user.ID)
		c.Set("email", user.Email)
		c.Set("role", user.Role)
		return next(c)
	}
}

// UserIDFromContext retrieves the authenticated user id from the context
func UserIDFromContext(c echo.Context) (uint, bool) {
	userID, ok := c.Get("user_id").(uint)
	return userID, ok
}

// EmailFromContext retrieves the authenticated email from the context
func EmailFromContext(c echo.Context) string {
	email, _ := c.Get("email").(string)
	return email
}

// RoleFromContext retrieves the authenticated role from the context
func RoleFromContext(c echo.Context) string {
	role, _ := c.Get("role").(string)
	return role
}
