package handler

import (
	"net/http"

	"github.com/iamsashka/Kursach/internal/middleware"
	"github.com/iamsashka/Kursach/internal/service"
	"github.com/labstack/echo/v4"
)

// RoleRequest assigns a role to an account
type RoleRequest struct {
	Role string `json:"role"`
}

// EnabledRequest toggles whether an account may log in
type EnabledRequest struct {
	Enabled bool `json:"enabled"`
}

// SavedFiltersRequest stores the user's saved catalog filters
type SavedFiltersRequest struct {
	Filters string `json:"filters"`
}

// UserHandler exposes profile self-service and back-office user management
type UserHandler struct {
	users *service.UserService
}

// NewUserHandler creates a user handler
func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Profile returns the authenticated user's profile
func (h *UserHandler) Profile(c echo.Context) error {
	userID, _ := middleware.UserIDFromContext(c)

	user, err := h.users.Get(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile rewrites the authenticated user's profile fields
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID, _ := middleware.UserIDFromContext(c)

	var req service.ProfileInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	user, err := h.users.UpdateProfile(c.Request().Context(), userID, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateSettings rewrites the authenticated user's display preferences
func (h *UserHandler) UpdateSettings(c echo.Context) error {
	userID, _ := middleware.UserIDFromContext(c)

	var req service.SettingsInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	user, err := h.users.UpdateSettings(c.Request().Context(), userID, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// SaveFilters stores the user's saved catalog filters as an opaque blob
func (h *UserHandler) SaveFilters(c echo.Context) error {
	userID, _ := middleware.UserIDFromContext(c)

	var req SavedFiltersRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if err := h.users.SaveFilters(c.Request().Context(), userID, req.Filters); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "filters saved"})
}

// List returns active users for the back office
func (h *UserHandler) List(c echo.Context) error {
	page, pageSize := pageParams(c)

	users, total, err := h.users.List(c.Request().Context(), c.QueryParam("q"), page, pageSize)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, paginated(users, page, pageSize, total))
}

// Archived returns soft-deleted users
func (h *UserHandler) Archived(c echo.Context) error {
	page, pageSize := pageParams(c)

	users, total, err := h.users.ListArchived(c.Request().Context(), page, pageSize)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, paginated(users, page, pageSize, total))
}

// Get returns one user by id
func (h *UserHandler) Get(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	user, err := h.users.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// ChangeRole assigns a new role to an account
func (h *UserHandler) ChangeRole(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	var req RoleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	user, err := h.users.ChangeRole(c.Request().Context(), middleware.EmailFromContext(c), id, req.Role)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// SetEnabled toggles whether an account may log in
func (h *UserHandler) SetEnabled(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	var req EnabledRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	user, err := h.users.SetEnabled(c.Request().Context(), middleware.EmailFromContext(c), id, req.Enabled)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// Delete archives a user account
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	if err := h.users.SoftDelete(c.Request().Context(), middleware.EmailFromContext(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "user archived"})
}

// Restore brings an archived account back
func (h *UserHandler) Restore(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	if err := h.users.Restore(c.Request().Context(), middleware.EmailFromContext(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "user restored"})
}

// HardDelete permanently removes an archived account
func (h *UserHandler) HardDelete(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	if err := h.users.HardDelete(c.Request().Context(), middleware.EmailFromContext(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "user deleted"})
}
