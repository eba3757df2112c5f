package handler

import (
	"net/http"

	"github.com/iamsashka/Kursach/internal/middleware"
	"github.com/iamsashka/Kursach/internal/model"
	"github.com/iamsashka/Kursach/internal/service"
	"github.com/labstack/echo/v4"
)

// CategoryRequest defines the category creation/update payload
type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CategoryHandler exposes category listing and management
type CategoryHandler struct {
	categories *service.CategoryService
}

// NewCategoryHandler creates a category handler
func NewCategoryHandler(categories *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// List returns active categories
func (h *CategoryHandler) List(c echo.Context) error {
	categories, err := h.categories.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, categories)
}

// Archived returns soft-deleted categories
func (h *CategoryHandler) Archived(c echo.Context) error {
	categories, err := h.categories.ListArchived(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, categories)
}

// Get returns one category
func (h *CategoryHandler) Get(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	category, err := h.categories.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, category)
}

// Create adds a category
func (h *CategoryHandler) Create(c echo.Context) error {
	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	category := &model.Category{Name: req.Name, Description: req.Description}
	if err := h.categories.Create(c.Request().Context(), middleware.EmailFromContext(c), category); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, category)
}

// Update rewrites a category
func (h *CategoryHandler) Update(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	category := &model.Category{ID: id, Name: req.Name, Description: req.Description}
	if err := h.categories.Update(c.Request().Context(), middleware.EmailFromContext(c), category); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, category)
}

// Delete archives a category
func (h *CategoryHandler) Delete(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	if err := h.categories.SoftDelete(c.Request().Context(), middleware.EmailFromContext(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "category archived"})
}

// Restore brings an archived category back
func (h *CategoryHandler) Restore(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	if err := h.categories.Restore(c.Request().Context(), middleware.EmailFromContext(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "category restored"})
}
