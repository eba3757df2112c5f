package handler

import (
	"net/http"

	"github.com/iamsashka/Kursach/internal/middleware"
	"github.com/iamsashka/Kursach/internal/model"
	"github.com/iamsashka/Kursach/internal/service"
	"github.com/labstack/echo/v4"
)

// BrandRequest defines the brand creation/update payload
type BrandRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Country     string `json:"country"`
}

// BrandHandler exposes brand listing and management
type BrandHandler struct {
	brands *service.BrandService
}

// NewBrandHandler creates a brand handler
func NewBrandHandler(brands *service.BrandService) *BrandHandler {
	return &BrandHandler{brands: brands}
}

// List returns active brands
func (h *BrandHandler) List(c echo.Context) error {
	brands, err := h.brands.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, brands)
}

// Archived returns soft-deleted brands
func (h *BrandHandler) Archived(c echo.Context) error {
	brands, err := h.brands.ListArchived(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, brands)
}

// Get returns one brand
func (h *BrandHandler) Get(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	brand, err := h.brands.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, brand)
}

// Create adds a brand
func (h *BrandHandler) Create(c echo.Context) error {
	var req BrandRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	brand := &model.Brand{Name: req.Name, Description: req.Description, Country: req.Country}
	if err := h.brands.Create(c.Request().Context(), middleware.EmailFromContext(c), brand); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, brand)
}

// Update rewrites a brand
func (h *BrandHandler) Update(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	var req BrandRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	brand := &model.Brand{ID: id, Name: req.Name, Description: req.Description, Country: req.Country}
	if err := h.brands.Update(c.Request().Context(), middleware.EmailFromContext(c), brand); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, brand)
}

// Delete archives a brand
func (h *BrandHandler) Delete(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	if err := h.brands.SoftDelete(c.Request().Context(), middleware.EmailFromContext(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "brand archived"})
}

// Restore brings an archived brand back
func (h *BrandHandler) Restore(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	if err := h.brands.Restore(c.Request().Context(), middleware.EmailFromContext(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "brand restored"})
}
