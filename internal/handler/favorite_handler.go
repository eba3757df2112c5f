package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/iamsashka/Kursach/internal/middleware"
	"github.com/iamsashka/Kursach/internal/service"
	"github.com/labstack/echo/v4"
)

// FavoriteRequest names the product to bookmark
type FavoriteRequest struct {
	ProductID uint `json:"product_id"`
}

// FavoriteHandler exposes the authenticated user's favorites list
type FavoriteHandler struct {
	favorites *service.FavoriteService
}

// NewFavoriteHandler creates a favorite handler
func NewFavoriteHandler(favorites *service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites}
}

// List returns the user's favorites, newest first
func (h *FavoriteHandler) List(c echo.Context) error {
	userID, _ := middleware.UserIDFromContext(c)

	favorites, err := h.favorites.List(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, favorites)
}

// Count returns the favorites count for the header badge
func (h *FavoriteHandler) Count(c echo.Context) error {
	userID, _ := middleware.UserIDFromContext(c)

	count, err := h.favorites.Count(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"count": count})
}

// Add bookmarks a product. A full list answers 409 with the oldest favorite
// so the client can offer the replace action.
func (h *FavoriteHandler) Add(c echo.Context) error {
	userID, _ := middleware.UserIDFromContext(c)

	var req FavoriteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if req.ProductID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "product_id is required"})
	}

	favorite, err := h.favorites.Add(c.Request().Context(), userID, req.ProductID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, favorite)
}

// ReplaceOldest evicts the oldest favorite and bookmarks the product instead
func (h *FavoriteHandler) ReplaceOldest(c echo.Context) error {
	userID, _ := middleware.UserIDFromContext(c)

	var req FavoriteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if req.ProductID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "product_id is required"})
	}

	favorite, err := h.favorites.ReplaceOldest(c.Request().Context(), userID, req.ProductID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, favorite)
}

// Remove drops a bookmark by product id
func (h *FavoriteHandler) Remove(c echo.Context) error {
	userID, _ := middleware.UserIDFromContext(c)

	productID, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	if err := h.favorites.Remove(c.Request().Context(), userID, productID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "favorite removed"})
}

// Clear drops all of the user's favorites
func (h *FavoriteHandler) Clear(c echo.Context) error {
	userID, _ := middleware.UserIDFromContext(c)

	if err := h.favorites.Clear(c.Request().Context(), userID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "favorites cleared"})
}

// Status reports which of the given product ids the user favorited, for
// rendering heart badges on catalog pages in one query.
func (h *FavoriteHandler) Status(c echo.Context) error {
	userID, _ := middleware.UserIDFromContext(c)

	var productIDs []uint
	for _, raw := range strings.Split(c.QueryParam("product_ids"), ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product_ids"})
		}
		productIDs = append(productIDs, uint(id))
	}

	status, err := h.favorites.StatusForProducts(c.Request().Context(), userID, productIDs)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, status)
}
