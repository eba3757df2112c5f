package handler

import (
	"net/http"

	"github.com/iamsashka/Kursach/internal/middleware"
	"github.com/iamsashka/Kursach/internal/service"
	"github.com/labstack/echo/v4"
)

// CartAddRequest adds one product variant to the cart
type CartAddRequest struct {
	ProductID uint   `json:"product_id"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Quantity  int    `json:"quantity"`
}

// CartQuantityRequest sets the quantity of an existing cart line
type CartQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CartHandler exposes the authenticated user's cart
type CartHandler struct {
	cart *service.CartService
}

// NewCartHandler creates a cart handler
func NewCartHandler(cart *service.CartService) *CartHandler {
	return &CartHandler{cart: cart}
}

// List returns the cart lines together with the priced quote
func (h *CartHandler) List(c echo.Context) error {
	userID, _ := middleware.UserIDFromContext(c)

	items, err := h.cart.Items(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	quote, err := h.cart.Quote(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"items": items,
		"quote": quote,
	})
}

// Count returns the cart line count for the header badge
func (h *CartHandler) Count(c echo.Context) error {
	userID, _ := middleware.UserIDFromContext(c)

	count, err := h.cart.Count(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"count": count})
}

// Add puts a product variant into the cart
func (h *CartHandler) Add(c echo.Context) error {
	userID, _ := middleware.UserIDFromContext(c)

	var req CartAddRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if req.ProductID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "product_id is required"})
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	item, err := h.cart.Add(c.Request().Context(), userID, req.ProductID, req.Size, req.Color, req.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, item)
}

// UpdateQuantity sets the quantity of one cart line
func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	userID, _ := middleware.UserIDFromContext(c)

	itemID, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	var req CartQuantityRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if err := h.cart.UpdateQuantity(c.Request().Context(), userID, itemID, req.Quantity); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "quantity updated"})
}

// Remove deletes one cart line
func (h *CartHandler) Remove(c echo.Context) error {
	userID, _ := middleware.UserIDFromContext(c)

	itemID, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	if err := h.cart.Remove(c.Request().Context(), userID, itemID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "item removed"})
}

// Clear empties the cart
func (h *CartHandler) Clear(c echo.Context) error {
	userID, _ := middleware.UserIDFromContext(c)

	if err := h.cart.Clear(c.Request().Context(), userID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "cart cleared"})
}
