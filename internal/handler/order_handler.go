package handler

import (
	"net/http"

	"github.com/iamsashka/Kursach/internal/middleware"
	"github.com/iamsashka/Kursach/internal/model"
	"github.com/iamsashka/Kursach/internal/repository"
	"github.com/iamsashka/Kursach/internal/service"
	"github.com/labstack/echo/v4"
)

// CheckoutRequest is the place-order payload
type CheckoutRequest struct {
	ShippingAddress string `json:"shipping_address"`
	ReceiptEmail    string `json:"receipt_email"`
}

// OrderStatusRequest moves an order to a new status
type OrderStatusRequest struct {
	Status string `json:"status"`
}

// OrderHandler exposes checkout, order history and back-office management
type OrderHandler struct {
	checkout *service.CheckoutService
	orders   *service.OrderService
}

// NewOrderHandler creates an order handler
func NewOrderHandler(checkout *service.CheckoutService, orders *service.OrderService) *OrderHandler {
	return &OrderHandler{checkout: checkout, orders: orders}
}

// PlaceOrder checks out the authenticated user's cart
func (h *OrderHandler) PlaceOrder(c echo.Context) error {
	userID, _ := middleware.UserIDFromContext(c)

	var req CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	order, err := h.checkout.PlaceOrder(c.Request().Context(), userID, req.ShippingAddress, req.ReceiptEmail)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, order)
}

// History returns the authenticated user's orders, newest first
func (h *OrderHandler) History(c echo.Context) error {
	userID, _ := middleware.UserIDFromContext(c)
	page, pageSize := pageParams(c)

	orders, total, err := h.orders.HistoryForUser(c.Request().Context(), userID, page, pageSize)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, paginated(orders, page, pageSize, total))
}

// Get returns one of the authenticated user's orders
func (h *OrderHandler) Get(c echo.Context) error {
	userID, _ := middleware.UserIDFromContext(c)

	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	order, err := h.orders.GetForUser(c.Request().Context(), id, userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

// AdminList returns back-office order listings with status/search filters
func (h *OrderHandler) AdminList(c echo.Context) error {
	filter := repository.OrderFilter{Search: c.QueryParam("q")}
	filter.Page, filter.PageSize = pageParams(c)

	if raw := c.QueryParam("status"); raw != "" {
		status, ok := model.ParseOrderStatus(raw)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
		}
		filter.Status = &status
	}

	orders, total, err := h.orders.List(c.Request().Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, paginated(orders, filter.Page, filter.PageSize, total))
}

// AdminGet returns any order by id
func (h *OrderHandler) AdminGet(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	order, err := h.orders.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

// UpdateStatus moves an order along its lifecycle
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	var req OrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	status, ok := model.ParseOrderStatus(req.Status)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
	}

	order, err := h.orders.UpdateStatus(c.Request().Context(), middleware.EmailFromContext(c), id, status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

// Delete archives an order
func (h *OrderHandler) Delete(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	if err := h.orders.SoftDelete(c.Request().Context(), middleware.EmailFromContext(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "order archived"})
}

// Restore brings an archived order back
func (h *OrderHandler) Restore(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	if err := h.orders.Restore(c.Request().Context(), middleware.EmailFromContext(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "order restored"})
}

// Archived lists soft-deleted orders
func (h *OrderHandler) Archived(c echo.Context) error {
	page, pageSize := pageParams(c)

	orders, total, err := h.orders.ListArchived(c.Request().Context(), page, pageSize)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, paginated(orders, page, pageSize, total))
}
