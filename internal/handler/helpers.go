package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/iamsashka/Kursach/internal/service"
	"github.com/iamsashka/Kursach/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// pageParams reads page/page_size query parameters, falling back to the
// catalog defaults for anything unusable.
func pageParams(c echo.Context) (int, int) {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		page = service.DefaultPage
	}
	pageSize, err := strconv.Atoi(c.QueryParam("page_size"))
	if err != nil || pageSize < 1 || pageSize > service.MaxPageSize {
		pageSize = service.DefaultPageSize
	}
	return page, pageSize
}

// paginated wraps a listing in the standard envelope
func paginated(items interface{}, page, pageSize int, total int64) echo.Map {
	totalPages := int64(0)
	if pageSize > 0 {
		totalPages = (total + int64(pageSize) - 1) / int64(pageSize)
	}
	return echo.Map{
		"items":       items,
		"currentPage": page,
		"totalItems":  total,
		"totalPages":  totalPages,
	}
}

// idParam parses the :id route parameter
func idParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

// respondError maps service errors onto HTTP statuses. Unknown errors are
// logged with detail and answered with a generic 500 body.
func respondError(c echo.Context, err error) error {
	var limitErr *service.FavoritesLimitError
	if errors.As(err, &limitErr) {
		return c.JSON(http.StatusConflict, echo.Map{
			"error":           limitErr.Error(),
			"limit":           limitErr.Limit,
			"oldest_favorite": limitErr,
		})
	}

	switch {
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrAccountDisabled):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrDuplicateName),
		errors.Is(err, service.ErrAlreadyInFavorites),
		errors.Is(err, service.ErrInvalidStatusTransition):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrInsufficientStock),
		errors.Is(err, service.ErrShippingAddressRequired):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrInvalidRole):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	logger.FromEcho(c).Error("Unhandled error", zap.Error(err))
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
}
