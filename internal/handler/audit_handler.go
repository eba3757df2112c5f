package handler

import (
	"net/http"

	"github.com/iamsashka/Kursach/internal/repository"
	"github.com/iamsashka/Kursach/internal/service"
	"github.com/labstack/echo/v4"
)

// AuditHandler exposes the audit trail listing
type AuditHandler struct {
	audit *service.AuditService
}

// NewAuditHandler creates an audit handler
func NewAuditHandler(audit *service.AuditService) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// List returns audit entries, newest first, filterable by entity type and action
func (h *AuditHandler) List(c echo.Context) error {
	filter := repository.AuditFilter{
		EntityType: c.QueryParam("entity_type"),
		Action:     c.QueryParam("action"),
	}
	filter.Page, filter.PageSize = pageParams(c)

	entries, total, err := h.audit.List(c.Request().Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, paginated(entries, filter.Page, filter.PageSize, total))
}
