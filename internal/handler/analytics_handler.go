package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/iamsashka/Kursach/internal/service"
	"github.com/labstack/echo/v4"
)

// AnalyticsHandler exposes the back-office dashboard and its CSV export
type AnalyticsHandler struct {
	analytics *service.AnalyticsService
	exports   *service.ExportService
}

// NewAnalyticsHandler creates an analytics handler
func NewAnalyticsHandler(analytics *service.AnalyticsService, exports *service.ExportService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics, exports: exports}
}

// Dashboard aggregates the requested date range. Without parameters it covers
// the last 30 days.
func (h *AnalyticsHandler) Dashboard(c echo.Context) error {
	from, to, err := dateRange(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	dashboard, err := h.analytics.Dashboard(c.Request().Context(), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dashboard)
}

// ExportCSV downloads the dashboard as CSV
func (h *AnalyticsHandler) ExportCSV(c echo.Context) error {
	from, to, err := dateRange(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	dashboard, err := h.analytics.Dashboard(c.Request().Context(), from, to)
	if err != nil {
		return respondError(c, err)
	}

	filename := fmt.Sprintf("analytics_%s_%s.csv", from.Format("2006-01-02"), to.Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", []byte(h.exports.AnalyticsCSV(dashboard)))
}

// dateRange parses from/to query parameters as ISO dates. The range is
// inclusive of the to day.
func dateRange(c echo.Context) (time.Time, time.Time, error) {
	now := time.Now()
	from := now.AddDate(0, 0, -30)
	to := now

	if raw := c.QueryParam("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid from date %q", raw)
		}
		from = parsed
	}
	if raw := c.QueryParam("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid to date %q", raw)
		}
		to = parsed.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("to date precedes from date")
	}
	return from, to, nil
}
