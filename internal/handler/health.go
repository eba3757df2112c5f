package handler

import (
	"net/http"

	"github.com/iamsashka/Kursach/pkg/database"
	"github.com/labstack/echo/v4"
)

// Health reports service liveness and database connectivity
func Health(c echo.Context) error {
	status := "ok"
	dbStatus := "ok"

	if db, err := database.GetDB().DB(); err != nil || db.PingContext(c.Request().Context()) != nil {
		status = "degraded"
		dbStatus = "unreachable"
	}

	code := http.StatusOK
	if status != "ok" {
		code = http.StatusServiceUnavailable
	}
	return c.JSON(code, echo.Map{
		"status":   status,
		"database": dbStatus,
	})
}
