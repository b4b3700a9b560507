package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rishebss/fifac-backend/database"
)

// Health serves /health
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// Ready serves /ready and checks the database connection.
func Ready(c echo.Context) error {
	sqlDB, err := database.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request().Context())
	}
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "db unavailable"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
}
