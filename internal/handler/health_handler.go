package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Status handles the root endpoint with a service status message
func (h *Handler) Status(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Inventory Tracking API",
		"status":  "running",
	})
}

// Health handles the health check endpoint
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status": "ok",
	})
}
