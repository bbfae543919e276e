package handler

import (
	"net/http"
	"strconv"

	"inventory-service/internal/validation"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// Handler bundles the HTTP handlers for all four entities. The database
// handle is injected at startup rather than read from a package global.
type Handler struct {
	db *gorm.DB
}

// New returns a Handler backed by db.
func New(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// parseID parses a numeric path parameter.
func parseID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// listParams reads the skip/limit pagination query parameters.
func listParams(c echo.Context) (skip, limit int) {
	skip, _ = strconv.Atoi(c.QueryParam("skip"))
	if skip < 0 {
		skip = 0
	}

	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 {
		limit = 100 // Default page size
	}

	return skip, limit
}

// validationFailed renders a 422 response with per-field details.
func validationFailed(c echo.Context, err error) error {
	return c.JSON(http.StatusUnprocessableEntity, echo.Map{
		"error":   "Validation failed",
		"details": validation.Details(err),
	})
}
