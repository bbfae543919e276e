package middleware

import (
	"inventory-service/pkg/logger"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"

// RequestIDMiddleware tags every request with a fresh UUID, echoes it
// back in the response header, and stores a logger carrying the id so
// handlers can correlate their log lines.
func RequestIDMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := uuid.New().String()

		c.Request().Header.Set(requestIDHeader, requestID)
		c.Response().Header().Set(requestIDHeader, requestID)
		c.Set("request_id", requestID)

		log := logger.GetLogger().With(zap.String("request_id", requestID))
		c.Set("logger", log)
		c.SetRequest(c.Request().WithContext(
			logger.WithLogger(c.Request().Context(), log)))

		return next(c)
	}
}
