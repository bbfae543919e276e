package logger

import (
	"context"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ctxKey keeps the request logger entry from colliding with values
// stored by other packages.
type ctxKey struct{}

// WithLogger attaches a request-scoped logger to ctx.
func WithLogger(ctx context.Context, log *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// FromContext resolves the logger for an echo request. It prefers the
// instance the request-id middleware stashed under "logger", then the
// request's Go context, and falls back to the global logger so call
// sites never receive nil.
func FromContext(c echo.Context) *zap.Logger {
	if log, ok := c.Get("logger").(*zap.Logger); ok {
		return log
	}
	if log, ok := c.Request().Context().Value(ctxKey{}).(*zap.Logger); ok {
		return log
	}
	return zap.L()
}
