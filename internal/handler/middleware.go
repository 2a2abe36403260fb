package handler

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
)

// RequestLogger logs each HTTP request with structured fields.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				// Resolve the status before logging; echo only writes the
				// error response after the middleware chain returns.
				c.Error(err)
			}

			slog.Info("http request",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"project", c.Param("project"),
				"status", c.Response().Status,
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			)

			return nil
		}
	}
}
