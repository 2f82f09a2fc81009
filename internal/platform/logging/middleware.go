package logging

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v5"
)

// requestIDKey is where the request ID middleware leaves the id on the echo context.
const requestIDKey = "request_id"

// RequestLogger returns Echo middleware that puts a request-scoped logger in
// the request context. The logger carries the request id and, when a valid
// traceparent header is present, the trace it belongs to. projectID may be
// empty.
func RequestLogger(projectID string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c *echo.Context) error {
			reqID, _ := c.Get(requestIDKey).(string)
			logger, traceID := requestLogger(Logger(), c.Request().Header.Get(traceparentHeader), projectID, reqID)

			ctx := c.Request().Context()
			ctx = contextWithTraceID(ctx, traceID)
			ctx = WithLogger(ctx, logger)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// AccessLogger returns Echo middleware that logs structured request summaries
// after each request completes. Server errors are logged at error severity.
// A returned error is rendered by the Echo error handler first so the logged
// status is the one the client received.
func AccessLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c *echo.Context) error {
			start := time.Now()

			if err := next(c); err != nil {
				c.Echo().HTTPErrorHandler(c, err)
			}

			resp, unwrapErr := echo.UnwrapResponse(c.Response())
			status := 0
			size := 0
			if unwrapErr == nil {
				status = resp.Status
				size = int(resp.Size)
			}

			lvl := slog.LevelInfo
			if status >= 500 {
				lvl = slog.LevelError
			}

			logger := LoggerFromContext(c.Request().Context())
			logger.LogAttrs(c.Request().Context(), lvl, "request completed",
				slog.String("method", c.Request().Method),
				slog.String("path", c.Request().URL.Path),
				slog.String("route", c.Path()),
				slog.String("remote_ip", c.RealIP()),
				slog.Int("status", status),
				slog.Int("bytes", size),
				slog.Duration("duration", time.Since(start)),
			)
			return nil
		}
	}
}
