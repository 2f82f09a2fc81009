package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v5"
)

const (
	// HeaderXRequestID is the canonical request ID header name.
	HeaderXRequestID = "X-Request-ID"
	// HeaderXCorrelationID is accepted as an alias when X-Request-ID is absent.
	HeaderXCorrelationID = "X-Correlation-ID"
	// RequestIDKey is the echo context key holding the request ID.
	RequestIDKey = "request_id"

	maxRequestIDLength = 128
)

// validRequestID accepts printable ASCII only, so ids are safe to log.
func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}
	for i := range len(id) {
		if id[i] < 0x20 || id[i] > 0x7E {
			return false
		}
	}
	return true
}

// newRequestID returns a time-ordered UUIDv7, falling back to v4 if the
// clock source fails.
func newRequestID() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}

// RequestID returns Echo middleware that tags every request with an id.
// A valid incoming X-Request-ID (or X-Correlation-ID) is reused; anything
// else is replaced with a fresh UUID. The id is echoed in X-Request-ID.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c *echo.Context) error {
			h := c.Request().Header
			reqID := h.Get(HeaderXRequestID)
			if reqID == "" {
				reqID = h.Get(HeaderXCorrelationID)
			}
			if !validRequestID(reqID) {
				reqID = newRequestID()
			}

			c.Set(RequestIDKey, reqID)
			c.Response().Header().Set(HeaderXRequestID, reqID)

			return next(c)
		}
	}
}

// RequestIDFrom returns the id assigned by RequestID, or "" outside it.
func RequestIDFrom(c *echo.Context) string {
	id, _ := c.Get(RequestIDKey).(string)
	return id
}
