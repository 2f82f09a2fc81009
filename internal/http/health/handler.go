package health

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v5"

	applog "github.com/janisto/echo-sortable/internal/platform/logging"
)

// checkTimeout bounds how long the store may take to answer a health probe.
const checkTimeout = 2 * time.Second

// Response is the payload for the health endpoint.
type Response struct {
	Status string `json:"status" example:"healthy"`
}

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewHandler returns the health endpoint. It answers 200 "healthy" when store
// responds to Ping (or is nil) and 503 "unhealthy" otherwise.
//
//	@Summary		Health check
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	Response
//	@Failure		503	{object}	Response
//	@Router			/health [get]
func NewHandler(store Pinger) echo.HandlerFunc {
	return func(c *echo.Context) error {
		if store != nil {
			ctx, cancel := context.WithTimeout(c.Request().Context(), checkTimeout)
			defer cancel()

			if err := store.Ping(ctx); err != nil {
				applog.LogError(ctx, "store health check failed", err)
				return c.JSON(http.StatusServiceUnavailable, Response{Status: "unhealthy"})
			}
		}
		return c.JSON(http.StatusOK, Response{Status: "healthy"})
	}
}
