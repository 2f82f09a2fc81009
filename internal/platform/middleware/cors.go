package middleware

import (
	"net/http"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
)

// CORS returns Echo middleware for the item API and reorder endpoint.
// With no origins configured every origin is allowed.
func CORS(origins ...string) echo.MiddlewareFunc {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowHeaders: []string{
			"Accept",
			"Content-Type",
			HeaderXRequestID,
			HeaderXCorrelationID,
			"traceparent",
		},
		ExposeHeaders: []string{
			HeaderXRequestID,
		},
		MaxAge: 300,
	})
}
