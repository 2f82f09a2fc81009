// Package docs serves the OpenAPI document kept in api-docs/ and a Swagger UI
// page pointing at it. The document mirrors the swag annotations on the
// handlers and can be regenerated with `go tool swag`.
package docs

import (
	_ "embed"
	"errors"
	"io/fs"
	"net/http"
	"os"

	"github.com/labstack/echo/v5"

	"github.com/janisto/echo-sortable/internal/platform/respond"
)

//go:embed swagger-ui.html
var swaggerUI []byte

// Register wires documentation routes:
//   - GET /api-docs/openapi.json serves the OpenAPI document at specPath.
//   - GET /api-docs serves an embedded Swagger UI page.
func Register(e *echo.Echo, specPath string) {
	e.GET("/api-docs/openapi.json", func(c *echo.Context) error {
		if _, err := os.Stat(specPath); errors.Is(err, fs.ErrNotExist) {
			return respond.Error404("OpenAPI document has not been generated")
		}
		c.Response().Header().Set("Content-Type", "application/json")
		return c.File(specPath)
	})

	e.GET("/api-docs", func(c *echo.Context) error {
		return c.HTMLBlob(http.StatusOK, swaggerUI)
	})
}
