package routes

import (
	"github.com/labstack/echo/v5"

	"github.com/janisto/echo-sortable/internal/http/v1/items"
	"github.com/janisto/echo-sortable/internal/service/item"
)

// Register wires all v1 routes into the provided group.
func Register(v1 *echo.Group, svc item.Service) {
	items.Register(v1, svc)
}
