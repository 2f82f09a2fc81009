// Package sortable serves the drag-and-drop item list: the HTML page, the
// browser script that reports drops, and the endpoint persisting them.
package sortable

import (
	"github.com/labstack/echo/v5"

	"github.com/janisto/echo-sortable/internal/platform/metrics"
	"github.com/janisto/echo-sortable/internal/service/item"
)

// Register wires the sortable page, its script and the reorder endpoint.
// m may be nil.
func Register(g *echo.Group, svc item.Service, m *metrics.ReorderMetrics) {
	g.GET("/sortable-items", handlePage(svc))
	g.GET("/static/sortable.js", handleScript)
	g.POST("/reorder-items", handleReorder(svc, m))
}
