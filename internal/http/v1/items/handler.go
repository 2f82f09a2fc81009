package items

import (
	"net/http"

	"github.com/labstack/echo/v5"

	applog "github.com/janisto/echo-sortable/internal/platform/logging"
	"github.com/janisto/echo-sortable/internal/platform/respond"
	"github.com/janisto/echo-sortable/internal/service/item"
)

// Register wires item routes into the provided group.
func Register(g *echo.Group, svc item.Service) {
	g.GET("/items", listHandler(svc))
}

// listHandler godoc
//
//	@Summary		List items
//	@Description	Returns every item ordered by position, ties broken by id
//	@Tags			items
//	@Produce		json,application/cbor
//	@Success		200	{object}	ListData
//	@Failure		500	{object}	respond.ProblemDetails
//	@Router			/v1/items [get]
func listHandler(svc item.Service) echo.HandlerFunc {
	return func(c *echo.Context) error {
		ctx := c.Request().Context()
		items, err := svc.List(ctx)
		if err != nil {
			applog.LogError(ctx, "list items failed", err)
			return respond.Error500("internal error")
		}
		return respond.Negotiate(c, http.StatusOK, toListData(items))
	}
}
