package sortable

import (
	"bytes"
	_ "embed"
	"html/template"
	"net/http"

	"github.com/labstack/echo/v5"

	applog "github.com/janisto/echo-sortable/internal/platform/logging"
	"github.com/janisto/echo-sortable/internal/platform/respond"
	"github.com/janisto/echo-sortable/internal/service/item"
)

// AssetOrigin serves jQuery and jQuery UI to the sortable page.
const AssetOrigin = "https://code.jquery.com"

//go:embed templates/page.html
var pageHTML string

//go:embed static/sortable.js
var sortableJS []byte

var pageTemplate = template.Must(template.New("page").Parse(pageHTML))

type pageData struct {
	AssetOrigin string
	Items       []item.Item
}

// handlePage godoc
//
//	@Summary		Sortable items page
//	@Description	Renders all items in position order as a drag-and-drop list
//	@Tags			sortable
//	@Produce		html
//	@Success		200	{string}	string	"HTML page"
//	@Failure		500	{object}	respond.ProblemDetails
//	@Router			/sortable-items [get]
func handlePage(svc item.Service) echo.HandlerFunc {
	return func(c *echo.Context) error {
		ctx := c.Request().Context()
		items, err := svc.List(ctx)
		if err != nil {
			applog.LogError(ctx, "list items failed", err)
			return respond.Error500("internal error")
		}

		var buf bytes.Buffer
		if err := pageTemplate.Execute(&buf, pageData{AssetOrigin: AssetOrigin, Items: items}); err != nil {
			applog.LogError(ctx, "render sortable page failed", err)
			return respond.Error500("internal error")
		}
		return c.HTMLBlob(http.StatusOK, buf.Bytes())
	}
}

func handleScript(c *echo.Context) error {
	c.Response().Header().Set("Cache-Control", "no-cache")
	return c.Blob(http.StatusOK, "text/javascript; charset=utf-8", sortableJS)
}
