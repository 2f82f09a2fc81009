package sortable

import (
	"strconv"

	"github.com/labstack/echo/v5"

	"github.com/janisto/echo-sortable/internal/platform/respond"
)

// ReorderInput holds the raw reorder parameters as sent by the browser.
type ReorderInput struct {
	ID       string `query:"id"`
	Position string `query:"position" validate:"required,numeric"`
}

// bindReorderInput reads id and position from the query string, falling back
// to the form body. The query string wins when both are present.
func bindReorderInput(c *echo.Context) ReorderInput {
	return ReorderInput{
		ID:       param(c, "id"),
		Position: param(c, "position"),
	}
}

func param(c *echo.Context, name string) string {
	if v := c.QueryParam(name); v != "" {
		return v
	}
	return c.Request().PostFormValue(name)
}

// parseID reports whether raw names an item at all. Anything that is not a
// base-10 integer cannot match a stored id.
func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// parsePosition converts an already validated position to an int.
func parsePosition(raw string) (int, error) {
	position, err := strconv.Atoi(raw)
	if err != nil {
		return 0, respond.Error422("validation failed", respond.ErrorDetail{
			Message:  "position must be an integer",
			Location: "position",
			Value:    raw,
		})
	}
	return position, nil
}
