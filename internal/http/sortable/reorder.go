package sortable

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v5"

	applog "github.com/janisto/echo-sortable/internal/platform/logging"
	"github.com/janisto/echo-sortable/internal/platform/metrics"
	"github.com/janisto/echo-sortable/internal/platform/respond"
	"github.com/janisto/echo-sortable/internal/service/item"
)

const (
	msgNotFound    = "Item not found"
	msgUpdateFails = "An error occurred while updating item position"
)

// handleReorder godoc
//
//	@Summary		Reorder item
//	@Description	Overwrites the position of one item after a drag-and-drop. Other items keep their positions.
//	@Tags			sortable
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			id			query		int	true	"Item id"
//	@Param			position	query		int	true	"New zero-based position"
//	@Success		200			{boolean}	bool
//	@Failure		404			{object}	respond.LegacyError
//	@Failure		422			{object}	respond.ProblemDetails
//	@Failure		500			{object}	respond.LegacyError
//	@Router			/reorder-items [post]
func handleReorder(svc item.Service, m *metrics.ReorderMetrics) echo.HandlerFunc {
	return func(c *echo.Context) error {
		input := bindReorderInput(c)
		ctx := applog.With(c.Request().Context(), slog.String("item_id", input.ID))
		ev := applog.AuditEvent{
			Action:       "item.reorder",
			Actor:        c.RealIP(),
			ResourceType: "item",
			ResourceID:   input.ID,
			Details:      map[string]any{"position": input.Position},
		}

		id, ok := parseID(input.ID)
		if !ok {
			record(ctx, m, ev, metrics.ResultNotFound)
			return respond.Legacy(c, http.StatusNotFound, msgNotFound)
		}

		if err := c.Validate(&input); err != nil {
			record(ctx, m, ev, metrics.ResultInvalid)
			return err
		}
		position, err := parsePosition(input.Position)
		if err != nil {
			record(ctx, m, ev, metrics.ResultInvalid)
			return err
		}

		if _, err := svc.UpdatePosition(ctx, id, position); err != nil {
			if errors.Is(err, item.ErrNotFound) {
				record(ctx, m, ev, metrics.ResultNotFound)
				return respond.Legacy(c, http.StatusNotFound, msgNotFound)
			}
			applog.LogError(ctx, "update item position failed", err, slog.Int("position", position))
			record(ctx, m, ev, metrics.ResultError)
			return respond.Legacy(c, http.StatusInternalServerError, msgUpdateFails)
		}

		record(ctx, m, ev, metrics.ResultSuccess)
		return c.JSON(http.StatusOK, true)
	}
}

func record(ctx context.Context, m *metrics.ReorderMetrics, ev applog.AuditEvent, result string) {
	ev.Result = result
	applog.LogAuditEvent(ctx, ev)
	m.Observe(result)
}
