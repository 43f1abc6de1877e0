package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/meal-planner/internal/logging"
	"github.com/iliyamo/meal-planner/internal/queue"
)

// SetupDatabase drops, recreates and seeds the schema.
func (h *Handler) SetupDatabase(c echo.Context) error {
	ctx := c.Request().Context()
	report, err := h.Setup.Run(ctx)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Msg("setup script failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": err.Error()})
	}

	ev := queue.NewChangeEvent(queue.KindDatabaseSetup, "schema", nil)
	ev.Fields = map[string]any{"executed": report.Executed, "skipped": report.Skipped}
	h.afterWrite(c, ev)

	return c.JSON(http.StatusOK, echo.Map{
		"success":  true,
		"executed": report.Executed,
		"skipped":  report.Skipped,
	})
}
