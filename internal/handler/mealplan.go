package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/meal-planner/internal/queue"
)

type deleteMealPlanRequest struct {
	ID Field `json:"id"`
}

func (h *Handler) GetAllMealPlans(c echo.Context) error {
	rows, err := h.MealPlans.List(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return rowsOK(c, "rows", rows)
}

// DeleteMealPlan removes one meal plan. Follows and schedules go with it.
func (h *Handler) DeleteMealPlan(c echo.Context) error {
	var req deleteMealPlanRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	id, err := req.ID.Int64()
	if err != nil {
		return badRequest(c, "id must be a number")
	}

	out, err := h.MealPlans.Delete(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return h.written(c, out, queue.NewChangeEvent(queue.KindMealPlanDeleted, "mealplan", map[string]any{"id": id}))
}

func (h *Handler) BelowAverageRecipeCountMealPlans(c echo.Context) error {
	rows, err := h.MealPlans.BelowAverageRecipeCount(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return rowsOK(c, "data", rows)
}
