package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/iliyamo/meal-planner/internal/model"
)

type counter func(context.Context) (int64, error)

func countJSON(count counter) echo.HandlerFunc {
	return func(c echo.Context) error {
		n, err := count(c.Request().Context())
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "count": n})
	}
}

func (h *Handler) CountRecipes(c echo.Context) error     { return countJSON(h.Recipes.Count)(c) }
func (h *Handler) CountUsers(c echo.Context) error       { return countJSON(h.Users.Count)(c) }
func (h *Handler) CountMealPlans(c echo.Context) error   { return countJSON(h.MealPlans.Count)(c) }
func (h *Handler) CountIngredients(c echo.Context) error { return countJSON(h.Ingredients.Count)(c) }

// DashboardStats runs the four counters concurrently, one pooled connection
// each. The first failure cancels the rest.
func (h *Handler) DashboardStats(c echo.Context) error {
	var stats model.DashboardStats
	g, ctx := errgroup.WithContext(c.Request().Context())
	for _, job := range []struct {
		count counter
		dst   *int64
	}{
		{h.Recipes.Count, &stats.Recipes},
		{h.Users.Count, &stats.Users},
		{h.MealPlans.Count, &stats.MealPlans},
		{h.Ingredients.Count, &stats.Ingredients},
	} {
		g.Go(func() error {
			n, err := job.count(ctx)
			if err != nil {
				return err
			}
			*job.dst = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": stats})
}
