package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/meal-planner/internal/model"
	"github.com/iliyamo/meal-planner/internal/queue"
)

type updateRecipeRequest struct {
	ID         Field `json:"id"`
	Name       Field `json:"name"`
	Difficulty Field `json:"difficulty"`
	UserID     Field `json:"usrid"`
}

type searchRecipesRequest struct {
	Difficulty  Field `json:"difficulty"`
	Logic       Field `json:"logic"`
	ServingTemp Field `json:"servingTemp"`
	Logic2      Field `json:"logic2"`
	UserID      Field `json:"userID"`
}

// FetchRecipes lists every recipe for the update form.
func (h *Handler) FetchRecipes(c echo.Context) error {
	rows, err := h.Recipes.List(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return rowsOK(c, "rows", rows)
}

// UpdateRecipe applies the non-empty fields of the body to one recipe.
func (h *Handler) UpdateRecipe(c echo.Context) error {
	var req updateRecipeRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	id, err := req.ID.Int64()
	if err != nil {
		return badRequest(c, "id must be a number")
	}
	uid, err := req.UserID.OptionalInt64()
	if err != nil {
		return badRequest(c, "usrid must be a number")
	}

	u := model.RecipeUpdate{ID: id, Name: req.Name.String(), Difficulty: req.Difficulty.String(), UserID: uid}
	out, err := h.Recipes.Update(c.Request().Context(), u)
	if err != nil {
		return fail(c, err)
	}

	ev := queue.NewChangeEvent(queue.KindRecipeUpdated, "recipe_create", map[string]any{"id": id})
	ev.Fields = map[string]any{}
	if u.Name != "" {
		ev.Fields["name"] = u.Name
	}
	if u.Difficulty != "" {
		ev.Fields["difficulty"] = u.Difficulty
	}
	if uid != nil {
		ev.Fields["usrid"] = *uid
	}
	return h.written(c, out, ev)
}

// SearchRecipes filters recipes by difficulty, serving temperature and
// creator, combined left to right with the two logic operators.
func (h *Handler) SearchRecipes(c echo.Context) error {
	var req searchRecipesRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	uid, err := req.UserID.OptionalInt64()
	if err != nil {
		return badRequest(c, "userID must be a number")
	}

	rows, err := h.Recipes.Search(c.Request().Context(), model.RecipeSearch{
		Difficulty:  req.Difficulty.String(),
		Logic1:      req.Logic.String(),
		ServingTemp: req.ServingTemp.String(),
		Logic2:      req.Logic2.String(),
		UserID:      uid,
	})
	if err != nil {
		return fail(c, err)
	}
	return rowsOK(c, "data", rows)
}

// RecipesByIngredient lists recipes using the ?ingredient= name.
func (h *Handler) RecipesByIngredient(c echo.Context) error {
	name := c.QueryParam("ingredient")
	if name == "" {
		return badRequest(c, "ingredient is required")
	}
	rows, err := h.Recipes.ByIngredient(c.Request().Context(), name)
	if err != nil {
		return fail(c, err)
	}
	return rowsOK(c, "data", rows)
}

// SumRecipeTimes totals the step times of each recipe.
func (h *Handler) SumRecipeTimes(c echo.Context) error {
	rows, err := h.Recipes.SumStepTimes(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return rowsOK(c, "data", rows)
}

// RecipeIngredientCountFilter lists recipes with at most ?maxIngredients=
// distinct ingredients.
func (h *Handler) RecipeIngredientCountFilter(c echo.Context) error {
	limit, err := strconv.ParseInt(c.QueryParam("maxIngredients"), 10, 64)
	if err != nil {
		return badRequest(c, "maxIngredients must be a number")
	}
	rows, err := h.Recipes.WithAtMostIngredients(c.Request().Context(), limit)
	if err != nil {
		return fail(c, err)
	}
	return rowsOK(c, "data", rows)
}
