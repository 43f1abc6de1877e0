// Package handler maps HTTP requests onto repository calls and shapes the
// JSON envelopes the dashboard expects.
//
// Reads answer {success:true, rows|data}. Writes answer the repository's
// Outcome with HTTP 200, refusals included. Malformed required fields get
// 400 and unexpected failures 500 with {success:false, error}.
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/meal-planner/internal/database"
	"github.com/iliyamo/meal-planner/internal/logging"
	"github.com/iliyamo/meal-planner/internal/model"
	"github.com/iliyamo/meal-planner/internal/queue"
	"github.com/iliyamo/meal-planner/internal/repository"
)

// Purger drops cached read responses after a write.
type Purger interface {
	Purge(ctx context.Context) (int, error)
}

// Handler bundles the repositories plus the post-write side effects.
type Handler struct {
	Users       *repository.UserRepo
	Follows     *repository.FollowRepo
	Recipes     *repository.RecipeRepo
	MealPlans   *repository.MealPlanRepo
	Ingredients *repository.IngredientRepo
	Setup       *repository.SetupRepo

	events queue.Publisher
	cache  Purger
}

// New wires every repository onto pool. events and cache may be nil.
func New(pool *database.Pool, events queue.Publisher, cache Purger) *Handler {
	if pool == nil {
		panic("nil pool passed to handler.New")
	}
	if events == nil {
		events = queue.Noop{}
	}
	return &Handler{
		Users:       repository.NewUserRepo(pool),
		Follows:     repository.NewFollowRepo(pool),
		Recipes:     repository.NewRecipeRepo(pool),
		MealPlans:   repository.NewMealPlanRepo(pool),
		Ingredients: repository.NewIngredientRepo(pool),
		Setup:       repository.NewSetupRepo(pool),
		events:      events,
		cache:       cache,
	}
}

func rowsOK(c echo.Context, key string, rows []database.Row) error {
	return c.JSON(http.StatusOK, echo.Map{"success": true, key: rows})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": msg})
}

// fail logs err and answers 500. The pool sentinels get a readable message,
// anything else a generic one.
func fail(c echo.Context, err error) error {
	ctx := c.Request().Context()
	logging.Ctx(ctx).Error().Err(err).Str(logging.FieldRoute, c.Path()).Msg("request failed")

	msg := "query failed"
	switch {
	case errors.Is(err, database.ErrPoolUnavailable), errors.Is(err, database.ErrPoolClosed):
		msg = "database unavailable"
	case errors.Is(err, context.Canceled):
		msg = "request cancelled"
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": msg})
}

// written answers a write Outcome and, when it succeeded, purges the
// response cache and publishes ev.
func (h *Handler) written(c echo.Context, out model.Outcome, ev queue.ChangeEvent) error {
	if out.Success {
		h.afterWrite(c, ev)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) afterWrite(c echo.Context, ev queue.ChangeEvent) {
	ctx := c.Request().Context()
	log := logging.Ctx(ctx)

	if h.cache != nil {
		if n, err := h.cache.Purge(ctx); err != nil {
			log.Warn().Err(err).Msg("cache purge failed")
		} else if n > 0 {
			log.Debug().Int("keys", n).Msg("cache purged")
		}
	}

	ev.RequestID = c.Response().Header().Get(echo.HeaderXRequestID)
	// the publisher logs its own failures; a lost event never fails the write
	_ = h.events.Publish(ctx, ev)
}
