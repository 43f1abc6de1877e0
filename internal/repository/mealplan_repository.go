package repository

import (
	"context"

	"github.com/iliyamo/meal-planner/internal/database"
	"github.com/iliyamo/meal-planner/internal/logging"
	"github.com/iliyamo/meal-planner/internal/model"
)

// MealPlanRepo runs queries over mealplan and its scheduled meals.
type MealPlanRepo struct{ pool *database.Pool }

func NewMealPlanRepo(p *database.Pool) *MealPlanRepo { return &MealPlanRepo{pool: p} }

// List returns (id, name, mealsperweek, datecreated) for every meal plan.
func (r *MealPlanRepo) List(ctx context.Context) ([]database.Row, error) {
	return queryRows(ctx, r.pool, "SELECT id, name, mealsperweek, datecreated FROM mealplan ORDER BY id")
}

// Delete removes one meal plan; follows and schedule links cascade.
func (r *MealPlanRepo) Delete(ctx context.Context, id int64) (model.Outcome, error) {
	return database.WithConn(ctx, r.pool, func(ctx context.Context, c *database.Conn) (model.Outcome, error) {
		n, err := c.Exec(ctx, "DELETE FROM mealplan WHERE id = ?", id)
		if err != nil {
			logging.Ctx(ctx).Warn().Err(err).Int64("mealplan_id", id).Msg("delete meal plan rejected")
			return model.Refused(msgDeleteFailed), nil
		}
		if n == 0 {
			return model.Refused(msgNoMealPlan), nil
		}
		return model.OK(), nil
	})
}

// BelowAverageRecipeCount lists meal plans scheduling fewer distinct
// recipes than the average meal plan does.
func (r *MealPlanRepo) BelowAverageRecipeCount(ctx context.Context) ([]database.Row, error) {
	const q = `SELECT mp.id, mp.name, COUNT(DISTINCT smmf.rid) AS numrecipes
		FROM mealplanscheduledmeals mpsm
		JOIN mealplan mp ON mp.id = mpsm.mpid
		JOIN scheduledmeal_madefrom smmf ON smmf.id = mpsm.smid
		GROUP BY mp.id, mp.name
		HAVING COUNT(DISTINCT smmf.rid) < (
			SELECT AVG(recipecount)
			FROM (
				SELECT COUNT(DISTINCT smmf2.rid) AS recipecount
				FROM mealplanscheduledmeals mpsm2
				JOIN scheduledmeal_madefrom smmf2 ON mpsm2.smid = smmf2.id
				GROUP BY mpsm2.mpid
			) plan_counts
		)
		ORDER BY mp.id`
	return queryRows(ctx, r.pool, q)
}

// Count returns the number of meal plans.
func (r *MealPlanRepo) Count(ctx context.Context) (int64, error) {
	return countRows(ctx, r.pool, "SELECT COUNT(*) FROM mealplan")
}
