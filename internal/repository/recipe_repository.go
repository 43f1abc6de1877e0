package repository

import (
	"context"

	"github.com/iliyamo/meal-planner/internal/database"
	"github.com/iliyamo/meal-planner/internal/logging"
	"github.com/iliyamo/meal-planner/internal/model"
)

// RecipeRepo runs queries over recipe_create and the tables hanging off it
// (steps, used ingredients, serving temperatures).
type RecipeRepo struct{ pool *database.Pool }

func NewRecipeRepo(p *database.Pool) *RecipeRepo { return &RecipeRepo{pool: p} }

// List returns (id, name, difficulty, usrid) for every recipe.
func (r *RecipeRepo) List(ctx context.Context) ([]database.Row, error) {
	return queryRows(ctx, r.pool, "SELECT id, name, difficulty, usrid FROM recipe_create ORDER BY id")
}

// Update applies the non-empty fields of u. The new name must be a known
// dish (dishservingtemperatures) and the new creator an existing user;
// both are checked before the UPDATE so the caller gets a readable reason
// instead of a constraint violation.
func (r *RecipeRepo) Update(ctx context.Context, u model.RecipeUpdate) (model.Outcome, error) {
	if u.Empty() {
		return model.Refused(msgNoFields), nil
	}
	var difficulty string
	if u.Difficulty != "" {
		d, ok := model.NormalizeDifficulty(u.Difficulty)
		if !ok {
			return model.Refused(msgBadDifficulty), nil
		}
		difficulty = d
	}

	return database.WithConn(ctx, r.pool, func(ctx context.Context, c *database.Conn) (model.Outcome, error) {
		var sets []assignment

		if u.Name != "" {
			ok, err := c.Exists(ctx, "SELECT name FROM dishservingtemperatures WHERE name = ?", u.Name)
			if err != nil {
				return model.Outcome{}, err
			}
			if !ok {
				return model.Refused(msgDishMissing), nil
			}
			sets = append(sets, assignment{"name", u.Name})
		}

		if difficulty != "" {
			sets = append(sets, assignment{"difficulty", difficulty})
		}

		if u.UserID != nil {
			ok, err := c.Exists(ctx, "SELECT id FROM users WHERE id = ?", *u.UserID)
			if err != nil {
				return model.Outcome{}, err
			}
			if !ok {
				return model.Refused(msgNewUserMissing), nil
			}
			sets = append(sets, assignment{"usrid", *u.UserID})
		}

		q, args := buildUpdate("recipe_create", sets, "id", u.ID)
		n, err := c.Exec(ctx, q, args...)
		if err != nil {
			logging.Ctx(ctx).Warn().Err(err).Int64("recipe_id", u.ID).Msg("update recipe rejected")
			return model.Refused(msgUpdateFailed), nil
		}
		if n == 0 {
			return model.Refused(msgNoRecipe), nil
		}
		return model.OK(), nil
	})
}

// Search returns recipes with their serving temperature and creator name,
// filtered by up to three optional criteria folded left to right with the
// two supplied operators. With no criteria every recipe is returned.
func (r *RecipeRepo) Search(ctx context.Context, s model.RecipeSearch) ([]database.Row, error) {
	var conds []condition
	if s.Difficulty != "" {
		d, _ := model.NormalizeDifficulty(s.Difficulty)
		conds = append(conds, condition{"r.difficulty = ?", d})
	}
	if s.ServingTemp != "" {
		conds = append(conds, condition{"d.servingtemperature = ?", s.ServingTemp})
	}
	if s.UserID != nil {
		conds = append(conds, condition{"r.usrid = ?", *s.UserID})
	}

	q := `SELECT r.id, r.name, r.difficulty, d.servingtemperature, u.name AS creator_name
		FROM recipe_create r
		LEFT JOIN dishservingtemperatures d ON r.name = d.name
		LEFT JOIN users u ON r.usrid = u.id
		WHERE 1=1`
	where, args := foldConditions(conds, s.Logic1, s.Logic2)
	if where != "" {
		q += " AND " + where
	}
	q += " ORDER BY r.name"

	logging.Ctx(ctx).Debug().Str(logging.FieldStatement, q).Int("binds", len(args)).Msg("search recipes")
	return queryRows(ctx, r.pool, q, args...)
}

// ByIngredient lists recipes using the named ingredient (case-insensitive)
// together with the amount and unit used.
func (r *RecipeRepo) ByIngredient(ctx context.Context, ingredient string) ([]database.Row, error) {
	const q = `SELECT DISTINCT r.id, r.name, r.difficulty, rui.amount, rui.unit
		FROM recipe_create r
		JOIN recipeusedingredients rui ON r.id = rui.rid
		JOIN ingredient i ON rui.iid = i.id
		WHERE LOWER(i.name) = LOWER(?)
		ORDER BY r.name`
	return queryRows(ctx, r.pool, q, ingredient)
}

// SumStepTimes totals TimeToComplete over each recipe's steps.
func (r *RecipeRepo) SumStepTimes(ctx context.Context) ([]database.Row, error) {
	const q = `SELECT rs.id, r.name, SUM(rs.timetocomplete) AS totaltime
		FROM recipestep rs
		JOIN recipe_create r ON r.id = rs.id
		GROUP BY rs.id, r.name
		ORDER BY rs.id`
	return queryRows(ctx, r.pool, q)
}

// WithAtMostIngredients lists recipes using no more than limit ingredients.
func (r *RecipeRepo) WithAtMostIngredients(ctx context.Context, limit int64) ([]database.Row, error) {
	const q = `SELECT r.id, r.name, i.numingredients
		FROM recipe_create r
		JOIN (SELECT rid, COUNT(iid) AS numingredients
		      FROM recipeusedingredients
		      GROUP BY rid
		      HAVING COUNT(iid) <= ?) i
		  ON r.id = i.rid
		ORDER BY r.id`
	return queryRows(ctx, r.pool, q, limit)
}

// Count returns the number of recipes.
func (r *RecipeRepo) Count(ctx context.Context) (int64, error) {
	return countRows(ctx, r.pool, "SELECT COUNT(*) FROM recipe_create")
}
