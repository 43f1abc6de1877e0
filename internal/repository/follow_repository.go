package repository

import (
	"context"

	"github.com/iliyamo/meal-planner/internal/database"
	"github.com/iliyamo/meal-planner/internal/logging"
	"github.com/iliyamo/meal-planner/internal/model"
)

// FollowRepo manages the follow relation between users and meal plans.
type FollowRepo struct{ pool *database.Pool }

func NewFollowRepo(p *database.Pool) *FollowRepo { return &FollowRepo{pool: p} }

// List returns every follow as (usrid, mid, isactive).
func (r *FollowRepo) List(ctx context.Context) ([]database.Row, error) {
	return queryRows(ctx, r.pool, "SELECT usrid, mid, isactive FROM follow ORDER BY usrid, mid")
}

// Insert adds a follow after checking that both the user and the meal plan
// exist. A rejected insert (usually a duplicate key) is reported as a
// refused outcome; its cause is only logged.
func (r *FollowRepo) Insert(ctx context.Context, f model.NewFollow) (model.Outcome, error) {
	return database.WithConn(ctx, r.pool, func(ctx context.Context, c *database.Conn) (model.Outcome, error) {
		ok, err := c.Exists(ctx, "SELECT id FROM users WHERE id = ?", f.UserID)
		if err != nil {
			return model.Outcome{}, err
		}
		if !ok {
			return model.Refused(msgUserMissing), nil
		}

		ok, err = c.Exists(ctx, "SELECT id FROM mealplan WHERE id = ?", f.MealPlanID)
		if err != nil {
			return model.Outcome{}, err
		}
		if !ok {
			return model.Refused(msgMealPlanMissing), nil
		}

		active := 0
		if f.IsActive {
			active = 1
		}
		n, err := c.Exec(ctx, "INSERT INTO follow (usrid, mid, isactive) VALUES (?, ?, ?)", f.UserID, f.MealPlanID, active)
		if err != nil {
			logging.Ctx(ctx).Warn().Err(err).
				Int64("usrid", f.UserID).Int64("mid", f.MealPlanID).
				Msg("insert follow rejected")
			return model.Refused(msgInsertFailed), nil
		}
		return model.Outcome{Success: n > 0}, nil
	})
}
