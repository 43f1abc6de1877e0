package repository

import (
	"context"
	"strings"

	"github.com/iliyamo/meal-planner/internal/database"
)

// userColumns is the projection whitelist for the users table.
var userColumns = []string{"id", "name", "height", "weight"}

// UserRepo runs queries against the users table.
type UserRepo struct{ pool *database.Pool }

func NewUserRepo(p *database.Pool) *UserRepo { return &UserRepo{pool: p} }

// List returns id and name of every user, for dropdowns.
func (r *UserRepo) List(ctx context.Context) ([]database.Row, error) {
	return queryRows(ctx, r.pool, "SELECT id, name FROM users ORDER BY id")
}

// ProjectedColumns is the column list Project will select for requested.
func ProjectedColumns(requested []string) []string {
	return projectColumns(requested, userColumns, "id")
}

// Project selects the caller-chosen columns of every user. Unknown columns
// are dropped silently; with nothing left, only id is returned.
func (r *UserRepo) Project(ctx context.Context, columns []string) ([]database.Row, error) {
	cols := ProjectedColumns(columns)
	q := "SELECT " + strings.Join(cols, ", ") + " FROM users ORDER BY id"
	return queryRows(ctx, r.pool, q)
}

// FollowingAllMealPlans returns users with an active follow on every meal
// plan: there is no meal plan they do not actively follow.
func (r *UserRepo) FollowingAllMealPlans(ctx context.Context) ([]database.Row, error) {
	const q = `SELECT u.id, u.name
		FROM users u
		WHERE NOT EXISTS (
			SELECT 1
			FROM mealplan mp
			WHERE NOT EXISTS (
				SELECT 1
				FROM follow f
				WHERE f.usrid = u.id
				  AND f.mid = mp.id
				  AND f.isactive = 1
			)
		)
		ORDER BY u.id`
	return queryRows(ctx, r.pool, q)
}

// Count returns the number of users.
func (r *UserRepo) Count(ctx context.Context) (int64, error) {
	return countRows(ctx, r.pool, "SELECT COUNT(*) FROM users")
}

func queryRows(ctx context.Context, p *database.Pool, q string, args ...any) ([]database.Row, error) {
	return database.WithConn(ctx, p, func(ctx context.Context, c *database.Conn) ([]database.Row, error) {
		return c.Query(ctx, q, args...)
	})
}

func countRows(ctx context.Context, p *database.Pool, q string, args ...any) (int64, error) {
	return database.WithConn(ctx, p, func(ctx context.Context, c *database.Conn) (int64, error) {
		return c.Count(ctx, q, args...)
	})
}
