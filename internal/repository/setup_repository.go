package repository

import (
	"context"

	"github.com/iliyamo/meal-planner/internal/database"
)

// SetupRepo covers connectivity checks and the one-time schema setup.
type SetupRepo struct{ pool *database.Pool }

func NewSetupRepo(p *database.Pool) *SetupRepo { return &SetupRepo{pool: p} }

// Ping reports whether a connection can be borrowed and answers.
func (r *SetupRepo) Ping(ctx context.Context) bool {
	ok, err := database.WithConn(ctx, r.pool, func(ctx context.Context, c *database.Conn) (bool, error) {
		if err := c.Ping(ctx); err != nil {
			return false, err
		}
		return true, nil
	})
	return err == nil && ok
}

// Run drops, recreates and seeds every table using the script for the
// pool's dialect. Individual statement failures are skipped and counted.
func (r *SetupRepo) Run(ctx context.Context) (database.ScriptReport, error) {
	return database.WithConn(ctx, r.pool, func(ctx context.Context, c *database.Conn) (database.ScriptReport, error) {
		script, err := database.SetupScript(c.Dialect())
		if err != nil {
			return database.ScriptReport{}, err
		}
		return c.RunScript(ctx, database.SplitStatements(script))
	})
}
