package repository

import (
	"context"

	"github.com/iliyamo/meal-planner/internal/database"
)

type IngredientRepo struct{ pool *database.Pool }

func NewIngredientRepo(p *database.Pool) *IngredientRepo { return &IngredientRepo{pool: p} }

// List returns the distinct ingredient names in alphabetical order.
func (r *IngredientRepo) List(ctx context.Context) ([]database.Row, error) {
	return queryRows(ctx, r.pool, "SELECT DISTINCT name FROM ingredient ORDER BY name")
}

func (r *IngredientRepo) Count(ctx context.Context) (int64, error) {
	return countRows(ctx, r.pool, "SELECT COUNT(*) FROM ingredient")
}
