package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/meal-planner/internal/database"
	"github.com/iliyamo/meal-planner/internal/database/dbtest"
	"github.com/iliyamo/meal-planner/internal/model"
)

func int64p(v int64) *int64 { return &v }

// column returns column i of every row.
func column(rows []database.Row, i int) []any {
	out := make([]any, 0, len(rows))
	for _, r := range rows {
		out = append(out, r[i])
	}
	return out
}

func TestFollowInsert(t *testing.T) {
	p := dbtest.NewSeededPool(t)
	repo := NewFollowRepo(p)
	ctx := context.Background()

	before, err := repo.List(ctx)
	require.NoError(t, err)

	t.Run("missing user", func(t *testing.T) {
		out, err := repo.Insert(ctx, model.NewFollow{UserID: 99, MealPlanID: 1, IsActive: true})
		require.NoError(t, err)
		assert.Equal(t, model.Refused(msgUserMissing), out)
	})
	t.Run("missing meal plan", func(t *testing.T) {
		out, err := repo.Insert(ctx, model.NewFollow{UserID: 1, MealPlanID: 99, IsActive: true})
		require.NoError(t, err)
		assert.Equal(t, model.Refused(msgMealPlanMissing), out)
	})
	t.Run("duplicate key", func(t *testing.T) {
		out, err := repo.Insert(ctx, model.NewFollow{UserID: 1, MealPlanID: 1, IsActive: false})
		require.NoError(t, err)
		assert.Equal(t, model.Refused(msgInsertFailed), out)
	})

	after, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after, "refused inserts write nothing")

	out, err := repo.Insert(ctx, model.NewFollow{UserID: 5, MealPlanID: 2, IsActive: true})
	require.NoError(t, err)
	assert.True(t, out.Success)

	after, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, after, len(before)+1)
	assert.Contains(t, after, database.Row{int64(5), int64(2), int64(1)})
}

func TestRecipeUpdate(t *testing.T) {
	p := dbtest.NewSeededPool(t)
	repo := NewRecipeRepo(p)
	ctx := context.Background()

	original, err := repo.List(ctx)
	require.NoError(t, err)

	refusals := []struct {
		name string
		in   model.RecipeUpdate
		want string
	}{
		{"nothing to update", model.RecipeUpdate{ID: 1}, msgNoFields},
		{"bad difficulty", model.RecipeUpdate{ID: 1, Difficulty: "extreme"}, msgBadDifficulty},
		{"unknown dish", model.RecipeUpdate{ID: 1, Name: "Lasagna"}, msgDishMissing},
		{"unknown user", model.RecipeUpdate{ID: 1, UserID: int64p(99)}, msgNewUserMissing},
		{"unknown recipe", model.RecipeUpdate{ID: 99, Difficulty: "hard"}, msgNoRecipe},
	}
	for _, tt := range refusals {
		t.Run(tt.name, func(t *testing.T) {
			out, err := repo.Update(ctx, tt.in)
			require.NoError(t, err)
			assert.False(t, out.Success)
			assert.Equal(t, tt.want, out.Message)
		})
	}

	rows, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, original, rows, "refused updates change nothing")

	out, err := repo.Update(ctx, model.RecipeUpdate{ID: 1, Name: "Grilled Cheese", Difficulty: "MEDIUM", UserID: int64p(5)})
	require.NoError(t, err)
	assert.Equal(t, model.OK(), out)

	rows, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, database.Row{int64(1), "Grilled Cheese", "medium", int64(5)}, rows[0])
}

func TestRecipeSearch(t *testing.T) {
	p := dbtest.NewSeededPool(t)
	repo := NewRecipeRepo(p)
	ctx := context.Background()

	tests := []struct {
		name string
		in   model.RecipeSearch
		want []any
	}{
		{"no criteria", model.RecipeSearch{Logic1: "OR", Logic2: "OR"},
			[]any{"Beef Stew", "Caesar Salad", "Fruit Parfait", "Pancakes", "Tomato Soup"}},
		{"difficulty", model.RecipeSearch{Difficulty: "easy"},
			[]any{"Caesar Salad", "Fruit Parfait", "Tomato Soup"}},
		{"and", model.RecipeSearch{Difficulty: "easy", Logic1: "AND", ServingTemp: "cold"},
			[]any{"Caesar Salad", "Fruit Parfait"}},
		{"or", model.RecipeSearch{Difficulty: "hard", Logic1: "OR", ServingTemp: "cold"},
			[]any{"Beef Stew", "Caesar Salad", "Fruit Parfait"}},
		{"fold is left to right", model.RecipeSearch{Difficulty: "easy", Logic1: "AND", ServingTemp: "cold", Logic2: "OR", UserID: int64p(3)},
			[]any{"Beef Stew", "Caesar Salad", "Fruit Parfait"}},
		{"or then and is not reordered", model.RecipeSearch{Difficulty: "hard", Logic1: "OR", ServingTemp: "cold", Logic2: "AND", UserID: int64p(2)},
			[]any{"Caesar Salad"}},
		{"absent condition keeps first operator", model.RecipeSearch{Logic1: "AND", ServingTemp: "hot", Logic2: "OR", UserID: int64p(1)},
			[]any{"Tomato Soup"}},
		{"injected operator falls back to AND", model.RecipeSearch{Difficulty: "easy", Logic1: "OR 1=1 --", ServingTemp: "hot"},
			[]any{"Tomato Soup"}},
		{"no match", model.RecipeSearch{Difficulty: "medium", ServingTemp: "cold"},
			[]any{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := repo.Search(ctx, tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, column(rows, 1))
		})
	}
}

func TestRecipeAggregates(t *testing.T) {
	p := dbtest.NewSeededPool(t)
	repo := NewRecipeRepo(p)
	ctx := context.Background()

	rows, err := repo.ByIngredient(ctx, "EGG")
	require.NoError(t, err)
	assert.Equal(t, []any{"Caesar Salad", "Pancakes"}, column(rows, 1))

	rows, err = repo.ByIngredient(ctx, "saffron")
	require.NoError(t, err)
	assert.Empty(t, rows)

	rows, err = repo.SumStepTimes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []any{int64(1), int64(2), int64(3), int64(4), int64(5)}, column(rows, 0))
	assert.Equal(t, []any{int64(30), int64(15), int64(30), int64(120), int64(5)}, column(rows, 2))

	rows, err = repo.WithAtMostIngredients(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []any{int64(1), int64(2), int64(4), int64(5)}, column(rows, 0))

	rows, err = repo.WithAtMostIngredients(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, rows)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 5, n)
}

func TestMealPlanDelete(t *testing.T) {
	p := dbtest.NewSeededPool(t)
	repo := NewMealPlanRepo(p)
	ctx := context.Background()

	out, err := repo.Delete(ctx, 99)
	require.NoError(t, err)
	assert.Equal(t, model.Refused(msgNoMealPlan), out)

	before, err := repo.Count(ctx)
	require.NoError(t, err)

	out, err = repo.Delete(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, model.OK(), out)

	after, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, before-1, after)

	follows, err := NewFollowRepo(p).List(ctx)
	require.NoError(t, err)
	assert.NotContains(t, column(follows, 1), int64(2), "follows of a deleted plan cascade")
}

func TestMealPlanBelowAverage(t *testing.T) {
	p := dbtest.NewSeededPool(t)
	rows, err := NewMealPlanRepo(p).BelowAverageRecipeCount(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, database.Row{int64(2), "Weekend Treats", int64(1)}, rows[0])
}

func TestUsersProjectionAndDivision(t *testing.T) {
	p := dbtest.NewSeededPool(t)
	repo := NewUserRepo(p)
	ctx := context.Background()

	rows, err := repo.Project(ctx, []string{"id", "bogus"})
	require.NoError(t, err)
	require.Len(t, rows, 5)
	for _, r := range rows {
		assert.Len(t, r, 1)
	}

	rows, err = repo.Project(ctx, []string{"name", "height"})
	require.NoError(t, err)
	assert.Equal(t, database.Row{"Alice", int64(165)}, rows[0])

	rows, err = repo.FollowingAllMealPlans(ctx)
	require.NoError(t, err)
	assert.Equal(t, []database.Row{{int64(1), "Alice"}}, rows)

	// an inactive follow does not count
	_, err = NewMealPlanRepo(p).Delete(ctx, 2)
	require.NoError(t, err)
	rows, err = repo.FollowingAllMealPlans(ctx)
	require.NoError(t, err)
	assert.Equal(t, []any{int64(1), int64(2)}, column(rows, 0))
}

func TestListsAreStable(t *testing.T) {
	p := dbtest.NewSeededPool(t)
	ctx := context.Background()

	lists := map[string]func(context.Context) ([]database.Row, error){
		"follow":      NewFollowRepo(p).List,
		"recipes":     NewRecipeRepo(p).List,
		"mealplans":   NewMealPlanRepo(p).List,
		"users":       NewUserRepo(p).List,
		"ingredients": NewIngredientRepo(p).List,
	}
	for name, list := range lists {
		first, err := list(ctx)
		require.NoError(t, err, name)
		second, err := list(ctx)
		require.NoError(t, err, name)
		assert.Equal(t, first, second, name)
		assert.NotEmpty(t, first, name)
	}

	names, err := NewIngredientRepo(p).List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []any{"Beef", "Egg", "Flour", "Lettuce", "Milk", "Tomato", "Yogurt"}, column(names, 0))
}

func TestCounts(t *testing.T) {
	p := dbtest.NewSeededPool(t)
	ctx := context.Background()

	for name, tc := range map[string]struct {
		count func(context.Context) (int64, error)
		want  int64
	}{
		"recipes":     {NewRecipeRepo(p).Count, 5},
		"users":       {NewUserRepo(p).Count, 5},
		"mealplans":   {NewMealPlanRepo(p).Count, 3},
		"ingredients": {NewIngredientRepo(p).Count, 7},
	} {
		n, err := tc.count(ctx)
		require.NoError(t, err, name)
		assert.Equal(t, tc.want, n, name)
	}
}

func TestSetupRepo(t *testing.T) {
	p := dbtest.NewPool(t)
	repo := NewSetupRepo(p)
	ctx := context.Background()

	assert.True(t, repo.Ping(ctx))

	rep, err := repo.Run(ctx)
	require.NoError(t, err)
	assert.Zero(t, rep.Skipped)
	assert.Positive(t, rep.Executed)

	// running again drops and reseeds
	again, err := repo.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, rep, again)

	n, err := NewUserRepo(p).Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 5, n)
	assert.Zero(t, p.InUse())
}
