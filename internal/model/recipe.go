package model

import "strings"

// Difficulties accepted by recipe_create.difficulty.
var Difficulties = []string{"easy", "medium", "hard"}

// NormalizeDifficulty lower-cases d and reports whether it is allowed.
func NormalizeDifficulty(d string) (string, bool) {
	d = strings.ToLower(strings.TrimSpace(d))
	for _, ok := range Difficulties {
		if d == ok {
			return d, true
		}
	}
	return d, false
}

// RecipeUpdate carries a partial update of a recipe. Empty strings and nil
// pointers mean "leave unchanged".
type RecipeUpdate struct {
	ID         int64
	Name       string // must exist in dishservingtemperatures
	Difficulty string // easy | medium | hard
	UserID     *int64 // must exist in users
}

// Empty reports whether no field would change.
func (u RecipeUpdate) Empty() bool {
	return u.Name == "" && u.Difficulty == "" && u.UserID == nil
}

// RecipeSearch holds up to three optional filters joined by two logical
// operators, applied left to right over the filters that are present.
type RecipeSearch struct {
	Difficulty  string
	Logic1      string
	ServingTemp string
	Logic2      string
	UserID      *int64
}
