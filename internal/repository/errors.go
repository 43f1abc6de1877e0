// Package repository holds the query handlers: one parameterized statement
// (two when a reference has to be checked first) per operation, each run on
// a single borrowed connection.
//
// Reads return positional rows. Writes return a model.Outcome: a refusal
// the client should see (missing reference, nothing to update, rejected
// write) is an Outcome with Success false and a nil error, while anything
// unexpected is returned as an error for the handler to turn into a 500.
package repository

// Messages shown to dashboard users when a write is refused. They are
// advisory text, not a contract.
const (
	msgUserMissing     = "User ID does not exist."
	msgMealPlanMissing = "Meal Plan ID does not exist."
	msgInsertFailed    = "Insert failed (possibly duplicate PK)."
	msgNoFields        = "No fields to update."
	msgDishMissing     = "New recipe name does not exist in DishServingTemperatures."
	msgNewUserMissing  = "New user ID does not exist."
	msgBadDifficulty   = "Difficulty must be one of: easy, medium, hard."
	msgNoRecipe        = "No recipe with that ID."
	msgUpdateFailed    = "Update failed."
	msgNoMealPlan      = "No meal plan with that ID."
	msgDeleteFailed    = "Delete failed."
)
