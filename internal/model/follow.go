package model

// NewFollow is a request to make a user follow a meal plan.
type NewFollow struct {
	UserID     int64 // follow.usrid -> users.id
	MealPlanID int64 // follow.mid -> mealplan.id
	IsActive   bool  // follow.isactive, stored as 0/1
}
