package model

// DashboardStats are the counters shown on the dashboard landing section.
type DashboardStats struct {
	Recipes     int64 `json:"recipes"`
	Users       int64 `json:"users"`
	MealPlans   int64 `json:"mealplans"`
	Ingredients int64 `json:"ingredients"`
}
