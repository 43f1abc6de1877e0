package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/meal-planner/internal/handler"
	"github.com/iliyamo/meal-planner/internal/middleware"
	"github.com/iliyamo/meal-planner/internal/utils"
	"github.com/iliyamo/meal-planner/internal/web"
)

// Options carries the optional middleware around the API routes. Zero
// values disable caching, rate limiting and the admin guard.
type Options struct {
	Cache       *middleware.ResponseCache
	RateLimit   echo.MiddlewareFunc
	AdminSecret string
}

// RegisterRoutes registers liveness and connectivity probes. Neither is
// cached or rate limited.
func RegisterRoutes(e *echo.Echo, h *handler.Handler) {
	e.GET("/healthz", handler.Health)
	e.GET("/check-db-connection", h.CheckDBConnection)
}

// RegisterQueries registers the read routes behind the rate limiter and
// the response cache.
func RegisterQueries(e *echo.Echo, h *handler.Handler, opts Options) {
	read := []echo.MiddlewareFunc{limiter(opts), opts.Cache.Middleware()}
	get := func(path string, fn echo.HandlerFunc) { e.GET(path, fn, read...) }

	get("/get-all-follow", h.GetAllFollow)
	get("/fetch-recipes", h.FetchRecipes)
	get("/get-all-mealplans", h.GetAllMealPlans)
	get("/get-all-users", h.GetAllUsers)
	get("/get-all-ingredients", h.GetAllIngredients)
	get("/recipes-by-ingredient", h.RecipesByIngredient)
	get("/sum-recipe-times", h.SumRecipeTimes)
	get("/recipe-ingredient-count-filter", h.RecipeIngredientCountFilter)
	get("/below-average-recipe-count-meal-plans", h.BelowAverageRecipeCountMealPlans)
	get("/division-users-following-all-mealplans", h.DivisionUsersFollowingAllMealPlans)

	get("/count-recipes", h.CountRecipes)
	get("/count-users", h.CountUsers)
	get("/count-mealplans", h.CountMealPlans)
	get("/count-ingredients", h.CountIngredients)
	get("/dashboard-stats", h.DashboardStats)

	// POST because the body carries the criteria; never cached
	e.POST("/search-recipes", h.SearchRecipes, limiter(opts))
	e.POST("/project-users", h.ProjectUsers, limiter(opts))
}

// RegisterWrites registers the mutating routes. Handlers purge the cache
// themselves after a successful write.
func RegisterWrites(e *echo.Echo, h *handler.Handler, opts Options) {
	rl := limiter(opts)
	e.POST("/insert-follow", h.InsertFollow, rl)
	e.POST("/update-recipe", h.UpdateRecipe, rl)
	e.POST("/delete-mealplan", h.DeleteMealPlan, rl)
}

// RegisterAdmin registers /setup-database. With an admin secret configured
// the route requires a Bearer token carrying the ADMIN role; without one it
// stays open for local development.
func RegisterAdmin(e *echo.Echo, h *handler.Handler, opts Options) {
	mws := []echo.MiddlewareFunc{limiter(opts)}
	if opts.AdminSecret != "" {
		mws = append(mws, middleware.JWTAuth(opts.AdminSecret), middleware.RequireRole(utils.RoleAdmin))
	}
	e.POST("/setup-database", h.SetupDatabase, mws...)
}

// RegisterDashboard serves the embedded dashboard at the site root.
func RegisterDashboard(e *echo.Echo) {
	e.StaticFS("/", web.Static())
}

// Register wires every route group.
func Register(e *echo.Echo, h *handler.Handler, opts Options) {
	RegisterRoutes(e, h)
	RegisterQueries(e, h, opts)
	RegisterWrites(e, h, opts)
	RegisterAdmin(e, h, opts)
	RegisterDashboard(e)
}

func limiter(opts Options) echo.MiddlewareFunc {
	if opts.RateLimit == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return opts.RateLimit
}
