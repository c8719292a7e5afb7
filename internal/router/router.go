package router

import (
	"github.com/gin-gonic/gin"

	"github.com/annapurna-ai/backend/internal/api"
	"github.com/annapurna-ai/backend/internal/middleware"
	"github.com/annapurna-ai/backend/internal/service"
)

// Handlers bundles the route handlers the router wires up.
type Handlers struct {
	Auth        *api.AuthHandler
	Meals       *api.MealHandler
	Recipes     *api.RecipeHandler
	Suggestions *api.SuggestionHandler
	Models      *api.ModelHandler
	Dashboard   *api.DashboardHandler
}

// SetupRouter configures the application routes. aiLimiter may be nil when
// Redis is unavailable; AI routes then run unthrottled.
func SetupRouter(h Handlers, authService service.IAuthService, aiLimiter *middleware.RateLimiter) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORS())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")

	// Auth routes
	auth := v1.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
	}

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authService))
	{
		// Profile and targets
		profile := protected.Group("/profile")
		{
			profile.GET("/settings", h.Dashboard.GetSettings)
			profile.PUT("/settings", h.Dashboard.UpdateSettings)
		}
		targets := protected.Group("/targets")
		{
			targets.GET("", h.Dashboard.GetWeeklyTarget)
			targets.PUT("", h.Dashboard.SetWeeklyTarget)
		}

		// Dashboard
		dashboard := protected.Group("/dashboard")
		{
			dashboard.GET("/summary", h.Dashboard.Summary)
			dashboard.GET("/progress", h.Dashboard.Progress)
		}

		// Meal routes; logging and photo analysis call the AI and are
		// rate limited, plain CRUD is not.
		meals := protected.Group("/meals")
		{
			meals.GET("", h.Meals.ListMeals)
			meals.POST("", h.Meals.CreateMeal)
			meals.DELETE("/:id", h.Meals.DeleteMeal)
		}

		// Recipe routes
		recipes := protected.Group("/recipes")
		{
			recipes.GET("", h.Recipes.List)
			recipes.GET("/:id", h.Recipes.Get)
			recipes.POST("", h.Recipes.Create)
			recipes.PUT("/:id", h.Recipes.Update)
			recipes.DELETE("/:id", h.Recipes.Delete)
			recipes.POST("/:id/log", h.Recipes.LogServing)
		}

		// AI-backed routes
		ai := protected.Group("")
		if aiLimiter != nil {
			ai.Use(aiLimiter.Middleware())
		}
		{
			ai.POST("/meals/log", h.Meals.LogMeal)
			ai.POST("/meals/photo", h.Meals.AnalyzePhoto)
			ai.POST("/recipes/generate", h.Recipes.Generate)
			ai.POST("/ai/quick-check", h.Meals.QuickCheck)
			ai.GET("/ai/models", h.Models.List)
			ai.POST("/suggestions/start", h.Suggestions.Start)
			ai.POST("/suggestions/answer", h.Suggestions.Answer)
		}
	}

	return router
}
