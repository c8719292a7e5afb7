package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/annapurna-ai/backend/internal/models"
	"github.com/annapurna-ai/backend/internal/types"
)

// IAuthService is the surface handlers and middleware need from auth.
type IAuthService interface {
	Register(ctx context.Context, name, email, password string, preference models.DietaryPreference, proteinGoal float64) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}

// IEstimationService covers the four estimation contracts.
type IEstimationService interface {
	EstimateMealFromText(ctx context.Context, model, description string) (*MealEstimate, error)
	AnalyzeMealImage(ctx context.Context, model, imageURL string, image *InlineImage) (*ImageAnalysis, error)
	GenerateRecipe(ctx context.Context, model, recipePrompt string) (*RecipeEstimate, error)
	SuggestionInferencer
}

// IMealService is the meal persistence surface used by handlers.
type IMealService interface {
	CreateMeal(ctx context.Context, meal *models.Meal) (*models.Meal, error)
	GetMeal(ctx context.Context, userID, id uuid.UUID) (*models.Meal, error)
	ListMeals(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]models.Meal, error)
	DeleteMeal(ctx context.Context, userID, id uuid.UUID) error
	DailySummary(ctx context.Context, userID uuid.UUID, day time.Time) (NutritionTotals, error)
	Progress(ctx context.Context, userID uuid.UUID, until time.Time, days int) ([]DailyProgress, error)
}

// IRecipeService is the recipe persistence surface used by handlers.
type IRecipeService interface {
	CreateRecipe(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error)
	GetRecipe(ctx context.Context, userID, id uuid.UUID) (*models.Recipe, error)
	UpdateRecipe(ctx context.Context, userID, id uuid.UUID, changes RecipeUpdate) (*models.Recipe, error)
	DeleteRecipe(ctx context.Context, userID, id uuid.UUID) error
	ListRecipes(ctx context.Context, userID uuid.UUID, query string) ([]models.Recipe, error)
}

// IProfileService covers settings and weekly targets.
type IProfileService interface {
	GetSettings(ctx context.Context, userID uuid.UUID) (*models.UserSettings, error)
	UpdateSettings(ctx context.Context, userID uuid.UUID, proteinGoal *float64, preference *models.DietaryPreference, aiModel *string) (*models.UserSettings, error)
	GetWeeklyTarget(ctx context.Context, userID uuid.UUID, date time.Time) (*models.WeeklyTarget, error)
	SetWeeklyTarget(ctx context.Context, userID uuid.UUID, date time.Time, targetCalories float64) (*models.WeeklyTarget, error)
}

// IPhotoService stores meal photos.
type IPhotoService interface {
	UploadMealPhoto(ctx context.Context, imageData []byte, contentType string) (string, error)
}
