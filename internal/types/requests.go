package types

import "github.com/annapurna-ai/backend/internal/models"

// RegisterRequest represents the signup request body. Dietary preference and
// protein goal seed the user's settings row.
type RegisterRequest struct {
	Name              string  `json:"name" binding:"required"`
	Email             string  `json:"email" binding:"required,email"`
	Password          string  `json:"password" binding:"required,min=8"`
	DietaryPreference string  `json:"dietary_preference" binding:"required"`
	ProteinGoal       float64 `json:"protein_goal"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateSettingsRequest represents the profile settings update body
type UpdateSettingsRequest struct {
	ProteinGoal       *float64 `json:"protein_goal"`
	DietaryPreference *string  `json:"dietary_preference"`
	AIModel           *string  `json:"ai_model"`
}

// LogMealRequest asks the AI to estimate a described meal and persist it.
type LogMealRequest struct {
	Description string `json:"description" binding:"required"`
	Name        string `json:"name"`
	Date        string `json:"date"`
}

// QuickCheckRequest estimates a described meal without persisting anything.
type QuickCheckRequest struct {
	Description string `json:"description" binding:"required"`
}

// CreateMealRequest creates a meal from an already-known nutritional payload,
// e.g. a recipe serving or a chosen suggestion.
type CreateMealRequest struct {
	Name          string   `json:"name" binding:"required"`
	Date          string   `json:"date"`
	Description   string   `json:"description"`
	FoodItems     []string `json:"food_items"`
	PhotoURL      string   `json:"photo_url"`
	Calories      *float64 `json:"calories" binding:"required"`
	Protein       *float64 `json:"protein"`
	Carbohydrates *float64 `json:"carbohydrates"`
	Fat           *float64 `json:"fat"`
	Fiber         *float64 `json:"fiber"`
}

// AnalyzePhotoRequest submits a meal photo for analysis. Exactly one of
// ImageURL or ImageData (base64, with MIMEType) must be set.
type AnalyzePhotoRequest struct {
	ImageURL  string `json:"image_url"`
	ImageData string `json:"image_data"`
	MIMEType  string `json:"mime_type"`
}

// GenerateRecipeRequest asks the AI to draft a recipe from a description.
type GenerateRecipeRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

// CreateRecipeRequest represents the request body for saving a recipe
type CreateRecipeRequest struct {
	Name          string                    `json:"name" binding:"required"`
	Description   string                    `json:"description"`
	Ingredients   []models.RecipeIngredient `json:"ingredients" binding:"required"`
	Servings      int                       `json:"servings" binding:"required"`
	Calories      *float64                  `json:"calories" binding:"required"`
	Protein       *float64                  `json:"protein"`
	Carbohydrates *float64                  `json:"carbohydrates"`
	Fat           *float64                  `json:"fat"`
	Fiber         *float64                  `json:"fiber"`
}

// UpdateRecipeRequest represents the request body for updating a recipe
type UpdateRecipeRequest struct {
	Name          string                    `json:"name"`
	Description   string                    `json:"description"`
	Ingredients   []models.RecipeIngredient `json:"ingredients"`
	Servings      *int                      `json:"servings"`
	Calories      *float64                  `json:"calories"`
	Protein       *float64                  `json:"protein"`
	Carbohydrates *float64                  `json:"carbohydrates"`
	Fat           *float64                  `json:"fat"`
	Fiber         *float64                  `json:"fiber"`
}

// SetWeeklyTargetRequest upserts the calorie budget for one week.
type SetWeeklyTargetRequest struct {
	StartDate      string  `json:"start_date" binding:"required"`
	TargetCalories float64 `json:"target_calories" binding:"required"`
}

// SuggestionTurn is one question/answer exchange in a suggestion dialogue.
type SuggestionTurn struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// SuggestionAnswerRequest continues a suggestion dialogue. History is the
// ordered list of prior turns; Question is the question being answered.
type SuggestionAnswerRequest struct {
	History  []SuggestionTurn `json:"history"`
	Question string           `json:"question" binding:"required"`
	Answer   string           `json:"answer" binding:"required"`
}
