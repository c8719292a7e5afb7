package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
)

// EstimationService wraps the generative client with the fixed
// request/response contracts for each estimation use case. Responses that do
// not conform to their declared output schema fail the whole call with
// ErrSchemaValidation; they are never coerced into partial results.
type EstimationService struct {
	client GenerativeClient
}

// NewEstimationService creates an EstimationService over the given client.
func NewEstimationService(client GenerativeClient) *EstimationService {
	return &EstimationService{client: client}
}

// MealEstimate is the validated output of the text meal flow. Calories are
// always present; macros stay nil when the model did not estimate them.
type MealEstimate struct {
	FoodItems         []string `json:"food_items"`
	EstimatedCalories float64  `json:"estimated_calories"`
	Protein           *float64 `json:"protein,omitempty"`
	Carbohydrates     *float64 `json:"carbohydrates,omitempty"`
	Fat               *float64 `json:"fat,omitempty"`
	Fiber             *float64 `json:"fiber,omitempty"`
}

const logMealPrompt = `You are an expert Indian nutritionist. A user has described a meal they ate. Your job is to:

1. Identify the individual food items in the meal, assuming it's Indian cuisine.
2. Estimate the total calorie count for the entire meal.
3. Estimate the protein, carbohydrates, fat, and fiber in grams.

Here is the meal description:

%s

Respond only with a JSON object of this exact shape:
{
  "foodItems": ["roti", "dal"],
  "estimatedCalories": 350,
  "protein": 12,
  "carbohydrates": 40,
  "fat": 9,
  "fiber": 6
}
"foodItems" and "estimatedCalories" are required and the numeric fields must be numbers, not strings. Omit any macro you cannot estimate.`

// EstimateMealFromText runs the text meal flow.
func (s *EstimationService) EstimateMealFromText(ctx context.Context, model, description string) (*MealEstimate, error) {
	if strings.TrimSpace(description) == "" {
		return nil, fmt.Errorf("meal description must not be empty")
	}

	raw, err := s.client.Generate(ctx, model, fmt.Sprintf(logMealPrompt, description), nil)
	if err != nil {
		return nil, err
	}

	var out struct {
		FoodItems         []string `json:"foodItems"`
		EstimatedCalories *float64 `json:"estimatedCalories"`
		Protein           *float64 `json:"protein"`
		Carbohydrates     *float64 `json:"carbohydrates"`
		Fat               *float64 `json:"fat"`
		Fiber             *float64 `json:"fiber"`
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		log.Printf("[EstimationService] malformed meal estimate: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrSchemaValidation, err)
	}
	if out.EstimatedCalories == nil {
		return nil, fmt.Errorf("%w: missing required field estimatedCalories", ErrSchemaValidation)
	}
	if len(out.FoodItems) == 0 {
		return nil, fmt.Errorf("%w: missing required field foodItems", ErrSchemaValidation)
	}

	return &MealEstimate{
		FoodItems:         out.FoodItems,
		EstimatedCalories: *out.EstimatedCalories,
		Protein:           out.Protein,
		Carbohydrates:     out.Carbohydrates,
		Fat:               out.Fat,
		Fiber:             out.Fiber,
	}, nil
}

// AnalyzedFoodItem is one detected item in a meal photo.
type AnalyzedFoodItem struct {
	Name          string   `json:"name"`
	Quantity      string   `json:"quantity"`
	Calories      float64  `json:"calories"`
	Protein       *float64 `json:"protein,omitempty"`
	Carbohydrates *float64 `json:"carbohydrates,omitempty"`
	Fat           *float64 `json:"fat,omitempty"`
	Fiber         *float64 `json:"fiber,omitempty"`
}

// ImageAnalysis is the validated output of the image meal flow.
type ImageAnalysis struct {
	FoodItems          []AnalyzedFoodItem `json:"food_items"`
	TotalCalories      float64            `json:"total_calories"`
	TotalProtein       float64            `json:"total_protein"`
	TotalCarbohydrates float64            `json:"total_carbohydrates"`
	TotalFat           float64            `json:"total_fat"`
	TotalFiber         float64            `json:"total_fiber"`
	Confidence         string             `json:"confidence,omitempty"`
	Suggestions        string             `json:"suggestions,omitempty"`
}

const analyzeImagePrompt = `You are an expert nutritionist and food recognition specialist with deep knowledge of Indian cuisine.

Analyze the meal image and provide detailed nutritional information.

Instructions:
1. Identify all visible food items in the image
2. Estimate the quantity/portion size for each item (be specific: use cups, grams, pieces, etc.)
3. Calculate nutritional values for each item individually
4. Provide total nutritional information for the entire meal
5. Consider typical Indian meal portions and preparations
6. Be conservative with calorie estimates if portions are unclear

Respond only with a JSON object of this exact shape:
{
  "foodItems": [{"name": "dal", "quantity": "1 cup", "calories": 180, "protein": 9, "carbohydrates": 27, "fat": 4, "fiber": 8}],
  "totalCalories": 180,
  "totalProtein": 9,
  "totalCarbohydrates": 27,
  "totalFat": 4,
  "totalFiber": 8,
  "confidence": "high",
  "suggestions": "optional note about the meal"
}
"foodItems", all totals, and per-item "name", "quantity" and "calories" are required; numeric fields must be numbers. Omit per-item macros you cannot estimate.`

// AnalyzeMealImage runs the image meal flow. Exactly one of imageURL or image
// must be provided; a URL is passed to the model as text context while inline
// bytes travel as a media part.
func (s *EstimationService) AnalyzeMealImage(ctx context.Context, model, imageURL string, image *InlineImage) (*ImageAnalysis, error) {
	if imageURL == "" && image == nil {
		return nil, fmt.Errorf("an image URL or inline image data is required")
	}

	prompt := analyzeImagePrompt
	if imageURL != "" && image == nil {
		prompt += "\n\nThe meal photo is hosted at: " + imageURL
	}

	raw, err := s.client.Generate(ctx, model, prompt, image)
	if err != nil {
		return nil, err
	}

	var out struct {
		FoodItems []struct {
			Name          string   `json:"name"`
			Quantity      string   `json:"quantity"`
			Calories      *float64 `json:"calories"`
			Protein       *float64 `json:"protein"`
			Carbohydrates *float64 `json:"carbohydrates"`
			Fat           *float64 `json:"fat"`
			Fiber         *float64 `json:"fiber"`
		} `json:"foodItems"`
		TotalCalories      *float64 `json:"totalCalories"`
		TotalProtein       *float64 `json:"totalProtein"`
		TotalCarbohydrates *float64 `json:"totalCarbohydrates"`
		TotalFat           *float64 `json:"totalFat"`
		TotalFiber         *float64 `json:"totalFiber"`
		Confidence         string   `json:"confidence"`
		Suggestions        string   `json:"suggestions"`
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		log.Printf("[EstimationService] malformed image analysis: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrSchemaValidation, err)
	}
	if len(out.FoodItems) == 0 {
		return nil, fmt.Errorf("%w: missing required field foodItems", ErrSchemaValidation)
	}
	for i, item := range out.FoodItems {
		if item.Name == "" || item.Quantity == "" {
			return nil, fmt.Errorf("%w: food item %d missing name or quantity", ErrSchemaValidation, i)
		}
		if item.Calories == nil {
			return nil, fmt.Errorf("%w: food item %d missing required field calories", ErrSchemaValidation, i)
		}
	}
	for name, v := range map[string]*float64{
		"totalCalories":      out.TotalCalories,
		"totalProtein":       out.TotalProtein,
		"totalCarbohydrates": out.TotalCarbohydrates,
		"totalFat":           out.TotalFat,
		"totalFiber":         out.TotalFiber,
	} {
		if v == nil {
			return nil, fmt.Errorf("%w: missing required field %s", ErrSchemaValidation, name)
		}
	}

	analysis := &ImageAnalysis{
		TotalCalories:      *out.TotalCalories,
		TotalProtein:       *out.TotalProtein,
		TotalCarbohydrates: *out.TotalCarbohydrates,
		TotalFat:           *out.TotalFat,
		TotalFiber:         *out.TotalFiber,
		Confidence:         out.Confidence,
		Suggestions:        out.Suggestions,
	}
	for _, item := range out.FoodItems {
		analysis.FoodItems = append(analysis.FoodItems, AnalyzedFoodItem{
			Name:          item.Name,
			Quantity:      item.Quantity,
			Calories:      *item.Calories,
			Protein:       item.Protein,
			Carbohydrates: item.Carbohydrates,
			Fat:           item.Fat,
			Fiber:         item.Fiber,
		})
	}
	return analysis, nil
}

// RecipeEstimate is the validated output of the recipe generation flow.
// Nutritional figures are per serving.
type RecipeEstimate struct {
	Name          string             `json:"name"`
	Description   string             `json:"description,omitempty"`
	Ingredients   []RecipeIngredient `json:"ingredients"`
	Servings      int                `json:"servings"`
	Calories      float64            `json:"calories"`
	Protein       *float64           `json:"protein,omitempty"`
	Carbohydrates *float64           `json:"carbohydrates,omitempty"`
	Fat           *float64           `json:"fat,omitempty"`
	Fiber         *float64           `json:"fiber,omitempty"`
}

// RecipeIngredient mirrors the models type but belongs to the contract layer
// so validated output carries no persistence concerns.
type RecipeIngredient struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Notes    string `json:"notes,omitempty"`
}

const createRecipePrompt = `You are an expert Indian nutritionist and chef. A user wants to create a recipe. Your job is to:

1. Generate a clear recipe name based on the description
2. Provide a list of ingredients with specific quantities (be realistic and precise)
3. Determine the number of servings this recipe typically makes
4. Calculate nutritional information PER SERVING

Here is the recipe description from the user:

%s

Use realistic ingredient quantities that make sense for Indian cuisine and be specific with measurements (cups, grams, tablespoons).

Respond only with a JSON object of this exact shape:
{
  "name": "Palak Paneer",
  "description": "optional brief description",
  "ingredients": [{"name": "paneer", "quantity": "200g", "notes": "cubed"}],
  "servings": 4,
  "calories": 320,
  "protein": 14,
  "carbohydrates": 12,
  "fat": 24,
  "fiber": 4
}
"name", "ingredients", "servings" and "calories" are required; "servings" and the nutrition fields must be numbers, not strings. Omit macros you cannot estimate.`

// GenerateRecipe runs the recipe generation flow.
func (s *EstimationService) GenerateRecipe(ctx context.Context, model, recipePrompt string) (*RecipeEstimate, error) {
	if strings.TrimSpace(recipePrompt) == "" {
		return nil, fmt.Errorf("recipe description must not be empty")
	}

	raw, err := s.client.Generate(ctx, model, fmt.Sprintf(createRecipePrompt, recipePrompt), nil)
	if err != nil {
		return nil, err
	}

	var out struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Ingredients []struct {
			Name     string `json:"name"`
			Quantity string `json:"quantity"`
			Notes    string `json:"notes"`
		} `json:"ingredients"`
		Servings      *float64 `json:"servings"`
		Calories      *float64 `json:"calories"`
		Protein       *float64 `json:"protein"`
		Carbohydrates *float64 `json:"carbohydrates"`
		Fat           *float64 `json:"fat"`
		Fiber         *float64 `json:"fiber"`
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		log.Printf("[EstimationService] malformed recipe estimate: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrSchemaValidation, err)
	}
	if out.Name == "" {
		return nil, fmt.Errorf("%w: missing required field name", ErrSchemaValidation)
	}
	if len(out.Ingredients) == 0 {
		return nil, fmt.Errorf("%w: missing required field ingredients", ErrSchemaValidation)
	}
	if out.Servings == nil || *out.Servings < 1 {
		return nil, fmt.Errorf("%w: missing or invalid field servings", ErrSchemaValidation)
	}
	if out.Calories == nil {
		return nil, fmt.Errorf("%w: missing required field calories", ErrSchemaValidation)
	}

	estimate := &RecipeEstimate{
		Name:          out.Name,
		Description:   out.Description,
		Servings:      int(*out.Servings),
		Calories:      *out.Calories,
		Protein:       out.Protein,
		Carbohydrates: out.Carbohydrates,
		Fat:           out.Fat,
		Fiber:         out.Fiber,
	}
	for i, ing := range out.Ingredients {
		if ing.Name == "" || ing.Quantity == "" {
			return nil, fmt.Errorf("%w: ingredient %d missing name or quantity", ErrSchemaValidation, i)
		}
		estimate.Ingredients = append(estimate.Ingredients, RecipeIngredient{
			Name:     ing.Name,
			Quantity: ing.Quantity,
			Notes:    ing.Notes,
		})
	}
	return estimate, nil
}
