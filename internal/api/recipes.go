package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/annapurna-ai/backend/internal/models"
	"github.com/annapurna-ai/backend/internal/service"
	"github.com/annapurna-ai/backend/internal/types"
)

// RecipeHandler handles the recipe book and AI recipe generation
type RecipeHandler struct {
	recipes    service.IRecipeService
	meals      service.IMealService
	estimation service.IEstimationService
	profile    service.IProfileService
}

// NewRecipeHandler creates a new RecipeHandler instance
func NewRecipeHandler(recipes service.IRecipeService, meals service.IMealService, estimation service.IEstimationService, profile service.IProfileService) *RecipeHandler {
	return &RecipeHandler{
		recipes:    recipes,
		meals:      meals,
		estimation: estimation,
		profile:    profile,
	}
}

func (h *RecipeHandler) userModel(c *gin.Context, userID uuid.UUID) string {
	settings, err := h.profile.GetSettings(c.Request.Context(), userID)
	if err != nil {
		return ""
	}
	return settings.AIModel
}

// Generate handles POST /recipes/generate: ask the model for a full recipe
// with per-serving nutrition. The result is returned for review, not saved.
func (h *RecipeHandler) Generate(c *gin.Context) {
	userID, authed := currentUserID(c)
	if !authed {
		return
	}

	var req types.GenerateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "a recipe prompt is required")
		return
	}

	estimate, err := h.estimation.GenerateRecipe(c.Request.Context(), h.userModel(c, userID), req.Prompt)
	if err != nil {
		fail(c, err, "Failed to generate recipe. Please try again.")
		return
	}

	ok(c, http.StatusOK, estimate)
}

// Create handles POST /recipes
func (h *RecipeHandler) Create(c *gin.Context) {
	userID, authed := currentUserID(c)
	if !authed {
		return
	}

	var req types.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if req.Servings < 1 {
		badRequest(c, "servings must be at least 1")
		return
	}
	if *req.Calories < 0 {
		badRequest(c, "calories must not be negative")
		return
	}

	recipe := &models.Recipe{
		UserID:        userID,
		Name:          req.Name,
		Description:   req.Description,
		Ingredients:   models.JSONBIngredients(req.Ingredients),
		Servings:      req.Servings,
		Calories:      *req.Calories,
		Protein:       req.Protein,
		Carbohydrates: req.Carbohydrates,
		Fat:           req.Fat,
		Fiber:         req.Fiber,
	}
	if _, err := h.recipes.CreateRecipe(c.Request.Context(), recipe); err != nil {
		c.JSON(http.StatusInternalServerError, result{Success: false, Error: "Failed to save recipe"})
		return
	}

	ok(c, http.StatusCreated, recipe)
}

// List handles GET /recipes?q=
func (h *RecipeHandler) List(c *gin.Context) {
	userID, authed := currentUserID(c)
	if !authed {
		return
	}

	recipes, err := h.recipes.ListRecipes(c.Request.Context(), userID, c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, result{Success: false, Error: "Failed to load recipes"})
		return
	}

	ok(c, http.StatusOK, recipes)
}

// Get handles GET /recipes/:id
func (h *RecipeHandler) Get(c *gin.Context) {
	userID, authed := currentUserID(c)
	if !authed {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid recipe id")
		return
	}

	recipe, err := h.recipes.GetRecipe(c.Request.Context(), userID, id)
	if err != nil {
		c.JSON(http.StatusNotFound, result{Success: false, Error: "recipe not found"})
		return
	}

	ok(c, http.StatusOK, recipe)
}

// Update handles PUT /recipes/:id
func (h *RecipeHandler) Update(c *gin.Context) {
	userID, authed := currentUserID(c)
	if !authed {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid recipe id")
		return
	}

	var req types.UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	changes := service.RecipeUpdate{
		Ingredients:   models.JSONBIngredients(req.Ingredients),
		Protein:       req.Protein,
		Carbohydrates: req.Carbohydrates,
		Fat:           req.Fat,
		Fiber:         req.Fiber,
	}
	if req.Name != "" {
		changes.Name = &req.Name
	}
	if req.Description != "" {
		changes.Description = &req.Description
	}
	if req.Servings != nil {
		if *req.Servings < 1 {
			badRequest(c, "servings must be at least 1")
			return
		}
		changes.Servings = req.Servings
	}
	if req.Calories != nil {
		if *req.Calories < 0 {
			badRequest(c, "calories must not be negative")
			return
		}
		changes.Calories = req.Calories
	}

	recipe, err := h.recipes.UpdateRecipe(c.Request.Context(), userID, id, changes)
	if err != nil {
		c.JSON(http.StatusNotFound, result{Success: false, Error: "recipe not found"})
		return
	}

	ok(c, http.StatusOK, recipe)
}

// Delete handles DELETE /recipes/:id
func (h *RecipeHandler) Delete(c *gin.Context) {
	userID, authed := currentUserID(c)
	if !authed {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid recipe id")
		return
	}

	if err := h.recipes.DeleteRecipe(c.Request.Context(), userID, id); err != nil {
		c.JSON(http.StatusNotFound, result{Success: false, Error: "recipe not found"})
		return
	}

	c.Status(http.StatusNoContent)
}

// LogServing handles POST /recipes/:id/log: record one serving of a saved
// recipe as a meal for the given date.
func (h *RecipeHandler) LogServing(c *gin.Context) {
	userID, authed := currentUserID(c)
	if !authed {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid recipe id")
		return
	}

	var req struct {
		Date string `json:"date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		badRequest(c, "invalid request body")
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		badRequest(c, "invalid date")
		return
	}

	recipe, err := h.recipes.GetRecipe(c.Request.Context(), userID, id)
	if err != nil {
		c.JSON(http.StatusNotFound, result{Success: false, Error: "recipe not found"})
		return
	}

	items := make(models.JSONBStringArray, 0, len(recipe.Ingredients))
	for _, ing := range recipe.Ingredients {
		items = append(items, ing.Name)
	}

	meal := &models.Meal{
		UserID:        userID,
		Name:          recipe.Name,
		Date:          date,
		Description:   "1 serving of " + recipe.Name,
		FoodItems:     items,
		Calories:      recipe.Calories,
		Protein:       recipe.Protein,
		Carbohydrates: recipe.Carbohydrates,
		Fat:           recipe.Fat,
		Fiber:         recipe.Fiber,
	}
	if _, err := h.meals.CreateMeal(c.Request.Context(), meal); err != nil {
		c.JSON(http.StatusInternalServerError, result{Success: false, Error: "Failed to log meal"})
		return
	}

	ok(c, http.StatusCreated, meal)
}
