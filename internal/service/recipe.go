package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/annapurna-ai/backend/internal/models"
)

// RecipeService handles recipe persistence and search
type RecipeService struct {
	db *gorm.DB
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// CreateRecipe creates a new recipe
func (s *RecipeService) CreateRecipe(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error) {
	recipe.Embedding = GenerateEmbedding(recipe.Name + " " + recipe.Description)
	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return nil, err
	}
	return recipe, nil
}

// GetRecipe retrieves a recipe owned by the given user
func (s *RecipeService) GetRecipe(ctx context.Context, userID, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// RecipeUpdate is a partial change set for a recipe. Nil fields are left
// untouched, so zero is a settable value (a water recipe has 0 calories).
type RecipeUpdate struct {
	Name          *string
	Description   *string
	Ingredients   models.JSONBIngredients
	Servings      *int
	Calories      *float64
	Protein       *float64
	Carbohydrates *float64
	Fat           *float64
	Fiber         *float64
}

// UpdateRecipe applies the given changes and refreshes the search embedding
func (s *RecipeService) UpdateRecipe(ctx context.Context, userID, id uuid.UUID, changes RecipeUpdate) (*models.Recipe, error) {
	recipe, err := s.GetRecipe(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if changes.Name != nil {
		recipe.Name = *changes.Name
	}
	if changes.Description != nil {
		recipe.Description = *changes.Description
	}
	if changes.Ingredients != nil {
		recipe.Ingredients = changes.Ingredients
	}
	if changes.Servings != nil {
		recipe.Servings = *changes.Servings
	}
	if changes.Calories != nil {
		recipe.Calories = *changes.Calories
	}
	if changes.Protein != nil {
		recipe.Protein = changes.Protein
	}
	if changes.Carbohydrates != nil {
		recipe.Carbohydrates = changes.Carbohydrates
	}
	if changes.Fat != nil {
		recipe.Fat = changes.Fat
	}
	if changes.Fiber != nil {
		recipe.Fiber = changes.Fiber
	}
	recipe.Embedding = GenerateEmbedding(recipe.Name + " " + recipe.Description)

	if err := s.db.WithContext(ctx).Save(recipe).Error; err != nil {
		return nil, err
	}
	return recipe, nil
}

// DeleteRecipe deletes a recipe owned by the given user
func (s *RecipeService) DeleteRecipe(ctx context.Context, userID, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&models.Recipe{}, "id = ? AND user_id = ?", id, userID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListRecipes lists the user's recipes, optionally filtered by a search
// query. On Postgres the embedding distance orders keyword matches by
// similarity; elsewhere plain keyword search is used.
func (s *RecipeService) ListRecipes(ctx context.Context, userID uuid.UUID, query string) ([]models.Recipe, error) {
	var recipes []models.Recipe

	dbQuery := s.db.WithContext(ctx).Where("user_id = ?", userID)

	if query != "" {
		like := "%" + strings.ToLower(query) + "%"
		keyword := "LOWER(name) LIKE ? OR LOWER(description) LIKE ?"
		if s.db.Dialector.Name() == "postgres" {
			vec := GenerateEmbedding(query)
			dbQuery = dbQuery.Where(keyword, like, like).
				Clauses(clause.OrderBy{Expression: clause.Expr{
					SQL:  "embedding <-> ?",
					Vars: []interface{}{vec},
				}})
		} else {
			dbQuery = dbQuery.Where(keyword, like, like)
		}
	} else {
		dbQuery = dbQuery.Order("updated_at DESC")
	}

	if err := dbQuery.Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}
