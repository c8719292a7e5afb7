package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/annapurna-ai/backend/internal/models"
	"github.com/annapurna-ai/backend/internal/testhelpers"
)

func TestRecipeCRUD(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	svc := NewRecipeService(db)
	ctx := context.Background()
	userID := seedUser(t, db, "recipes@example.com")

	recipe, err := svc.CreateRecipe(ctx, &models.Recipe{
		UserID: userID,
		Name:   "Dal Tadka",
		Ingredients: models.JSONBIngredients{
			{Name: "toor dal", Quantity: "1 cup"},
			{Name: "ghee", Quantity: "1 tbsp"},
		},
		Servings: 4,
		Calories: 180,
		Protein:  ptr(9),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, recipe.Embedding.Slice(), "create computes the search embedding")

	got, err := svc.GetRecipe(ctx, userID, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dal Tadka", got.Name)
	require.Len(t, got.Ingredients, 2)
	assert.Equal(t, "toor dal", got.Ingredients[0].Name)

	name := "Dal Fry"
	updated, err := svc.UpdateRecipe(ctx, userID, recipe.ID, RecipeUpdate{Name: &name, Calories: ptr(200)})
	require.NoError(t, err)
	assert.Equal(t, "Dal Fry", updated.Name)
	assert.Equal(t, 200.0, updated.Calories)
	assert.Equal(t, 4, updated.Servings, "unset fields keep their value")
	require.NotNil(t, updated.Protein)
	assert.Equal(t, 9.0, *updated.Protein)

	require.NoError(t, svc.DeleteRecipe(ctx, userID, recipe.ID))
	_, err = svc.GetRecipe(ctx, userID, recipe.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUpdateRecipeZeroIsAValue(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	svc := NewRecipeService(db)
	ctx := context.Background()
	userID := seedUser(t, db, "zero@example.com")

	recipe, err := svc.CreateRecipe(ctx, &models.Recipe{
		UserID:      userID,
		Name:        "Jeera Water",
		Ingredients: models.JSONBIngredients{{Name: "cumin", Quantity: "1 tsp"}},
		Servings:    1,
		Calories:    12,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateRecipe(ctx, userID, recipe.ID, RecipeUpdate{Calories: ptr(0)})
	require.NoError(t, err)
	assert.Equal(t, 0.0, updated.Calories)
	assert.Equal(t, 1, updated.Servings)

	// A nil field means unchanged, not reset.
	got, err := svc.GetRecipe(ctx, userID, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got.Calories)
	assert.Equal(t, "Jeera Water", got.Name)
}

func TestRecipeAccessScopedToOwner(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	svc := NewRecipeService(db)
	ctx := context.Background()

	owner := seedUser(t, db, "rowner@example.com")
	other := seedUser(t, db, "rother@example.com")

	recipe, err := svc.CreateRecipe(ctx, &models.Recipe{
		UserID:      owner,
		Name:        "Kheer",
		Ingredients: models.JSONBIngredients{{Name: "rice", Quantity: "1/4 cup"}},
		Servings:    2,
		Calories:    250,
	})
	require.NoError(t, err)

	_, err = svc.GetRecipe(ctx, other, recipe.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.ErrorIs(t, svc.DeleteRecipe(ctx, other, recipe.ID), gorm.ErrRecordNotFound)

	list, err := svc.ListRecipes(ctx, other, "")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestListRecipesKeywordFilter(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	svc := NewRecipeService(db)
	ctx := context.Background()
	userID := seedUser(t, db, "search@example.com")

	for _, r := range []models.Recipe{
		{Name: "Palak Paneer", Description: "spinach curry"},
		{Name: "Paneer Bhurji", Description: "scrambled paneer"},
		{Name: "Veg Pulao", Description: "rice dish"},
	} {
		recipe := r
		recipe.UserID = userID
		recipe.Servings = 2
		recipe.Calories = 200
		recipe.Ingredients = models.JSONBIngredients{{Name: "x", Quantity: "1"}}
		_, err := svc.CreateRecipe(ctx, &recipe)
		require.NoError(t, err)
	}

	matches, err := svc.ListRecipes(ctx, userID, "paneer")
	require.NoError(t, err)
	require.Len(t, matches, 2)

	all, err := svc.ListRecipes(ctx, userID, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
