package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/annapurna-ai/backend/internal/models"
	"github.com/annapurna-ai/backend/internal/testhelpers"
)

func seedUser(t *testing.T, db *gorm.DB, email string) uuid.UUID {
	user := models.User{Name: "Test User", Email: email, PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)
	return user.ID
}

func ptr(v float64) *float64 { return &v }

func TestSumMealNutrition(t *testing.T) {
	meals := []models.Meal{
		{Calories: 100},
		{Calories: 50, Protein: ptr(5)},
	}

	totals := SumMealNutrition(meals)
	assert.Equal(t, 150.0, totals.Calories)
	assert.Equal(t, 5.0, totals.Protein, "a missing macro counts as zero when aggregating")
	assert.Equal(t, 0.0, totals.Fat)
}

func TestMealCRUDScopedToUser(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	svc := NewMealService(db)
	ctx := context.Background()

	owner := seedUser(t, db, "owner@example.com")
	other := seedUser(t, db, "other@example.com")

	meal, err := svc.CreateMeal(ctx, &models.Meal{
		UserID:    owner,
		Name:      "Dal Chawal",
		Date:      time.Now(),
		FoodItems: models.JSONBStringArray{"dal", "rice"},
		Calories:  480,
		Protein:   ptr(15),
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, meal.ID)

	got, err := svc.GetMeal(ctx, owner, meal.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dal Chawal", got.Name)
	assert.Equal(t, models.JSONBStringArray{"dal", "rice"}, got.FoodItems)

	// Other users can neither read nor delete it.
	_, err = svc.GetMeal(ctx, other, meal.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.ErrorIs(t, svc.DeleteMeal(ctx, other, meal.ID), gorm.ErrRecordNotFound)

	require.NoError(t, svc.DeleteMeal(ctx, owner, meal.ID))
	_, err = svc.GetMeal(ctx, owner, meal.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestListMealsWindowAndOrder(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	svc := NewMealService(db)
	ctx := context.Background()
	userID := seedUser(t, db, "window@example.com")

	base := time.Date(2026, 8, 10, 12, 0, 0, 0, time.UTC)
	for i, name := range []string{"Mon", "Tue", "Wed"} {
		_, err := svc.CreateMeal(ctx, &models.Meal{
			UserID:   userID,
			Name:     name,
			Date:     base.AddDate(0, 0, i),
			Calories: 100,
		})
		require.NoError(t, err)
	}

	// [from, to): Tue's meal is included, Wed's is not.
	meals, err := svc.ListMeals(ctx, userID,
		base, base.AddDate(0, 0, 2))
	require.NoError(t, err)
	require.Len(t, meals, 2)
	assert.Equal(t, "Tue", meals[0].Name, "newest first")
	assert.Equal(t, "Mon", meals[1].Name)

	all, err := svc.ListMeals(ctx, userID, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestDailySummary(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	svc := NewMealService(db)
	ctx := context.Background()
	userID := seedUser(t, db, "summary@example.com")

	day := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	breakfast := &models.Meal{UserID: userID, Name: "Poha", Date: day.Add(8 * time.Hour), Calories: 250, Protein: ptr(6)}
	dinner := &models.Meal{UserID: userID, Name: "Khichdi", Date: day.Add(20 * time.Hour), Calories: 350}
	nextDay := &models.Meal{UserID: userID, Name: "Idli", Date: day.AddDate(0, 0, 1).Add(8 * time.Hour), Calories: 200}
	for _, m := range []*models.Meal{breakfast, dinner, nextDay} {
		_, err := svc.CreateMeal(ctx, m)
		require.NoError(t, err)
	}

	totals, err := svc.DailySummary(ctx, userID, day.Add(13*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 600.0, totals.Calories)
	assert.Equal(t, 6.0, totals.Protein)
}

func TestProgressFillsEmptyDays(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	svc := NewMealService(db)
	ctx := context.Background()
	userID := seedUser(t, db, "progress@example.com")

	until := time.Date(2026, 8, 22, 10, 0, 0, 0, time.UTC)
	_, err := svc.CreateMeal(ctx, &models.Meal{
		UserID: userID, Name: "Upma", Date: until.AddDate(0, 0, -1), Calories: 300,
	})
	require.NoError(t, err)

	progress, err := svc.Progress(ctx, userID, until, 3)
	require.NoError(t, err)
	require.Len(t, progress, 3)

	// Oldest first, days without meals report zero totals.
	assert.Equal(t, "2026-08-20", progress[0].Date)
	assert.Equal(t, 0.0, progress[0].Totals.Calories)
	assert.Equal(t, "2026-08-21", progress[1].Date)
	assert.Equal(t, 300.0, progress[1].Totals.Calories)
	assert.Equal(t, "2026-08-22", progress[2].Date)
}
