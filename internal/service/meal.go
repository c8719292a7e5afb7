package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/annapurna-ai/backend/internal/models"
)

// MealService handles meal persistence and aggregation
type MealService struct {
	db *gorm.DB
}

// NewMealService creates a new MealService instance
func NewMealService(db *gorm.DB) *MealService {
	return &MealService{db: db}
}

// CreateMeal persists a new meal record
func (s *MealService) CreateMeal(ctx context.Context, meal *models.Meal) (*models.Meal, error) {
	if err := s.db.WithContext(ctx).Create(meal).Error; err != nil {
		return nil, err
	}
	return meal, nil
}

// GetMeal retrieves a meal owned by the given user
func (s *MealService) GetMeal(ctx context.Context, userID, id uuid.UUID) (*models.Meal, error) {
	var meal models.Meal
	if err := s.db.WithContext(ctx).First(&meal, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, err
	}
	return &meal, nil
}

// ListMeals returns the user's meals within [from, to), newest first. Zero
// bounds are open.
func (s *MealService) ListMeals(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]models.Meal, error) {
	query := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if !from.IsZero() {
		query = query.Where("date >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("date < ?", to)
	}

	var meals []models.Meal
	if err := query.Order("date DESC").Find(&meals).Error; err != nil {
		return nil, err
	}
	return meals, nil
}

// DeleteMeal removes a meal owned by the given user
func (s *MealService) DeleteMeal(ctx context.Context, userID, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&models.Meal{}, "id = ? AND user_id = ?", id, userID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// NutritionTotals aggregates calories and macros over a set of meals.
type NutritionTotals struct {
	Calories      float64 `json:"calories"`
	Protein       float64 `json:"protein"`
	Carbohydrates float64 `json:"carbohydrates"`
	Fat           float64 `json:"fat"`
	Fiber         float64 `json:"fiber"`
}

// SumMealNutrition folds a meal list into totals. Missing optional macros
// count as zero here; per-item display keeps them as unknown instead.
func SumMealNutrition(meals []models.Meal) NutritionTotals {
	var totals NutritionTotals
	for _, m := range meals {
		totals.Calories += m.Calories
		totals.Protein += deref(m.Protein)
		totals.Carbohydrates += deref(m.Carbohydrates)
		totals.Fat += deref(m.Fat)
		totals.Fiber += deref(m.Fiber)
	}
	return totals
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// DailySummary aggregates all meals logged on the given calendar day.
func (s *MealService) DailySummary(ctx context.Context, userID uuid.UUID, day time.Time) (NutritionTotals, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	meals, err := s.ListMeals(ctx, userID, start, start.AddDate(0, 0, 1))
	if err != nil {
		return NutritionTotals{}, err
	}
	return SumMealNutrition(meals), nil
}

// DailyProgress is one day's aggregated intake for the progress chart.
type DailyProgress struct {
	Date   string          `json:"date"`
	Totals NutritionTotals `json:"totals"`
}

// Progress returns per-day totals for the `days` days ending at `until`
// (inclusive), oldest first.
func (s *MealService) Progress(ctx context.Context, userID uuid.UUID, until time.Time, days int) ([]DailyProgress, error) {
	end := time.Date(until.Year(), until.Month(), until.Day(), 0, 0, 0, 0, until.Location()).AddDate(0, 0, 1)
	start := end.AddDate(0, 0, -days)

	meals, err := s.ListMeals(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	byDay := make(map[string][]models.Meal)
	for _, m := range meals {
		key := m.Date.Format("2006-01-02")
		byDay[key] = append(byDay[key], m)
	}

	progress := make([]DailyProgress, 0, days)
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		progress = append(progress, DailyProgress{
			Date:   key,
			Totals: SumMealNutrition(byDay[key]),
		})
	}
	return progress, nil
}
