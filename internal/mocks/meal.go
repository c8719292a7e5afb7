package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/annapurna-ai/backend/internal/models"
	"github.com/annapurna-ai/backend/internal/service"
)

// MockMealService is a mock implementation of the IMealService interface
type MockMealService struct {
	mock.Mock
}

func (m *MockMealService) CreateMeal(ctx context.Context, meal *models.Meal) (*models.Meal, error) {
	args := m.Called(ctx, meal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Meal), args.Error(1)
}

func (m *MockMealService) GetMeal(ctx context.Context, userID, id uuid.UUID) (*models.Meal, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Meal), args.Error(1)
}

func (m *MockMealService) ListMeals(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]models.Meal, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Meal), args.Error(1)
}

func (m *MockMealService) DeleteMeal(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockMealService) DailySummary(ctx context.Context, userID uuid.UUID, day time.Time) (service.NutritionTotals, error) {
	args := m.Called(ctx, userID, day)
	return args.Get(0).(service.NutritionTotals), args.Error(1)
}

func (m *MockMealService) Progress(ctx context.Context, userID uuid.UUID, until time.Time, days int) ([]service.DailyProgress, error) {
	args := m.Called(ctx, userID, until, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.DailyProgress), args.Error(1)
}

// MockPhotoService is a mock implementation of the IPhotoService interface
type MockPhotoService struct {
	mock.Mock
}

func (m *MockPhotoService) UploadMealPhoto(ctx context.Context, imageData []byte, contentType string) (string, error) {
	args := m.Called(ctx, imageData, contentType)
	return args.String(0), args.Error(1)
}
