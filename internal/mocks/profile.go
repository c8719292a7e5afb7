package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/annapurna-ai/backend/internal/models"
)

// MockProfileService is a mock implementation of the IProfileService interface
type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) GetSettings(ctx context.Context, userID uuid.UUID) (*models.UserSettings, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserSettings), args.Error(1)
}

func (m *MockProfileService) UpdateSettings(ctx context.Context, userID uuid.UUID, proteinGoal *float64, preference *models.DietaryPreference, aiModel *string) (*models.UserSettings, error) {
	args := m.Called(ctx, userID, proteinGoal, preference, aiModel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserSettings), args.Error(1)
}

func (m *MockProfileService) GetWeeklyTarget(ctx context.Context, userID uuid.UUID, date time.Time) (*models.WeeklyTarget, error) {
	args := m.Called(ctx, userID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WeeklyTarget), args.Error(1)
}

func (m *MockProfileService) SetWeeklyTarget(ctx context.Context, userID uuid.UUID, date time.Time, targetCalories float64) (*models.WeeklyTarget, error) {
	args := m.Called(ctx, userID, date, targetCalories)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WeeklyTarget), args.Error(1)
}
