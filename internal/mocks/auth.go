package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/annapurna-ai/backend/internal/models"
	"github.com/annapurna-ai/backend/internal/types"
)

// MockAuthService is a mock implementation of the IAuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, name, email, password string, preference models.DietaryPreference, proteinGoal float64) (string, error) {
	args := m.Called(ctx, name, email, password, preference, proteinGoal)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) ValidateToken(token string) (*types.TokenClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TokenClaims), args.Error(1)
}
