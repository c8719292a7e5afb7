package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/annapurna-ai/backend/internal/service"
)

// MockEstimationService is a mock implementation of the IEstimationService interface
type MockEstimationService struct {
	mock.Mock
}

func (m *MockEstimationService) EstimateMealFromText(ctx context.Context, model, description string) (*service.MealEstimate, error) {
	args := m.Called(ctx, model, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.MealEstimate), args.Error(1)
}

func (m *MockEstimationService) AnalyzeMealImage(ctx context.Context, model, imageURL string, image *service.InlineImage) (*service.ImageAnalysis, error) {
	args := m.Called(ctx, model, imageURL, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ImageAnalysis), args.Error(1)
}

func (m *MockEstimationService) GenerateRecipe(ctx context.Context, model, recipePrompt string) (*service.RecipeEstimate, error) {
	args := m.Called(ctx, model, recipePrompt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RecipeEstimate), args.Error(1)
}

func (m *MockEstimationService) NextSuggestionStep(ctx context.Context, model string, profile service.Profile, history []service.Turn) (*service.SuggestionStep, error) {
	args := m.Called(ctx, model, profile, history)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SuggestionStep), args.Error(1)
}

// MockGenerativeClient is a mock implementation of the GenerativeClient
// interface; tests script the raw JSON the model would return.
type MockGenerativeClient struct {
	mock.Mock
}

func (m *MockGenerativeClient) Generate(ctx context.Context, model, prompt string, image *service.InlineImage) (string, error) {
	args := m.Called(ctx, model, prompt, image)
	return args.String(0), args.Error(1)
}
