package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/annapurna-ai/backend/internal/mocks"
	"github.com/annapurna-ai/backend/internal/models"
	"github.com/annapurna-ai/backend/internal/service"
)

func TestParseDate(t *testing.T) {
	d, err := parseDate("2026-08-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC), d)

	d, err = parseDate("2026-08-15T18:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, 18, d.Hour())

	_, err = parseDate("15/08/2026")
	assert.Error(t, err)

	// Empty defaults to now.
	d, err = parseDate("")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), d, time.Minute)
}

func mealTestContext(method string, body any) (*gin.Context, *httptest.ResponseRecorder, uuid.UUID) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	c.Request = httptest.NewRequest(method, "/meals", &buf)
	c.Request.Header.Set("Content-Type", "application/json")
	userID := uuid.New()
	c.Set("user_id", userID)
	return c, w, userID
}

func TestCreateMealRejectsNegativeCalories(t *testing.T) {
	meals := new(mocks.MockMealService)
	h := NewMealHandler(meals, new(mocks.MockEstimationService), new(mocks.MockProfileService), new(mocks.MockPhotoService))

	c, w, _ := mealTestContext(http.MethodPost, gin.H{
		"name":     "Ghost Meal",
		"calories": -200,
	})
	h.CreateMeal(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	meals.AssertNotCalled(t, "CreateMeal", mock.Anything, mock.Anything)
}

func TestCreateMealRequiresCalories(t *testing.T) {
	meals := new(mocks.MockMealService)
	h := NewMealHandler(meals, new(mocks.MockEstimationService), new(mocks.MockProfileService), new(mocks.MockPhotoService))

	c, w, _ := mealTestContext(http.MethodPost, gin.H{"name": "No Calories"})
	h.CreateMeal(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQuickCheckDoesNotPersist(t *testing.T) {
	meals := new(mocks.MockMealService)
	estimation := new(mocks.MockEstimationService)
	profile := new(mocks.MockProfileService)
	h := NewMealHandler(meals, estimation, profile, new(mocks.MockPhotoService))

	profile.On("GetSettings", mock.Anything, mock.Anything).
		Return(&models.UserSettings{DietaryPreference: models.NonVegetarian}, nil)
	estimation.On("EstimateMealFromText", mock.Anything, mock.Anything, "2 samosas").
		Return(&service.MealEstimate{FoodItems: []string{"samosa"}, EstimatedCalories: 300}, nil)

	c, w, _ := mealTestContext(http.MethodPost, gin.H{"description": "2 samosas"})
	h.QuickCheck(c)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	meals.AssertNotCalled(t, "CreateMeal", mock.Anything, mock.Anything)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			EstimatedCalories float64 `json:"estimated_calories"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 300.0, resp.Data.EstimatedCalories)
}

func TestAnalyzePhotoRejectsBadBase64(t *testing.T) {
	h := NewMealHandler(new(mocks.MockMealService), new(mocks.MockEstimationService), new(mocks.MockProfileService), new(mocks.MockPhotoService))

	c, w, _ := mealTestContext(http.MethodPost, gin.H{
		"image_data": "not base64!!!",
		"mime_type":  "image/jpeg",
	})
	h.AnalyzePhoto(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
