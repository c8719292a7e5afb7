package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/annapurna-ai/backend/internal/mocks"
	"github.com/annapurna-ai/backend/internal/models"
	"github.com/annapurna-ai/backend/internal/service"
)

func TestWithOtherAppendsOnce(t *testing.T) {
	assert.Equal(t, []string{"Paneer", "Lentils", "Other"}, withOther([]string{"Paneer", "Lentils"}))

	// A model that already offered "Other" must not get a duplicate.
	assert.Equal(t, []string{"Paneer", "Other"}, withOther([]string{"Paneer", "Other"}))

	assert.Equal(t, []string{"Other"}, withOther(nil))
}

func TestWithOtherDoesNotMutateInput(t *testing.T) {
	options := make([]string, 2, 8)
	options[0], options[1] = "A", "B"

	out := withOther(options)
	assert.Equal(t, []string{"A", "B"}, options)
	assert.Equal(t, []string{"A", "B", "Other"}, out)
}

// suggestionTestContext builds a request context authenticated as a fresh user.
func suggestionTestContext(body any) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	c.Request = httptest.NewRequest(http.MethodPost, "/suggestions", &buf)
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("user_id", uuid.New())
	return c, w
}

func settingsFor(pref models.DietaryPreference) *models.UserSettings {
	return &models.UserSettings{DietaryPreference: pref}
}

func TestStartRendersQuestionWithHistory(t *testing.T) {
	estimation := new(mocks.MockEstimationService)
	profile := new(mocks.MockProfileService)
	h := NewSuggestionHandler(estimation, profile)

	profile.On("GetSettings", mock.Anything, mock.Anything).Return(settingsFor(models.VegetarianEggless), nil)
	profile.On("GetWeeklyTarget", mock.Anything, mock.Anything, mock.Anything).Return(nil, assert.AnError)
	estimation.On("NextSuggestionStep", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&service.SuggestionStep{
			NextQuestion: &service.NextQuestion{Question: "Spice level?", Options: []string{"Mild", "Hot"}},
		}, nil)

	c, w := suggestionTestContext(nil)
	h.Start(c)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Status  string   `json:"status"`
			Options []string `json:"options"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "awaiting_input", resp.Data.Status)
	assert.Equal(t, []string{"Mild", "Hot", "Other"}, resp.Data.Options)
}

func TestStartRendersFailureEnvelope(t *testing.T) {
	estimation := new(mocks.MockEstimationService)
	profile := new(mocks.MockProfileService)
	h := NewSuggestionHandler(estimation, profile)

	profile.On("GetSettings", mock.Anything, mock.Anything).Return(settingsFor(models.NonVegetarian), nil)
	profile.On("GetWeeklyTarget", mock.Anything, mock.Anything, mock.Anything).Return(nil, assert.AnError)
	estimation.On("NextSuggestionStep", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, service.ErrSchemaValidation)

	c, w := suggestionTestContext(nil)
	h.Start(c)

	require.Equal(t, http.StatusBadGateway, w.Code)
	var resp struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Failed to get suggestions. Please try again.", resp.Error)
}

func TestAnswerReplaysClientHistory(t *testing.T) {
	estimation := new(mocks.MockEstimationService)
	profile := new(mocks.MockProfileService)
	h := NewSuggestionHandler(estimation, profile)

	profile.On("GetSettings", mock.Anything, mock.Anything).Return(settingsFor(models.VegetarianEggless), nil)
	profile.On("GetWeeklyTarget", mock.Anything, mock.Anything, mock.Anything).Return(nil, assert.AnError)

	wantHistory := []service.Turn{
		{Question: "Lunch or dinner?", Answer: "Dinner"},
		{Question: "Spice level?", Answer: "Hot"},
	}
	estimation.On("NextSuggestionStep", mock.Anything, mock.Anything, mock.Anything, wantHistory).
		Return(&service.SuggestionStep{Suggestions: []service.Suggestion{
			{Name: "Chole", Recipe: "Simmer chickpeas in masala."},
			{Name: "Rajma", Recipe: "Slow cook kidney beans."},
		}}, nil)

	c, w := suggestionTestContext(gin.H{
		"history":  []gin.H{{"question": "Lunch or dinner?", "answer": "Dinner"}},
		"question": "Spice level?",
		"answer":   "Hot",
	})
	h.Answer(c)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		Data struct {
			Status      string `json:"status"`
			Suggestions []struct {
				Name string `json:"name"`
			} `json:"suggestions"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "suggestions_ready", resp.Data.Status)
	require.Len(t, resp.Data.Suggestions, 2)
	assert.Equal(t, "Chole", resp.Data.Suggestions[0].Name)

	estimation.AssertExpectations(t)
}

func TestAnswerRequiresQuestionAndAnswer(t *testing.T) {
	h := NewSuggestionHandler(new(mocks.MockEstimationService), new(mocks.MockProfileService))

	c, w := suggestionTestContext(gin.H{"answer": "Hot"})
	h.Answer(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
