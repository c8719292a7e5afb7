package api

import (
	"encoding/base64"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/annapurna-ai/backend/internal/models"
	"github.com/annapurna-ai/backend/internal/service"
	"github.com/annapurna-ai/backend/internal/types"
)

// MealHandler handles meal logging, photo analysis and history
type MealHandler struct {
	meals      service.IMealService
	estimation service.IEstimationService
	profile    service.IProfileService
	photos     service.IPhotoService
}

// NewMealHandler creates a new MealHandler instance
func NewMealHandler(meals service.IMealService, estimation service.IEstimationService, profile service.IProfileService, photos service.IPhotoService) *MealHandler {
	return &MealHandler{
		meals:      meals,
		estimation: estimation,
		profile:    profile,
		photos:     photos,
	}
}

// userModel resolves the user's preferred AI model; empty selects the
// configured default.
func (h *MealHandler) userModel(c *gin.Context, userID uuid.UUID) string {
	settings, err := h.profile.GetSettings(c.Request.Context(), userID)
	if err != nil {
		return ""
	}
	return settings.AIModel
}

// parseDate reads an ISO-8601 date or datetime, defaulting to now.
func parseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now(), nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

// LogMeal handles POST /meals/log: estimate a described meal and persist it.
func (h *MealHandler) LogMeal(c *gin.Context) {
	userID, authed := currentUserID(c)
	if !authed {
		return
	}

	var req types.LogMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "meal description is required")
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		badRequest(c, "invalid date")
		return
	}

	estimate, err := h.estimation.EstimateMealFromText(c.Request.Context(), h.userModel(c, userID), req.Description)
	if err != nil {
		fail(c, err, "Failed to log meal. Please try again.")
		return
	}

	name := req.Name
	if name == "" && len(estimate.FoodItems) > 0 {
		name = estimate.FoodItems[0]
	}

	meal := &models.Meal{
		UserID:        userID,
		Name:          name,
		Date:          date,
		Description:   req.Description,
		FoodItems:     estimate.FoodItems,
		Calories:      estimate.EstimatedCalories,
		Protein:       estimate.Protein,
		Carbohydrates: estimate.Carbohydrates,
		Fat:           estimate.Fat,
		Fiber:         estimate.Fiber,
	}
	if _, err := h.meals.CreateMeal(c.Request.Context(), meal); err != nil {
		c.JSON(http.StatusInternalServerError, result{Success: false, Error: "Failed to save meal"})
		return
	}

	ok(c, http.StatusCreated, meal)
}

// QuickCheck handles POST /ai/quick-check: estimate without persisting.
func (h *MealHandler) QuickCheck(c *gin.Context) {
	userID, authed := currentUserID(c)
	if !authed {
		return
	}

	var req types.QuickCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "meal description is required")
		return
	}

	estimate, err := h.estimation.EstimateMealFromText(c.Request.Context(), h.userModel(c, userID), req.Description)
	if err != nil {
		fail(c, err, "Failed to estimate calories. Please try again.")
		return
	}

	ok(c, http.StatusOK, estimate)
}

// AnalyzePhoto handles POST /meals/photo: store the photo, analyze it and
// return the per-item breakdown. Nothing is persisted; the client logs the
// meal explicitly afterwards.
func (h *MealHandler) AnalyzePhoto(c *gin.Context) {
	userID, authed := currentUserID(c)
	if !authed {
		return
	}

	var req types.AnalyzePhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if req.ImageURL == "" && req.ImageData == "" {
		badRequest(c, "an image URL or image data is required")
		return
	}

	var inline *service.InlineImage
	photoURL := req.ImageURL
	if req.ImageData != "" {
		raw, err := base64.StdEncoding.DecodeString(req.ImageData)
		if err != nil {
			badRequest(c, "image data must be base64 encoded")
			return
		}
		mimeType := req.MIMEType
		if mimeType == "" {
			mimeType = "image/jpeg"
		}
		inline = &service.InlineImage{MIMEType: mimeType, Data: req.ImageData}

		// Persistence of the photo is best-effort: analysis still proceeds
		// when storage is down.
		if url, err := h.photos.UploadMealPhoto(c.Request.Context(), raw, mimeType); err == nil {
			photoURL = url
		}
	}

	analysis, err := h.estimation.AnalyzeMealImage(c.Request.Context(), h.userModel(c, userID), req.ImageURL, inline)
	if err != nil {
		fail(c, err, "Failed to analyze meal photo. Please try again.")
		return
	}

	ok(c, http.StatusOK, gin.H{"analysis": analysis, "photo_url": photoURL})
}

// CreateMeal handles POST /meals: persist a meal whose nutrition is already
// known (a confirmed photo analysis, a recipe serving, a chosen suggestion).
func (h *MealHandler) CreateMeal(c *gin.Context) {
	userID, authed := currentUserID(c)
	if !authed {
		return
	}

	var req types.CreateMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if *req.Calories < 0 {
		badRequest(c, "calories must not be negative")
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		badRequest(c, "invalid date")
		return
	}

	meal := &models.Meal{
		UserID:        userID,
		Name:          req.Name,
		Date:          date,
		Description:   req.Description,
		FoodItems:     req.FoodItems,
		PhotoURL:      req.PhotoURL,
		Calories:      *req.Calories,
		Protein:       req.Protein,
		Carbohydrates: req.Carbohydrates,
		Fat:           req.Fat,
		Fiber:         req.Fiber,
	}
	if _, err := h.meals.CreateMeal(c.Request.Context(), meal); err != nil {
		c.JSON(http.StatusInternalServerError, result{Success: false, Error: "Failed to save meal"})
		return
	}

	ok(c, http.StatusCreated, meal)
}

// ListMeals handles GET /meals?from=&to=: history, newest first.
func (h *MealHandler) ListMeals(c *gin.Context) {
	userID, authed := currentUserID(c)
	if !authed {
		return
	}

	var from, to time.Time
	if raw := c.Query("from"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			badRequest(c, "invalid from date")
			return
		}
		from = t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			badRequest(c, "invalid to date")
			return
		}
		to = t
	}

	meals, err := h.meals.ListMeals(c.Request.Context(), userID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, result{Success: false, Error: "Failed to load meals"})
		return
	}

	ok(c, http.StatusOK, meals)
}

// DeleteMeal handles DELETE /meals/:id
func (h *MealHandler) DeleteMeal(c *gin.Context) {
	userID, authed := currentUserID(c)
	if !authed {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid meal id")
		return
	}

	if err := h.meals.DeleteMeal(c.Request.Context(), userID, id); err != nil {
		c.JSON(http.StatusNotFound, result{Success: false, Error: "meal not found"})
		return
	}

	c.Status(http.StatusNoContent)
}
