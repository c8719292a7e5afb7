package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/annapurna-ai/backend/internal/models"
	"github.com/annapurna-ai/backend/internal/service"
	"github.com/annapurna-ai/backend/internal/types"
)

// DashboardHandler serves daily summaries, progress history, settings and
// weekly calorie targets.
type DashboardHandler struct {
	meals   service.IMealService
	profile service.IProfileService
}

// NewDashboardHandler creates a new DashboardHandler instance
func NewDashboardHandler(meals service.IMealService, profile service.IProfileService) *DashboardHandler {
	return &DashboardHandler{meals: meals, profile: profile}
}

// Summary handles GET /dashboard/summary?date=: one day's nutrition totals
// alongside the daily calorie goal derived from the week's target.
func (h *DashboardHandler) Summary(c *gin.Context) {
	userID, authed := currentUserID(c)
	if !authed {
		return
	}

	day, err := parseDate(c.Query("date"))
	if err != nil {
		badRequest(c, "invalid date")
		return
	}

	totals, err := h.meals.DailySummary(c.Request.Context(), userID, day)
	if err != nil {
		c.JSON(http.StatusInternalServerError, result{Success: false, Error: "Failed to load summary"})
		return
	}

	resp := gin.H{"date": day.Format("2006-01-02"), "totals": totals}
	if target, err := h.profile.GetWeeklyTarget(c.Request.Context(), userID, day); err == nil && target != nil {
		resp["daily_goal"] = target.DailyGoal()
	}

	ok(c, http.StatusOK, resp)
}

// Progress handles GET /dashboard/progress?days=: per-day totals for the
// trailing window, oldest first. Defaults to a week.
func (h *DashboardHandler) Progress(c *gin.Context) {
	userID, authed := currentUserID(c)
	if !authed {
		return
	}

	days := 7
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 90 {
			badRequest(c, "days must be between 1 and 90")
			return
		}
		days = n
	}

	progress, err := h.meals.Progress(c.Request.Context(), userID, time.Now(), days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, result{Success: false, Error: "Failed to load progress"})
		return
	}

	ok(c, http.StatusOK, progress)
}

// GetSettings handles GET /profile/settings
func (h *DashboardHandler) GetSettings(c *gin.Context) {
	userID, authed := currentUserID(c)
	if !authed {
		return
	}

	settings, err := h.profile.GetSettings(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, result{Success: false, Error: "Failed to load settings"})
		return
	}

	ok(c, http.StatusOK, settings)
}

// UpdateSettings handles PUT /profile/settings
func (h *DashboardHandler) UpdateSettings(c *gin.Context) {
	userID, authed := currentUserID(c)
	if !authed {
		return
	}

	var req types.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if req.ProteinGoal != nil && *req.ProteinGoal < 0 {
		badRequest(c, "protein goal must not be negative")
		return
	}

	var preference *models.DietaryPreference
	if req.DietaryPreference != nil {
		p := models.DietaryPreference(*req.DietaryPreference)
		if err := p.Validate(); err != nil {
			badRequest(c, err.Error())
			return
		}
		preference = &p
	}

	settings, err := h.profile.UpdateSettings(c.Request.Context(), userID, req.ProteinGoal, preference, req.AIModel)
	if err != nil {
		c.JSON(http.StatusInternalServerError, result{Success: false, Error: "Failed to update settings"})
		return
	}

	ok(c, http.StatusOK, settings)
}

// GetWeeklyTarget handles GET /targets?date=
func (h *DashboardHandler) GetWeeklyTarget(c *gin.Context) {
	userID, authed := currentUserID(c)
	if !authed {
		return
	}

	day, err := parseDate(c.Query("date"))
	if err != nil {
		badRequest(c, "invalid date")
		return
	}

	target, err := h.profile.GetWeeklyTarget(c.Request.Context(), userID, day)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, result{Success: false, Error: "no target set for this week"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, result{Success: false, Error: "Failed to load target"})
		return
	}

	ok(c, http.StatusOK, gin.H{"target": target, "daily_goal": target.DailyGoal()})
}

// SetWeeklyTarget handles PUT /targets
func (h *DashboardHandler) SetWeeklyTarget(c *gin.Context) {
	userID, authed := currentUserID(c)
	if !authed {
		return
	}

	var req types.SetWeeklyTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "start_date and target_calories are required")
		return
	}
	if req.TargetCalories <= 0 {
		badRequest(c, "target_calories must be positive")
		return
	}
	day, err := parseDate(req.StartDate)
	if err != nil {
		badRequest(c, "invalid start_date")
		return
	}

	target, err := h.profile.SetWeeklyTarget(c.Request.Context(), userID, day, req.TargetCalories)
	if err != nil {
		c.JSON(http.StatusInternalServerError, result{Success: false, Error: "Failed to save target"})
		return
	}

	ok(c, http.StatusOK, gin.H{"target": target, "daily_goal": target.DailyGoal()})
}
