package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/annapurna-ai/backend/internal/service"
	"github.com/annapurna-ai/backend/internal/types"
)

// otherOption is appended to every question's options so the user can always
// type a free-form answer. The model sometimes emits it on its own, so it is
// deduplicated rather than blindly appended.
const otherOption = "Other"

// SuggestionHandler drives the meal suggestion dialogue. The dialogue itself
// is stateful but HTTP is not: the client carries the turn history and sends
// it back with every answer.
type SuggestionHandler struct {
	estimation service.IEstimationService
	profile    service.IProfileService
}

// NewSuggestionHandler creates a new SuggestionHandler instance
func NewSuggestionHandler(estimation service.IEstimationService, profile service.IProfileService) *SuggestionHandler {
	return &SuggestionHandler{estimation: estimation, profile: profile}
}

// userProfile assembles the dialogue profile from the user's settings and the
// current week's calorie target.
func (h *SuggestionHandler) userProfile(c *gin.Context, userID uuid.UUID) (service.Profile, string, error) {
	settings, err := h.profile.GetSettings(c.Request.Context(), userID)
	if err != nil {
		return service.Profile{}, "", err
	}

	profile := service.Profile{Preference: settings.DietaryPreference}
	if target, err := h.profile.GetWeeklyTarget(c.Request.Context(), userID, time.Now()); err == nil && target != nil {
		profile.CalorieGoal = target.DailyGoal()
	}
	return profile, settings.AIModel, nil
}

// withOther returns options with the free-form sentinel appended exactly once.
func withOther(options []string) []string {
	for _, opt := range options {
		if opt == otherOption {
			return options
		}
	}
	return append(append([]string(nil), options...), otherOption)
}

// renderState writes a session state as a JSON response. History rides along
// so the client can replay it on the next answer.
func renderState(c *gin.Context, state service.SessionState, history []service.Turn) {
	switch s := state.(type) {
	case service.AwaitingInput:
		ok(c, http.StatusOK, gin.H{
			"status":   "awaiting_input",
			"question": s.Question,
			"options":  withOther(s.Options),
			"history":  history,
		})
	case service.SuggestionsReady:
		ok(c, http.StatusOK, gin.H{
			"status":      "suggestions_ready",
			"suggestions": s.Suggestions,
		})
	case service.SessionError:
		c.JSON(http.StatusBadGateway, result{Success: false, Error: s.Message})
	default:
		c.JSON(http.StatusInternalServerError, result{Success: false, Error: "unexpected session state"})
	}
}

// Start handles POST /suggestions/start: begin a fresh dialogue.
func (h *SuggestionHandler) Start(c *gin.Context) {
	userID, authed := currentUserID(c)
	if !authed {
		return
	}

	profile, model, err := h.userProfile(c, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, result{Success: false, Error: "Failed to load profile"})
		return
	}

	ctrl := service.NewSuggestionController(h.estimation, model)
	if _, err := ctrl.Start(c.Request.Context(), profile); err != nil {
		badRequest(c, err.Error())
		return
	}

	renderState(c, ctrl.State(), ctrl.History())
}

// Answer handles POST /suggestions/answer: continue a dialogue with the
// history the client carried from the previous response.
func (h *SuggestionHandler) Answer(c *gin.Context) {
	userID, authed := currentUserID(c)
	if !authed {
		return
	}

	var req types.SuggestionAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "question and answer are required")
		return
	}

	profile, model, err := h.userProfile(c, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, result{Success: false, Error: "Failed to load profile"})
		return
	}

	history := make([]service.Turn, 0, len(req.History))
	for _, t := range req.History {
		history = append(history, service.Turn{Question: t.Question, Answer: t.Answer})
	}

	ctrl := service.NewSuggestionController(h.estimation, model)
	ctrl.Resume(history, req.Question)
	if _, err := ctrl.SubmitAnswer(c.Request.Context(), profile, req.Answer); err != nil {
		badRequest(c, err.Error())
		return
	}

	renderState(c, ctrl.State(), ctrl.History())
}
