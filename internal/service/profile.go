package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/annapurna-ai/backend/internal/models"
)

// ProfileService manages user settings and weekly calorie targets
type ProfileService struct {
	db *gorm.DB
}

// NewProfileService creates a new ProfileService instance
func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// GetSettings returns the user's settings row, creating a default one on
// first access.
func (s *ProfileService) GetSettings(ctx context.Context, userID uuid.UUID) (*models.UserSettings, error) {
	var settings models.UserSettings
	err := s.db.WithContext(ctx).First(&settings, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = models.UserSettings{
			UserID:            userID,
			DietaryPreference: models.NonVegetarian,
		}
		if err := s.db.WithContext(ctx).Create(&settings).Error; err != nil {
			return nil, err
		}
		return &settings, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// UpdateSettings applies partial changes to the user's settings.
func (s *ProfileService) UpdateSettings(ctx context.Context, userID uuid.UUID, proteinGoal *float64, preference *models.DietaryPreference, aiModel *string) (*models.UserSettings, error) {
	settings, err := s.GetSettings(ctx, userID)
	if err != nil {
		return nil, err
	}

	if proteinGoal != nil {
		settings.ProteinGoal = *proteinGoal
	}
	if preference != nil {
		if err := preference.Validate(); err != nil {
			return nil, err
		}
		settings.DietaryPreference = *preference
	}
	if aiModel != nil {
		settings.AIModel = *aiModel
	}

	if err := s.db.WithContext(ctx).Save(settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

// StartOfWeek truncates a time to the Monday of its week, which keys the
// weekly target rows.
func StartOfWeek(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	weekday := int(day.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday belongs to the preceding Monday
	}
	return day.AddDate(0, 0, 1-weekday)
}

// GetWeeklyTarget returns the target whose week contains the given date, or
// gorm.ErrRecordNotFound when none was set.
func (s *ProfileService) GetWeeklyTarget(ctx context.Context, userID uuid.UUID, date time.Time) (*models.WeeklyTarget, error) {
	var target models.WeeklyTarget
	if err := s.db.WithContext(ctx).
		First(&target, "user_id = ? AND start_date = ?", userID, StartOfWeek(date)).Error; err != nil {
		return nil, err
	}
	return &target, nil
}

// SetWeeklyTarget upserts the calorie budget for the week containing date.
func (s *ProfileService) SetWeeklyTarget(ctx context.Context, userID uuid.UUID, date time.Time, targetCalories float64) (*models.WeeklyTarget, error) {
	start := StartOfWeek(date)

	var target models.WeeklyTarget
	err := s.db.WithContext(ctx).First(&target, "user_id = ? AND start_date = ?", userID, start).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		target = models.WeeklyTarget{
			UserID:         userID,
			StartDate:      start,
			TargetCalories: targetCalories,
		}
		if err := s.db.WithContext(ctx).Create(&target).Error; err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		target.TargetCalories = targetCalories
		if err := s.db.WithContext(ctx).Save(&target).Error; err != nil {
			return nil, err
		}
	}
	return &target, nil
}
