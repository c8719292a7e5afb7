package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WeeklyTarget is a calorie budget for one week, keyed by the start-of-week
// date. The daily goal shown on the dashboard is TargetCalories / 7.
type WeeklyTarget struct {
	ID             uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID         uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_targets_user_week" json:"user_id"`
	StartDate      time.Time `gorm:"not null;uniqueIndex:idx_targets_user_week" json:"start_date"`
	TargetCalories float64   `gorm:"not null" json:"target_calories"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (t *WeeklyTarget) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// DailyGoal derives the daily calorie goal from the weekly budget.
func (t *WeeklyTarget) DailyGoal() float64 {
	return t.TargetCalories / 7
}
